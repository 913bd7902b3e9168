package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/psds-microservice/crm-service/internal/config"
	"github.com/psds-microservice/crm-service/internal/database"
	"github.com/psds-microservice/crm-service/internal/kafka"
	"github.com/psds-microservice/crm-service/internal/model"
	"github.com/psds-microservice/crm-service/internal/searchindex"
	"github.com/spf13/cobra"
)

var reindexSearchCmd = &cobra.Command{
	Use:   "reindex-search",
	Short: "Reindex all customers and suggestions into search. Prefers Kafka; falls back to HTTP if SEARCH_SERVICE_URL set.",
	RunE:  runReindexSearch,
}

func init() {
	rootCmd.AddCommand(reindexSearchCmd)
}

func runReindexSearch(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")
	_ = godotenv.Load("../../.env") // repo root when running from bin/
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	conn, err := database.Open(cfg.DSN())
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}

	var customers []model.Customer
	if err := conn.Find(&customers).Error; err != nil {
		return fmt.Errorf("list customers: %w", err)
	}
	var suggestions []model.Suggestion
	if err := conn.Find(&suggestions).Error; err != nil {
		return fmt.Errorf("list suggestions: %w", err)
	}
	log.Printf("reindex-search: found %d customers, %d suggestions", len(customers), len(suggestions))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Предпочитаем Kafka, затем HTTP
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopicRecord != "" {
		log.Println("reindex-search: using Kafka for reindexing")
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicRecord)
		defer producer.Close()
		for i := range customers {
			cu := &customers[i]
			producer.ProduceRecordEvent(ctx, "customer.updated", map[string]interface{}{
				"customer_id": int64(cu.ID),
				"name":        cu.Name,
				"email":       cu.Email,
				"phone":       cu.Phone,
				"company":     cu.Company,
				"notes":       cu.Notes,
				"status":      string(cu.Status),
			})
			if (i+1)%50 == 0 || i == len(customers)-1 {
				log.Printf("reindex-search: sent %d/%d customer events to Kafka", i+1, len(customers))
			}
		}
		for i := range suggestions {
			sg := &suggestions[i]
			producer.ProduceRecordEvent(ctx, "suggestion.updated", map[string]interface{}{
				"suggestion_id": int64(sg.ID),
				"type":          string(sg.Type),
				"status":        string(sg.Status),
				"priority":      string(sg.Priority),
				"title":         sg.Title,
				"description":   sg.Description,
			})
			if (i+1)%50 == 0 || i == len(suggestions)-1 {
				log.Printf("reindex-search: sent %d/%d suggestion events to Kafka", i+1, len(suggestions))
			}
		}
		log.Printf("reindex-search: done, sent %d events to Kafka (search-service worker will index them)", len(customers)+len(suggestions))
		return nil
	}
	if cfg.SearchServiceURL != "" {
		log.Println("reindex-search: using HTTP for reindexing")
		client := searchindex.NewClient(cfg.SearchServiceURL)
		for i := range customers {
			client.IndexCustomer(ctx, &customers[i])
			if (i+1)%50 == 0 || i == len(customers)-1 {
				log.Printf("reindex-search: indexed %d/%d customers", i+1, len(customers))
			}
		}
		for i := range suggestions {
			client.IndexSuggestion(ctx, &suggestions[i])
			if (i+1)%50 == 0 || i == len(suggestions)-1 {
				log.Printf("reindex-search: indexed %d/%d suggestions", i+1, len(suggestions))
			}
		}
		log.Printf("reindex-search: done, indexed %d records via HTTP", len(customers)+len(suggestions))
		return nil
	}
	log.Println("reindex-search: neither KAFKA_BROKERS nor SEARCH_SERVICE_URL set")
	log.Println("reindex-search: normal indexing is via Kafka (search-service worker)")
	log.Printf("reindex-search: found %d records (not reindexed)", len(customers)+len(suggestions))
	return nil
}
