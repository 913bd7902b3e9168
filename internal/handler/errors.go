package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/psds-microservice/crm-service/internal/errs"
)

// respondError сопоставляет доменные ошибки кодам HTTP. Все ошибки ядра
// восстановимые: процесс не падает, ретраи — на стороне клиента.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrInvalidStatus), errors.Is(err, errs.ErrUnknownWorkflow):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
