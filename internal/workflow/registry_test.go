package workflow

import (
	"testing"

	"github.com/psds-microservice/crm-service/internal/errs"
	"github.com/psds-microservice/crm-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusesFor(t *testing.T) {
	tests := []struct {
		typ       model.FeedbackType
		want      []model.SuggestionStatus
		terminals int
	}{
		{
			typ: model.FeedbackTypeBug,
			want: []model.SuggestionStatus{
				"pending", "under_investigation", "in_progress",
				"fixed", "wont_fix", "cannot_reproduce",
			},
			terminals: 3,
		},
		{
			typ: model.FeedbackTypeFeature,
			want: []model.SuggestionStatus{
				"pending", "under_review", "planned", "in_development",
				"completed", "declined",
			},
			terminals: 2,
		},
		{
			typ: model.FeedbackTypeGeneral,
			want: []model.SuggestionStatus{
				"pending", "under_review", "acknowledged", "addressed", "declined",
			},
			terminals: 3,
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			statuses, err := StatusesFor(tt.typ)
			require.NoError(t, err)
			require.Len(t, statuses, len(tt.want))

			terminals := 0
			for i, st := range statuses {
				assert.Equal(t, tt.want[i], st.Value, "position %d", i)
				assert.NotEmpty(t, st.Label)
				if st.Terminal {
					terminals++
				}
			}
			assert.Equal(t, tt.terminals, terminals)
		})
	}
}

func TestStatusesForUnknownType(t *testing.T) {
	statuses, err := StatusesFor("complaint")
	require.ErrorIs(t, err, errs.ErrUnknownWorkflow)
	assert.Nil(t, statuses)
}

// Одинаковое написание статуса в разных workflow — разные значения:
// валидность определяется только типом записи.
func TestIsValidScopedByType(t *testing.T) {
	assert.True(t, IsValid(model.FeedbackTypeBug, "fixed"))
	assert.False(t, IsValid(model.FeedbackTypeFeature, "fixed"))
	assert.False(t, IsValid(model.FeedbackTypeGeneral, "fixed"))

	// "pending" есть во всех трёх workflow
	assert.True(t, IsValid(model.FeedbackTypeBug, "pending"))
	assert.True(t, IsValid(model.FeedbackTypeFeature, "pending"))
	assert.True(t, IsValid(model.FeedbackTypeGeneral, "pending"))

	// "declined" — только feature_request и general_feedback
	assert.False(t, IsValid(model.FeedbackTypeBug, "declined"))
	assert.True(t, IsValid(model.FeedbackTypeFeature, "declined"))
	assert.True(t, IsValid(model.FeedbackTypeGeneral, "declined"))

	assert.False(t, IsValid("complaint", "pending"))
}

// Каждый статус, который вернул реестр, валиден для своего типа.
func TestEveryRegistryStatusIsValid(t *testing.T) {
	for _, typ := range []model.FeedbackType{
		model.FeedbackTypeBug, model.FeedbackTypeFeature, model.FeedbackTypeGeneral,
	} {
		statuses, err := StatusesFor(typ)
		require.NoError(t, err)
		for _, st := range statuses {
			assert.True(t, IsValid(typ, st.Value), "%s/%s", typ, st.Value)
		}
	}
}

func TestInitial(t *testing.T) {
	for _, typ := range []model.FeedbackType{
		model.FeedbackTypeBug, model.FeedbackTypeFeature, model.FeedbackTypeGeneral,
	} {
		initial, err := Initial(typ)
		require.NoError(t, err)
		assert.Equal(t, model.SuggestionStatus("pending"), initial)
	}

	_, err := Initial("")
	assert.ErrorIs(t, err, errs.ErrUnknownWorkflow)
}
