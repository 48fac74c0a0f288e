package extraction

import (
	"errors"
	"testing"
	"time"

	"agendador/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtraction_ScheduleFields(t *testing.T) {
	raw := `{"intent": "schedule", "fields": {"title": "reunião de planejamento", "date": "2025-07-01", "time": "15:00", "duration": 45, "guests": ["vini", "ana@x.com"]}}`

	result, err := parseExtraction(raw)
	require.NoError(t, err)
	assert.Equal(t, models.IntentSchedule, result.Intent)
	require.NotNil(t, result.Schedule)
	assert.Equal(t, "reunião de planejamento", result.Schedule.Title)
	assert.Equal(t, "2025-07-01", result.Schedule.Date)
	assert.Equal(t, "15:00", result.Schedule.Time)
	assert.Equal(t, 45, result.Schedule.DurationMinutes)
	assert.Equal(t, []string{"vini", "ana@x.com"}, result.Schedule.Guests)
	assert.Nil(t, result.Contact)
}

func TestParseExtraction_PartialScheduleFields(t *testing.T) {
	result, err := parseExtraction(`{"intent": "schedule", "fields": {"time": "09:30"}}`)
	require.NoError(t, err)
	require.NotNil(t, result.Schedule)
	assert.Equal(t, "09:30", result.Schedule.Time)
	assert.Empty(t, result.Schedule.Title)
	assert.Nil(t, result.Schedule.Guests, "unmentioned guests stay nil so merge preserves them")
}

func TestParseExtraction_SaveContact(t *testing.T) {
	result, err := parseExtraction(`{"intent": "save_contact", "fields": {"name": "Vini", "email": "vini@x.com"}}`)
	require.NoError(t, err)
	assert.Equal(t, models.IntentSaveContact, result.Intent)
	require.NotNil(t, result.Contact)
	assert.Equal(t, "Vini", result.Contact.Name)
	assert.Equal(t, "vini@x.com", result.Contact.Email)
}

func TestParseExtraction_CodeFencedOutput(t *testing.T) {
	raw := "```json\n{\"intent\": \"greeting\"}\n```"
	result, err := parseExtraction(raw)
	require.NoError(t, err)
	assert.Equal(t, models.IntentGreeting, result.Intent)
}

func TestParseExtraction_ProseWrappedOutput(t *testing.T) {
	raw := `Claro! Aqui está a classificação: {"intent": "unrelated"} Espero ter ajudado.`
	result, err := parseExtraction(raw)
	require.NoError(t, err)
	assert.Equal(t, models.IntentUnrelated, result.Intent)
}

func TestParseExtraction_MalformedOutputIsFormatError(t *testing.T) {
	cases := map[string]string{
		"no object":      "desculpe, não entendi",
		"broken json":    `{"intent": "schedule", "fields": {`,
		"fields not obj": `{"intent": "schedule", "fields": ["lista"]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseExtraction(raw)
			require.Error(t, err)
			var formatErr *FormatError
			assert.True(t, errors.As(err, &formatErr))
		})
	}
}

func TestParseExtraction_UnknownIntentIsNotAnError(t *testing.T) {
	result, err := parseExtraction(`{"intent": "weather_report"}`)
	require.NoError(t, err)
	assert.Equal(t, models.IntentUnknown, result.Intent)
	assert.Nil(t, result.Schedule)
	assert.Nil(t, result.Contact)
}

func TestParseExtraction_MissingFieldsObject(t *testing.T) {
	result, err := parseExtraction(`{"intent": "schedule"}`)
	require.NoError(t, err)
	require.NotNil(t, result.Schedule, "schedule intent always carries a fields struct")
	assert.Empty(t, result.Schedule.Title)
}

func TestBuildPrompt_EmbedsDateAndDraft(t *testing.T) {
	today := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	draft := &models.ConversationDraft{Title: "reunião", Date: "2025-07-02"}

	prompt := buildPrompt("e convida o vini", draft, today)
	assert.Contains(t, prompt, "2025-07-01", "today anchors relative dates")
	assert.Contains(t, prompt, `"reunião"`, "open draft is serialized for context")
	assert.Contains(t, prompt, "e convida o vini")
}

func TestBuildPrompt_NoDraftOmitsContext(t *testing.T) {
	prompt := buildPrompt("oi", nil, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	assert.NotContains(t, prompt, "rascunho atual")
}

func TestStripDecoration_KeepsOuterObject(t *testing.T) {
	got, err := stripDecoration(`texto {"a": {"b": 1}} texto`)
	require.NoError(t, err)
	assert.Equal(t, `{"a": {"b": 1}}`, got)
}
