package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"agendador/models"
)

const generateTimeout = 15 * time.Second

// Extractor classifies one user turn and, for scheduling and contact intents,
// extracts the structured fields it mentions.
type Extractor interface {
	Extract(ctx context.Context, text string, draft *models.ConversationDraft, today time.Time) (*models.ExtractionResult, error)
}

// GeminiExtractor implements Extractor on top of the Gemini client.
type GeminiExtractor struct {
	Client *GeminiClient
}

func NewGeminiExtractor(apiKey string) *GeminiExtractor {
	return &GeminiExtractor{Client: NewGeminiClient(apiKey)}
}

func (e *GeminiExtractor) Extract(ctx context.Context, text string, draft *models.ConversationDraft, today time.Time) (*models.ExtractionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	prompt := buildPrompt(text, draft, today)
	raw, err := e.Client.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("extraction call failed: %w", err)
	}
	return parseExtraction(raw)
}

// buildPrompt asks Gemini for a bare JSON object classifying the turn.
// When a draft is open, it is serialized into the prompt so the model can
// interpret elliptical continuations ("e convida também o vini").
func buildPrompt(text string, draft *models.ConversationDraft, today time.Time) string {
	var sb strings.Builder
	sb.WriteString("Sua tarefa é interpretar mensagens de um assistente de agendamento. Hoje é ")
	sb.WriteString(today.Format("2006-01-02"))
	sb.WriteString(".\n")
	sb.WriteString("Classifique a mensagem do usuário em um dos intents: schedule, save_contact, greeting, unrelated.\n")

	if draft != nil {
		if b, err := json.Marshal(draft); err == nil {
			sb.WriteString("O usuário já forneceu algumas informações para um agendamento. O rascunho atual é: ")
			sb.Write(b)
			sb.WriteString(". A nova mensagem dele pode ser uma continuação disso; use-a para preencher os campos que faltam.\n")
		}
	}

	sb.WriteString(`Para intent "schedule", extraia em "fields": title, date (AAAA-MM-DD), time (HH:MM), duration (minutos), guests (array de nomes ou emails). Inclua apenas os campos mencionados nesta mensagem.
Para intent "save_contact", extraia em "fields": name, email.
Responda APENAS com um objeto JSON no formato {"intent": "...", "fields": {...}}. Não inclua a chave "error".

Mensagem do usuário: "`)
	sb.WriteString(text)
	sb.WriteString("\"\n\nJSON de resposta:\n")
	return sb.String()
}

// envelope is the loosely-typed wire shape the model answers with.
type envelope struct {
	Intent string          `json:"intent"`
	Fields json.RawMessage `json:"fields"`
}

// parseExtraction decodes the model output defensively into the tagged
// ExtractionResult variant. Any parse or shape mismatch yields a FormatError.
func parseExtraction(raw string) (*models.ExtractionResult, error) {
	jsonStr, err := stripDecoration(raw)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal([]byte(jsonStr), &env); err != nil {
		return nil, &FormatError{Detail: "invalid JSON envelope", Err: err}
	}

	switch models.Intent(env.Intent) {
	case models.IntentSchedule:
		var fields models.ScheduleFields
		if len(env.Fields) > 0 {
			if err := json.Unmarshal(env.Fields, &fields); err != nil {
				return nil, &FormatError{Detail: "invalid schedule fields", Err: err}
			}
		}
		return &models.ExtractionResult{Intent: models.IntentSchedule, Schedule: &fields}, nil
	case models.IntentSaveContact:
		var fields models.ContactFields
		if len(env.Fields) > 0 {
			if err := json.Unmarshal(env.Fields, &fields); err != nil {
				return nil, &FormatError{Detail: "invalid contact fields", Err: err}
			}
		}
		return &models.ExtractionResult{Intent: models.IntentSaveContact, Contact: &fields}, nil
	case models.IntentGreeting:
		return &models.ExtractionResult{Intent: models.IntentGreeting}, nil
	case models.IntentUnrelated:
		return &models.ExtractionResult{Intent: models.IntentUnrelated}, nil
	default:
		// Unrecognized intents are a no-op turn, not a failure.
		return &models.ExtractionResult{Intent: models.IntentUnknown}, nil
	}
}

// stripDecoration removes code fences and surrounding prose the model may
// wrap its JSON in, keeping the first top-level object.
func stripDecoration(raw string) (string, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return "", &FormatError{Detail: "no JSON object in output"}
	}
	return cleaned[start : end+1], nil
}
