package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agendador/models"
	"agendador/services/directory"
	"agendador/services/extraction"
	"agendador/utils"

	"go.uber.org/zap"
)

const (
	replyRetry         = "Tive um problema para processar seu pedido. Vamos tentar de novo. O que você gostaria de agendar?"
	replyGreeting      = "Olá! Sou seu assistente de agendamento. Me diga o que você quer marcar, com quem e quando."
	replyRedirect      = "Por enquanto só consigo ajudar com agendamentos e contatos. O que você gostaria de agendar?"
	replyUnknown       = "Não entendi. Pode reformular?"
	replyDirectoryDown = "Tive um problema ao acessar a agenda de contatos. Pode tentar novamente em instantes?"
	replyContactNeeded = "Para salvar um contato preciso do nome e do email. Pode me mandar os dois?"

	replyMissingFmt    = "Entendido! Para continuar, preciso que me informe: %s."
	replyUnresolvedFmt = "Não encontrei nos contatos: %s. Esses convidados ficaram de fora."
	replyContactSaved  = "Contato salvo: %s <%s>."
	replyContactDupFmt = "O contato %s <%s> já existia na agenda e foi atualizado."
)

// HandleTurn runs one full dialogue turn for a user: extract, merge, resolve,
// check completion, dispatch. Turns for the same user are strictly ordered;
// different users never block each other.
func (s *DefaultDialogueService) HandleTurn(ctx context.Context, userID, text string) string {
	lock := s.locks.acquire(userID)
	lock.Lock()
	defer lock.Unlock()

	logger := utils.GetLogger()

	draft, err := s.Drafts.Get(ctx, userID)
	if err != nil {
		logger.Error("Failed to load draft", zap.String("user", userID), zap.Error(err))
		return replyRetry
	}

	result, err := s.Extractor.Extract(ctx, text, draft, time.Now().In(s.Zone))
	if err != nil {
		var formatErr *extraction.FormatError
		if errors.As(err, &formatErr) {
			logger.Warn("Extractor output unparsable", zap.String("user", userID), zap.Error(err))
		} else {
			// Timeouts and transport errors count as extraction failure too.
			logger.Error("Extraction call failed", zap.String("user", userID), zap.Error(err))
		}
		return replyRetry
	}

	switch result.Intent {
	case models.IntentSchedule:
		return s.handleSchedule(ctx, userID, draft, result.Schedule)
	case models.IntentSaveContact:
		return s.handleSaveContact(ctx, userID, result.Contact)
	case models.IntentGreeting:
		s.clearDraft(ctx, userID)
		return replyGreeting
	case models.IntentUnrelated:
		s.clearDraft(ctx, userID)
		return replyRedirect
	default:
		// Unrecognized intent: no state change.
		return replyUnknown
	}
}

func (s *DefaultDialogueService) handleSchedule(ctx context.Context, userID string, draft *models.ConversationDraft, fields *models.ScheduleFields) string {
	logger := utils.GetLogger()

	merged := Merge(draft, fields)
	resolved, unresolved, err := s.resolver.Resolve(ctx, merged.RawGuests)
	if err != nil {
		// Directory outage: the stored draft stays exactly as it was.
		logger.Error("Guest resolution failed", zap.String("user", userID), zap.Error(err))
		return replyDirectoryDown
	}
	merged.ResolvedGuests = resolved

	missing := MissingFields(merged)
	if len(missing) > 0 {
		if err := s.Drafts.Set(ctx, userID, merged); err != nil {
			logger.Error("Failed to store draft", zap.String("user", userID), zap.Error(err))
			return replyRetry
		}
		reply := fmt.Sprintf(replyMissingFmt, strings.Join(missing, ", "))
		return withUnresolvedNote(reply, unresolved)
	}

	reply, err := s.Dispatcher.Dispatch(ctx, merged)
	if err != nil {
		// Keep the completed draft so a retry does not re-enter every field.
		if serr := s.Drafts.Set(ctx, userID, merged); serr != nil {
			logger.Error("Failed to retain draft after dispatch failure", zap.String("user", userID), zap.Error(serr))
		}
		return reply
	}

	s.clearDraft(ctx, userID)
	if s.Reminders != nil {
		if rerr := s.Reminders.ScheduleEventReminder(ctx, userID, merged); rerr != nil {
			logger.Warn("Failed to schedule reminder", zap.String("user", userID), zap.Error(rerr))
		}
	}
	return withUnresolvedNote(reply, unresolved)
}

func (s *DefaultDialogueService) handleSaveContact(ctx context.Context, userID string, fields *models.ContactFields) string {
	logger := utils.GetLogger()

	if fields == nil || strings.TrimSpace(fields.Name) == "" || strings.TrimSpace(fields.Email) == "" {
		return replyContactNeeded
	}

	contact, err := s.Directory.Upsert(ctx, fields.Name, fields.Email)
	if err != nil {
		var dup *directory.DuplicateContactError
		if errors.As(err, &dup) {
			s.clearDraft(ctx, userID)
			return fmt.Sprintf(replyContactDupFmt, dup.Name, dup.Email)
		}
		logger.Error("Contact upsert failed", zap.String("user", userID), zap.Error(err))
		return replyDirectoryDown
	}

	// Saving a contact abandons any open booking conversation.
	s.clearDraft(ctx, userID)
	return fmt.Sprintf(replyContactSaved, contact.Name, contact.Email)
}

func (s *DefaultDialogueService) clearDraft(ctx context.Context, userID string) {
	if err := s.Drafts.Clear(ctx, userID); err != nil {
		utils.GetLogger().Error("Failed to clear draft", zap.String("user", userID), zap.Error(err))
	}
}

func withUnresolvedNote(reply string, unresolved []string) string {
	if len(unresolved) == 0 {
		return reply
	}
	return reply + "\n" + fmt.Sprintf(replyUnresolvedFmt, strings.Join(unresolved, ", "))
}
