package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"agendador/models"
	"agendador/utils"

	"go.uber.org/zap"
)

const (
	defaultDurationMinutes = 60
	createTimeout          = 10 * time.Second
)

// DefaultEventDispatcher is the production EventDispatcher. It owns the time
// arithmetic and payload shape; the Provider owns persistence.
type DefaultEventDispatcher struct {
	Provider Provider
	Zone     *time.Location
}

// Dispatch builds the event request from a complete draft and hands it to the
// provider. The reply text covers both outcomes; a non-nil error means the
// provider rejected the event.
func (d *DefaultEventDispatcher) Dispatch(ctx context.Context, draft *models.ConversationDraft) (string, error) {
	logger := utils.GetLogger()

	start, err := time.ParseInLocation("2006-01-02 15:04", draft.Date+" "+draft.Time, d.Zone)
	if err != nil {
		logger.Error("Invalid draft timestamp", zap.String("date", draft.Date), zap.String("time", draft.Time), zap.Error(err))
		dispatchErr := &DispatchError{Detail: "data ou hora inválida", Err: err}
		return failureReply(dispatchErr), dispatchErr
	}

	duration := draft.DurationMinutes
	if duration <= 0 {
		duration = defaultDurationMinutes
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	req := &EventRequest{
		Summary:     draft.Title,
		Description: "Reunião agendada via WhatsApp. Convidado(s): " + strings.Join(draft.ResolvedGuests, ", "),
		Start:       start,
		End:         end,
		Attendees:   draft.ResolvedGuests,
	}

	ctx, cancel := context.WithTimeout(ctx, createTimeout)
	defer cancel()

	link, err := d.Provider.CreateEvent(ctx, req)
	if err != nil {
		logger.Error("Calendar provider rejected event", zap.String("title", draft.Title), zap.Error(err))
		dispatchErr := &DispatchError{Detail: err.Error(), Err: err}
		return failureReply(dispatchErr), dispatchErr
	}

	logger.Info("Event created", zap.String("title", draft.Title), zap.String("link", link))
	reply := fmt.Sprintf("✅ Reunião %q agendada com sucesso!", draft.Title)
	if link != "" {
		reply += " Link: " + link
	}
	return reply, nil
}

func failureReply(err *DispatchError) string {
	return fmt.Sprintf("❌ Ops! Algo deu errado ao criar o evento no Google Calendar. Detalhe: %s. Seu rascunho foi mantido, é só me avisar para tentar de novo.", err.Detail)
}
