package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"agendador/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	req  *EventRequest
	link string
	err  error
}

func (f *fakeProvider) CreateEvent(ctx context.Context, req *EventRequest) (string, error) {
	f.req = req
	return f.link, f.err
}

func completeDraft() *models.ConversationDraft {
	return &models.ConversationDraft{
		Title:          "reunião de planejamento",
		Date:           "2025-07-01",
		Time:           "15:00",
		ResolvedGuests: []string{"ana@x.com", "vini@x.com"},
	}
}

func TestDispatch_BuildsEventRequest(t *testing.T) {
	provider := &fakeProvider{link: "https://calendar.example/evt"}
	d := &DefaultEventDispatcher{Provider: provider, Zone: time.UTC}

	reply, err := d.Dispatch(context.Background(), completeDraft())
	require.NoError(t, err)

	req := provider.req
	require.NotNil(t, req)
	assert.Equal(t, "reunião de planejamento", req.Summary)
	assert.Equal(t, time.Date(2025, 7, 1, 15, 0, 0, 0, time.UTC), req.Start)
	assert.Equal(t, req.Start.Add(60*time.Minute), req.End, "default duration is one hour")
	assert.Equal(t, []string{"ana@x.com", "vini@x.com"}, req.Attendees)
	assert.Contains(t, req.Description, "ana@x.com")

	assert.Contains(t, reply, "✅")
	assert.Contains(t, reply, "reunião de planejamento")
	assert.Contains(t, reply, "https://calendar.example/evt")
}

func TestDispatch_ExplicitDuration(t *testing.T) {
	provider := &fakeProvider{}
	d := &DefaultEventDispatcher{Provider: provider, Zone: time.UTC}

	draft := completeDraft()
	draft.DurationMinutes = 90
	_, err := d.Dispatch(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, provider.req.Start.Add(90*time.Minute), provider.req.End)
}

func TestDispatch_StartIsInterpretedInZone(t *testing.T) {
	zone := time.FixedZone("BRT", -3*60*60)
	provider := &fakeProvider{}
	d := &DefaultEventDispatcher{Provider: provider, Zone: zone}

	_, err := d.Dispatch(context.Background(), completeDraft())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 1, 15, 0, 0, 0, zone), provider.req.Start)
}

func TestDispatch_ProviderFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("quota exceeded")}
	d := &DefaultEventDispatcher{Provider: provider, Zone: time.UTC}

	reply, err := d.Dispatch(context.Background(), completeDraft())
	require.Error(t, err)

	var dispatchErr *DispatchError
	require.True(t, errors.As(err, &dispatchErr))
	assert.Contains(t, reply, "❌")
	assert.Contains(t, reply, "quota exceeded")
	assert.Contains(t, reply, "rascunho foi mantido")
}

func TestDispatch_InvalidTimestamp(t *testing.T) {
	provider := &fakeProvider{}
	d := &DefaultEventDispatcher{Provider: provider, Zone: time.UTC}

	draft := completeDraft()
	draft.Time = "amanhã cedo"
	reply, err := d.Dispatch(context.Background(), draft)
	require.Error(t, err)

	var dispatchErr *DispatchError
	require.True(t, errors.As(err, &dispatchErr))
	assert.Contains(t, reply, "data ou hora inválida")
	assert.Nil(t, provider.req, "nothing reaches the provider")
}

func TestDispatch_ReplyWithoutLink(t *testing.T) {
	d := &DefaultEventDispatcher{Provider: &fakeProvider{}, Zone: time.UTC}

	reply, err := d.Dispatch(context.Background(), completeDraft())
	require.NoError(t, err)
	assert.NotContains(t, reply, "Link:")
}
