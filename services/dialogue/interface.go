package dialogue

import (
	"context"
	"sync"
	"time"

	"agendador/models"
	"agendador/services/calendar"
	"agendador/services/directory"
	"agendador/services/extraction"
)

// DialogueService is the single entry point of the conversation core: one
// inbound message in, one reply out. All failures surface as reply text.
type DialogueService interface {
	HandleTurn(ctx context.Context, userID, text string) string
}

// ReminderScheduler enqueues a pre-meeting reminder after a successful
// dispatch. Best-effort; failures are logged, never shown to the user.
type ReminderScheduler interface {
	ScheduleEventReminder(ctx context.Context, userID string, draft *models.ConversationDraft) error
}

// DefaultDialogueService is the production implementation.
type DefaultDialogueService struct {
	Extractor  extraction.Extractor
	Directory  directory.DirectoryService
	Dispatcher calendar.EventDispatcher
	Drafts     DraftStore
	Reminders  ReminderScheduler // optional
	Zone       *time.Location

	resolver GuestResolver
	locks    userLocks
}

func NewDefaultDialogueService(
	extractor extraction.Extractor,
	dir directory.DirectoryService,
	dispatcher calendar.EventDispatcher,
	drafts DraftStore,
	reminders ReminderScheduler,
	zone *time.Location,
) *DefaultDialogueService {
	return &DefaultDialogueService{
		Extractor:  extractor,
		Directory:  dir,
		Dispatcher: dispatcher,
		Drafts:     drafts,
		Reminders:  reminders,
		Zone:       zone,
		resolver:   GuestResolver{Directory: dir},
	}
}

// userLocks serializes turns per user while letting different users proceed
// independently. Entries are never evicted; the set of users is small.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *userLocks) acquire(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	lock, ok := l.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[userID] = lock
	}
	return lock
}
