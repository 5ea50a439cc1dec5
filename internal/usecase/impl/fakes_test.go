package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"adopet/internal/domain/entity"
	"adopet/internal/domain/notification"
	"adopet/internal/domain/repository"
	"adopet/internal/usecase"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users map[string]*entity.UserProfile
	err   error
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*entity.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return u, nil
}

type sentPush struct {
	token   string
	payload notification.Payload
}

// fakePushService records sends and can fail per token.
type fakePushService struct {
	mu         sync.Mutex
	sent       []sentPush
	errByToken map[string]error
}

func (f *fakePushService) Send(_ context.Context, token string, payload notification.Payload) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.errByToken[token]; ok && err != nil {
		return "", err
	}
	f.sent = append(f.sent, sentPush{token: token, payload: payload})

	return fmt.Sprintf("msg-%d", len(f.sent)), nil
}

func (f *fakePushService) sentTo(token string) []sentPush {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []sentPush
	for _, s := range f.sent {
		if s.token == token {
			out = append(out, s)
		}
	}

	return out
}

// fakeAnimalRepo mirrors the claim semantics of the store transaction.
type fakeAnimalRepo struct {
	mu      sync.Mutex
	animals map[string]*entity.Animal
}

func (f *fakeAnimalRepo) FindByID(_ context.Context, id string) (*entity.Animal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	a, ok := f.animals[id]
	if !ok {
		return nil, repository.ErrAnimalNotFound
	}

	return a, nil
}

func (f *fakeAnimalRepo) ClaimAdoption(_ context.Context, animalID, adopterID string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	a, ok := f.animals[animalID]
	if !ok {
		return repository.ErrAnimalNotFound
	}
	if !a.Available {
		if a.AdoptedBy == adopterID {
			return nil
		}

		return repository.ErrAnimalAlreadyAdopted
	}
	a.Available = false
	a.AdoptedBy = adopterID
	a.AdoptedAt = &at
	a.OwnerID = adopterID

	return nil
}

// fakeChatRepo is an in-memory ChatRepository.
type fakeChatRepo struct {
	mu        sync.Mutex
	chats     map[string]*entity.ChatRoom
	messages  map[string][]*entity.Message
	unread    map[string]int
	deleteErr map[string]error
	deleted   []string
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:     make(map[string]*entity.ChatRoom),
		messages:  make(map[string][]*entity.Message),
		unread:    make(map[string]int),
		deleteErr: make(map[string]error),
	}
}

func (f *fakeChatRepo) FindByID(_ context.Context, id string) (*entity.ChatRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.chats[id]
	if !ok {
		return nil, repository.ErrChatNotFound
	}

	return c, nil
}

func (f *fakeChatRepo) FindByAnimal(_ context.Context, animalID string) ([]*entity.ChatRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.ChatRoom
	for _, c := range f.chats {
		if c.Context.AnimalID == animalID {
			out = append(out, c)
		}
	}

	return out, nil
}

func (f *fakeChatRepo) AppendMessage(_ context.Context, chatID string, msg *entity.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.chats[chatID]; !ok {
		return repository.ErrChatNotFound
	}
	f.messages[chatID] = append(f.messages[chatID], msg)
	c := f.chats[chatID]
	c.LastMessage = msg.Text
	c.LastMessageAt = &msg.CreatedAt

	return nil
}

func (f *fakeChatRepo) IncrementUnread(_ context.Context, chatID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.chats[chatID]; !ok {
		return repository.ErrChatNotFound
	}
	f.unread[chatID+":"+userID]++

	return nil
}

func (f *fakeChatRepo) MarkAdoptionConfirmed(_ context.Context, chatID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.chats[chatID]
	if !ok {
		return repository.ErrChatNotFound
	}
	c.AdoptionConfirmed = true

	return nil
}

func (f *fakeChatRepo) DeleteWithMessages(_ context.Context, chatID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.deleteErr[chatID]; ok && err != nil {
		return err
	}
	delete(f.chats, chatID)
	delete(f.messages, chatID)
	f.deleted = append(f.deleted, chatID)

	return nil
}

// fakeAdoptionRepo is an in-memory AdoptionRepository.
type fakeAdoptionRepo struct {
	mu      sync.Mutex
	intents map[string]*entity.AdoptionIntent
	denyErr error
}

func (f *fakeAdoptionRepo) FindPendingByAnimal(_ context.Context, animalID string) ([]*entity.AdoptionIntent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.AdoptionIntent
	for _, i := range f.intents {
		if i.AnimalID == animalID && i.Status == entity.IntentPending {
			out = append(out, i)
		}
	}

	return out, nil
}

func (f *fakeAdoptionRepo) FindByAnimal(_ context.Context, animalID string) ([]*entity.AdoptionIntent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.AdoptionIntent
	for _, i := range f.intents {
		if i.AnimalID == animalID {
			out = append(out, i)
		}
	}

	return out, nil
}

func (f *fakeAdoptionRepo) DenyAll(_ context.Context, intents []*entity.AdoptionIntent, reason string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.denyErr != nil {
		return f.denyErr
	}
	for _, i := range intents {
		stored, ok := f.intents[i.ID]
		if !ok {
			stored = i
			f.intents[i.ID] = stored
		}
		stored.Status = entity.IntentDenied
		stored.AutoDenied = true
		stored.Reason = reason
		decidedAt := at
		stored.DecidedAt = &decidedAt
	}

	return nil
}

// fakeAdoptionUC records resolution calls for dispatcher tests.
type fakeAdoptionUC struct {
	mu    sync.Mutex
	res   *usecase.AdoptionResolution
	err   error
	calls []*entity.AdoptionIntent
}

func (f *fakeAdoptionUC) ResolveConfirmation(_ context.Context, intent *entity.AdoptionIntent) (*usecase.AdoptionResolution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, intent)
	if f.err != nil {
		return nil, f.err
	}
	if f.res != nil {
		return f.res, nil
	}

	return &usecase.AdoptionResolution{Claimed: true}, nil
}
