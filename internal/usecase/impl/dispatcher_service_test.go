package impl

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"adopet/internal/domain/entity"
	"adopet/internal/domain/service"
	"adopet/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dispatcherFixture struct {
	svc      usecase.DispatcherUsecase
	chats    *fakeChatRepo
	push     *fakePushService
	adoption *fakeAdoptionUC
}

func newDispatcherFixture() *dispatcherFixture {
	chats := newFakeChatRepo()
	users := map[string]*entity.UserProfile{
		"owner-1":      {ID: "owner-1", Username: "maria", PushToken: "token-owner", NotificationsEnabled: true},
		"interested-1": {ID: "interested-1", Username: "joao", PushToken: "token-interested", NotificationsEnabled: true},
	}
	userRepo := &fakeUserRepo{users: users}
	push := &fakePushService{errByToken: make(map[string]error)}
	adoption := &fakeAdoptionUC{}

	logger := testLogger()
	notifier := NewNotifierService(userRepo, push, logger)
	svc := NewDispatcherService(chats, userRepo, adoption, notifier, logger)

	return &dispatcherFixture{svc: svc, chats: chats, push: push, adoption: adoption}
}

func chatCreatedEvent(t *testing.T, chat *entity.ChatRoom) *service.DocumentEvent {
	t.Helper()
	doc, err := json.Marshal(chat)
	require.NoError(t, err)

	return &service.DocumentEvent{
		Stream:     service.StreamChatCreated,
		DocumentID: chat.ID,
		Document:   doc,
	}
}

func messageCreatedEvent(t *testing.T, chatID string, msg *entity.Message) *service.DocumentEvent {
	t.Helper()
	doc, err := json.Marshal(msg)
	require.NoError(t, err)

	return &service.DocumentEvent{
		Stream:     service.StreamMessageCreated,
		DocumentID: msg.ID,
		ParentID:   chatID,
		Document:   doc,
	}
}

func intentCreatedEvent(t *testing.T, intent *entity.AdoptionIntent) *service.DocumentEvent {
	t.Helper()
	doc, err := json.Marshal(intent)
	require.NoError(t, err)

	return &service.DocumentEvent{
		Stream:     service.StreamIntentCreated,
		DocumentID: intent.ID,
		Document:   doc,
	}
}

func TestDispatcherService_UnknownStream(t *testing.T) {
	f := newDispatcherFixture()

	outcome := f.svc.Dispatch(context.Background(), &service.DocumentEvent{Stream: "user_created", DocumentID: "x"})

	assert.Equal(t, usecase.OutcomeSkipped, outcome.Status)
	assert.Equal(t, reasonUnknownStream, outcome.Reason)
}

func TestDispatcherService_ChatCreated_NotifiesOwner(t *testing.T) {
	f := newDispatcherFixture()
	chat := &entity.ChatRoom{
		ID:           "chat-1",
		Participants: []string{"owner-1", "interested-1"},
		Context:      entity.ChatContext{AnimalID: "animal-1", OwnerID: "owner-1", InterestedID: "interested-1", AnimalName: "Rex"},
	}

	outcome := f.svc.Dispatch(context.Background(), chatCreatedEvent(t, chat))

	require.Equal(t, usecase.OutcomeHandled, outcome.Status)
	require.Len(t, outcome.Deliveries, 1)
	assert.Equal(t, usecase.DeliverySent, outcome.Deliveries[0].Status)

	sent := f.push.sentTo("token-owner")
	require.Len(t, sent, 1)
	assert.Equal(t, "joao is interested in adopting Rex", sent[0].payload.Body)
	assert.Equal(t, "new_chat", sent[0].payload.Data["type"])
	assert.Equal(t, "FLUTTER_NOTIFICATION_CLICK", sent[0].payload.Data["click_action"])
	assert.Equal(t, "chat-1", sent[0].payload.Data["chatId"])
}

func TestDispatcherService_ChatCreated_TestMarkerSkips(t *testing.T) {
	f := newDispatcherFixture()
	chat := &entity.ChatRoom{
		ID:                 "chat-test",
		Participants:       []string{"owner-1", "interested-1"},
		Context:            entity.ChatContext{AnimalID: "animal-1", OwnerID: "owner-1", InterestedID: "interested-1"},
		IsTestNotification: true,
	}

	outcome := f.svc.Dispatch(context.Background(), chatCreatedEvent(t, chat))

	assert.Equal(t, usecase.OutcomeSkipped, outcome.Status)
	assert.Equal(t, reasonTestData, outcome.Reason)
	assert.Empty(t, f.push.sent)
}

func TestDispatcherService_MessageCreated_NotifiesOtherParticipant(t *testing.T) {
	f := newDispatcherFixture()
	f.chats.chats["chat-1"] = &entity.ChatRoom{
		ID:           "chat-1",
		Participants: []string{"owner-1", "interested-1"},
		Context:      entity.ChatContext{AnimalID: "animal-1", OwnerID: "owner-1", InterestedID: "interested-1", AnimalName: "Rex"},
	}
	msg := &entity.Message{
		ID:        "msg-1",
		Text:      "Hi! Is Rex still available?",
		CreatedAt: time.Now(),
		Sender:    entity.MessageSender{ID: "interested-1", Name: "João"},
	}

	outcome := f.svc.Dispatch(context.Background(), messageCreatedEvent(t, "chat-1", msg))

	require.Equal(t, usecase.OutcomeHandled, outcome.Status)

	// Recipient is the other participant, with the unread counter bumped
	assert.Equal(t, 1, f.chats.unread["chat-1:owner-1"])
	sent := f.push.sentTo("token-owner")
	require.Len(t, sent, 1)
	assert.Equal(t, "João: Hi! Is Rex still available?", sent[0].payload.Body)
	assert.Equal(t, "nova_mensagem", sent[0].payload.Data["type"])
	assert.Empty(t, f.push.sentTo("token-interested"))
}

func TestDispatcherService_MessageCreated_LongPreviewTruncated(t *testing.T) {
	f := newDispatcherFixture()
	f.chats.chats["chat-1"] = &entity.ChatRoom{
		ID:           "chat-1",
		Participants: []string{"owner-1", "interested-1"},
		Context:      entity.ChatContext{AnimalID: "animal-1", OwnerID: "owner-1", InterestedID: "interested-1"},
	}
	longText := strings.Repeat("a", 80)
	msg := &entity.Message{
		ID:        "msg-1",
		Text:      longText,
		CreatedAt: time.Now(),
		Sender:    entity.MessageSender{ID: "interested-1", Name: "João"},
	}

	outcome := f.svc.Dispatch(context.Background(), messageCreatedEvent(t, "chat-1", msg))

	require.Equal(t, usecase.OutcomeHandled, outcome.Status)
	sent := f.push.sentTo("token-owner")
	require.Len(t, sent, 1)
	preview := strings.TrimPrefix(sent[0].payload.Body, "João: ")
	assert.Len(t, []rune(preview), 53)
	assert.True(t, strings.HasSuffix(preview, "..."))
}

func TestDispatcherService_MessageCreated_SystemMessageSkips(t *testing.T) {
	f := newDispatcherFixture()
	f.chats.chats["chat-1"] = &entity.ChatRoom{
		ID:           "chat-1",
		Participants: []string{"owner-1", "interested-1"},
	}
	msg := &entity.Message{
		ID:        "msg-sys",
		Text:      "The adoption of Rex has been confirmed. Congratulations!",
		CreatedAt: time.Now(),
		Sender:    entity.MessageSender{ID: entity.SystemSenderID},
		IsSystem:  true,
	}

	outcome := f.svc.Dispatch(context.Background(), messageCreatedEvent(t, "chat-1", msg))

	assert.Equal(t, usecase.OutcomeSkipped, outcome.Status)
	assert.Equal(t, reasonSystemMessage, outcome.Reason)
	assert.Empty(t, f.push.sent)
}

func TestDispatcherService_MessageCreated_ChatGoneSkips(t *testing.T) {
	f := newDispatcherFixture()
	msg := &entity.Message{
		ID:        "msg-1",
		Text:      "hello?",
		CreatedAt: time.Now(),
		Sender:    entity.MessageSender{ID: "interested-1"},
	}

	outcome := f.svc.Dispatch(context.Background(), messageCreatedEvent(t, "chat-deleted", msg))

	assert.Equal(t, usecase.OutcomeSkipped, outcome.Status)
	assert.Equal(t, reasonChatGone, outcome.Reason)
}

func TestDispatcherService_MessageCreated_FinalizedChatSkips(t *testing.T) {
	f := newDispatcherFixture()
	f.chats.chats["chat-1"] = &entity.ChatRoom{
		ID:                "chat-1",
		Participants:      []string{"owner-1", "interested-1"},
		AdoptionConfirmed: true,
	}
	msg := &entity.Message{
		ID:        "msg-1",
		Text:      "when can I pick him up?",
		CreatedAt: time.Now(),
		Sender:    entity.MessageSender{ID: "interested-1"},
	}

	outcome := f.svc.Dispatch(context.Background(), messageCreatedEvent(t, "chat-1", msg))

	assert.Equal(t, usecase.OutcomeSkipped, outcome.Status)
	assert.Equal(t, reasonChatFinalized, outcome.Reason)
	assert.Empty(t, f.push.sent)
}

func TestDispatcherService_IntentCreated_PendingSkips(t *testing.T) {
	f := newDispatcherFixture()
	intent := &entity.AdoptionIntent{
		ID:           "intent-1",
		AnimalID:     "animal-1",
		InterestedID: "interested-1",
		OwnerID:      "owner-1",
		Status:       entity.IntentPending,
		CreatedAt:    time.Now(),
	}

	outcome := f.svc.Dispatch(context.Background(), intentCreatedEvent(t, intent))

	assert.Equal(t, usecase.OutcomeSkipped, outcome.Status)
	assert.Equal(t, reasonIntentPending, outcome.Reason)
	assert.Empty(t, f.adoption.calls)
}

func TestDispatcherService_IntentCreated_DeniedNotifiesRequester(t *testing.T) {
	f := newDispatcherFixture()
	intent := &entity.AdoptionIntent{
		ID:           "intent-1",
		AnimalID:     "animal-1",
		InterestedID: "interested-1",
		OwnerID:      "owner-1",
		AnimalName:   "Rex",
		Status:       entity.IntentDenied,
		CreatedAt:    time.Now(),
	}

	outcome := f.svc.Dispatch(context.Background(), intentCreatedEvent(t, intent))

	require.Equal(t, usecase.OutcomeHandled, outcome.Status)
	sent := f.push.sentTo("token-interested")
	require.Len(t, sent, 1)
	assert.Equal(t, "maria did not approve your request for Rex", sent[0].payload.Body)
	assert.Equal(t, "adocao_recusada", sent[0].payload.Data["type"])
	assert.Empty(t, f.adoption.calls)
}

func TestDispatcherService_IntentCreated_ConfirmedDelegatesToResolver(t *testing.T) {
	f := newDispatcherFixture()
	f.adoption.res = &usecase.AdoptionResolution{
		Claimed: true,
		Deliveries: []*usecase.DeliveryResult{
			{RecipientID: "interested-1", Status: usecase.DeliverySent},
		},
	}
	intent := &entity.AdoptionIntent{
		ID:           "intent-1",
		AnimalID:     "animal-1",
		InterestedID: "interested-1",
		OwnerID:      "owner-1",
		Status:       entity.IntentConfirmed,
		CreatedAt:    time.Now(),
	}

	outcome := f.svc.Dispatch(context.Background(), intentCreatedEvent(t, intent))

	require.Equal(t, usecase.OutcomeHandled, outcome.Status)
	require.Len(t, f.adoption.calls, 1)
	assert.Equal(t, "intent-1", f.adoption.calls[0].ID)
	assert.Len(t, outcome.Deliveries, 1)
}

func TestDispatcherService_IntentCreated_ResolverErrorFails(t *testing.T) {
	f := newDispatcherFixture()
	f.adoption.err = assert.AnError
	intent := &entity.AdoptionIntent{
		ID:           "intent-1",
		AnimalID:     "animal-1",
		InterestedID: "interested-1",
		OwnerID:      "owner-1",
		Status:       entity.IntentConfirmed,
		CreatedAt:    time.Now(),
	}

	outcome := f.svc.Dispatch(context.Background(), intentCreatedEvent(t, intent))

	assert.Equal(t, usecase.OutcomeFailed, outcome.Status)
}

func TestDispatcherService_MalformedDocumentSkips(t *testing.T) {
	f := newDispatcherFixture()

	// Malformed documents are dropped without side effects, never retried.
	outcome := f.svc.Dispatch(context.Background(), &service.DocumentEvent{
		Stream:     service.StreamChatCreated,
		DocumentID: "chat-1",
		Document:   json.RawMessage(`{"participants": "not-an-array"}`),
	})

	assert.Equal(t, usecase.OutcomeSkipped, outcome.Status)
	assert.Equal(t, reasonMalformedEvent, outcome.Reason)
}

func TestDispatcherService_MessageWithoutChatIDSkips(t *testing.T) {
	f := newDispatcherFixture()

	outcome := f.svc.Dispatch(context.Background(), &service.DocumentEvent{
		Stream:     service.StreamMessageCreated,
		DocumentID: "msg-1",
		Document:   json.RawMessage(`{"text": "hello"}`),
	})

	assert.Equal(t, usecase.OutcomeSkipped, outcome.Status)
	assert.Equal(t, reasonMalformedEvent, outcome.Reason)
}
