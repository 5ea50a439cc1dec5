package impl

import (
	"context"
	"testing"

	"adopet/internal/domain/entity"
	"adopet/internal/domain/notification"
	"adopet/internal/domain/service"
	"adopet/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestNotifier(users map[string]*entity.UserProfile) (usecase.NotifierUsecase, *fakePushService) {
	push := &fakePushService{errByToken: make(map[string]error)}
	notifier := NewNotifierService(&fakeUserRepo{users: users}, push, testLogger())

	return notifier, push
}

func TestNotifierService_Notify_Success(t *testing.T) {
	notifier, push := createTestNotifier(map[string]*entity.UserProfile{
		"owner-1": {ID: "owner-1", Username: "maria", PushToken: "token-1", NotificationsEnabled: true},
	})

	result := notifier.Notify(context.Background(), "owner-1", notification.KindNewChat, notification.Context{
		ChatID:     "chat-1",
		AnimalName: "Rex",
		ActorName:  "Maria",
	})

	require.Equal(t, usecase.DeliverySent, result.Status)
	assert.NotEmpty(t, result.MessageID)

	sent := push.sentTo("token-1")
	require.Len(t, sent, 1)
	assert.Equal(t, "Maria is interested in adopting Rex", sent[0].payload.Body)
	assert.Equal(t, "new_chat", sent[0].payload.Data["type"])
}

func TestNotifierService_Notify_UserMissing(t *testing.T) {
	notifier, push := createTestNotifier(map[string]*entity.UserProfile{})

	result := notifier.Notify(context.Background(), "ghost", notification.KindNewMessage, notification.Context{})

	assert.Equal(t, usecase.DeliverySkipped, result.Status)
	assert.Equal(t, usecase.ReasonProfileNotFound, result.Reason)
	assert.Empty(t, push.sent)
}

func TestNotifierService_Notify_NotificationsDisabled(t *testing.T) {
	notifier, push := createTestNotifier(map[string]*entity.UserProfile{
		"user-1": {ID: "user-1", PushToken: "token-1", NotificationsEnabled: false},
	})

	result := notifier.Notify(context.Background(), "user-1", notification.KindNewMessage, notification.Context{})

	assert.Equal(t, usecase.DeliverySkipped, result.Status)
	assert.Equal(t, usecase.ReasonNotificationsDisabled, result.Reason)
	assert.Empty(t, push.sent)
}

func TestNotifierService_Notify_NoPushToken(t *testing.T) {
	notifier, push := createTestNotifier(map[string]*entity.UserProfile{
		"user-1": {ID: "user-1", NotificationsEnabled: true},
	})

	result := notifier.Notify(context.Background(), "user-1", notification.KindNewMessage, notification.Context{})

	assert.Equal(t, usecase.DeliverySkipped, result.Status)
	assert.Equal(t, usecase.ReasonNoPushToken, result.Reason)
	assert.Empty(t, push.sent)
}

func TestNotifierService_Notify_InvalidToken(t *testing.T) {
	notifier, push := createTestNotifier(map[string]*entity.UserProfile{
		"user-1": {ID: "user-1", PushToken: "dead-token", NotificationsEnabled: true},
	})
	push.errByToken["dead-token"] = service.ErrTokenInvalid

	result := notifier.Notify(context.Background(), "user-1", notification.KindNewMessage, notification.Context{})

	assert.Equal(t, usecase.DeliveryFailed, result.Status)
	assert.Equal(t, usecase.ReasonTokenInvalid, result.Reason)
}

func TestNotifierService_Notify_GatewayError(t *testing.T) {
	notifier, push := createTestNotifier(map[string]*entity.UserProfile{
		"user-1": {ID: "user-1", PushToken: "token-1", NotificationsEnabled: true},
	})
	push.errByToken["token-1"] = errors.New("fcm unavailable")

	result := notifier.Notify(context.Background(), "user-1", notification.KindNewMessage, notification.Context{})

	assert.Equal(t, usecase.DeliveryFailed, result.Status)
	assert.Equal(t, usecase.ReasonDeliveryFailed, result.Reason)
}

func TestNotifierService_NotifyTest_UsesTestChannel(t *testing.T) {
	notifier, push := createTestNotifier(map[string]*entity.UserProfile{
		"user-1": {ID: "user-1", PushToken: "token-1", NotificationsEnabled: true},
	})

	result := notifier.NotifyTest(context.Background(), "user-1", "nova_mensagem")

	require.Equal(t, usecase.DeliverySent, result.Status)
	sent := push.sentTo("token-1")
	require.Len(t, sent, 1)
	assert.Equal(t, "testes", sent[0].payload.Channel)
	assert.Equal(t, "true", sent[0].payload.Data["test"])
}

func TestNotifierService_NotifyDirect(t *testing.T) {
	notifier, push := createTestNotifier(map[string]*entity.UserProfile{
		"user-1": {ID: "user-1", PushToken: "token-1", NotificationsEnabled: true},
	})

	result := notifier.NotifyDirect(context.Background(), "user-1", "Checkup reminder", "Time to visit the vet")

	require.Equal(t, usecase.DeliverySent, result.Status)
	sent := push.sentTo("token-1")
	require.Len(t, sent, 1)
	assert.Equal(t, "Checkup reminder", sent[0].payload.Title)
	assert.Equal(t, "Time to visit the vet", sent[0].payload.Body)
}
