package notification

import (
	"fmt"
)

// Android notification channels, one per kind, used for OS-level grouping.
const (
	channelNewChats  = "novos_chats"
	channelMessages  = "mensagens"
	channelAdoptions = "adocoes"
	channelReminders = "lembretes"
	channelTests     = "testes"
)

// Accent colors shown next to the notification on Android.
const (
	colorNewChat   = "#88c9bf"
	colorMessage   = "#2196F3"
	colorConfirmed = "#4CAF50"
	colorRejected  = "#f44336"
	colorReminder  = "#FF9800"
)

// maxBodyRunes is the cut-off applied to message previews.
const maxBodyRunes = 50

// Context carries the fields a payload template may reference. Which fields
// are required depends on the kind; absent optional fields render as empty.
type Context struct {
	ChatID      string
	AnimalID    string
	AnimalName  string
	ActorName   string // interested party, sender or owner, depending on kind
	SenderID    string
	MessageText string
}

// Payload is the composed delivery request handed to the push gateway. Data
// carries everything the client needs to deep-link without further lookups.
type Payload struct {
	Title    string
	Body     string
	Data     map[string]string
	Channel  string
	Color    string
	Tag      string
	Sound    string
	Badge    int
	Category string
}

// Compose maps a kind and its context to the payload delivered to a device.
// It never performs I/O and never fails; an unknown kind is a programming
// error and panics.
func Compose(kind Kind, nctx Context) Payload {
	switch kind {
	case KindNewChat:
		return Payload{
			Title:    "New conversation started",
			Body:     fmt.Sprintf("%s is interested in adopting %s", nctx.ActorName, nctx.AnimalName),
			Data:     deepLinkData(kind, nctx),
			Channel:  channelNewChats,
			Color:    colorNewChat,
			Tag:      "new_chat",
			Sound:    "default",
			Badge:    1,
			Category: "NEW_CHAT",
		}
	case KindNewMessage:
		return Payload{
			Title:   "New message",
			Body:    fmt.Sprintf("%s: %s", nctx.ActorName, TruncateBody(nctx.MessageText)),
			Data:    deepLinkData(kind, nctx),
			Channel: channelMessages,
			Color:   colorMessage,
			Tag:     "chat_" + nctx.ChatID,
			Sound:   "default",
			Badge:   1,
		}
	case KindAdoptionConfirmed:
		return Payload{
			Title:    "Adoption confirmed",
			Body:     fmt.Sprintf("%s confirmed your adoption of %s", nctx.ActorName, nctx.AnimalName),
			Data:     deepLinkData(kind, nctx),
			Channel:  channelAdoptions,
			Color:    colorConfirmed,
			Tag:      "adoption_status",
			Sound:    "default",
			Badge:    1,
			Category: "ADOPTION_CONFIRMED",
		}
	case KindAdoptionRejected:
		return Payload{
			Title:    "Adoption not approved",
			Body:     fmt.Sprintf("%s did not approve your request for %s", nctx.ActorName, nctx.AnimalName),
			Data:     deepLinkData(kind, nctx),
			Channel:  channelAdoptions,
			Color:    colorRejected,
			Tag:      "adoption_status",
			Sound:    "default",
			Badge:    1,
			Category: "ADOPTION_DENIED",
		}
	}
	panic("notification: unknown kind")
}

// ComposeDirect wraps an ad-hoc title and body in the standard envelope,
// used by the administrative reminder endpoint.
func ComposeDirect(title, body string) Payload {
	return Payload{
		Title:   title,
		Body:    body,
		Data:    map[string]string{"type": "reminder", "click_action": "FLUTTER_NOTIFICATION_CLICK"},
		Channel: channelReminders,
		Color:   colorReminder,
		Sound:   "default",
		Badge:   1,
	}
}

// TruncateBody cuts a message preview at 50 runes, appending an ellipsis when
// the original text was longer.
func TruncateBody(text string) string {
	runes := []rune(text)
	if len(runes) <= maxBodyRunes {
		return text
	}

	return string(runes[:maxBodyRunes]) + "..."
}

func deepLinkData(kind Kind, nctx Context) map[string]string {
	data := map[string]string{
		"type":         kind.String(),
		"click_action": "FLUTTER_NOTIFICATION_CLICK",
	}
	if nctx.ChatID != "" {
		data["chatId"] = nctx.ChatID
		data["screenToOpen"] = "ChatScreen"
	}
	if nctx.AnimalID != "" {
		data["animalId"] = nctx.AnimalID
	}
	if nctx.AnimalName != "" {
		data["animalName"] = nctx.AnimalName
	}
	if nctx.SenderID != "" {
		data["senderId"] = nctx.SenderID
	}

	return data
}

// ComposeTest returns the canned payload for the administrative test
// endpoint. Unknown type strings fall back to the generic test payload.
func ComposeTest(typ string) Payload {
	switch typ {
	case KindNewMessage.String():
		return Payload{
			Title:   "New message (test)",
			Body:    "João: Hi! How is the animal doing?",
			Data:    map[string]string{"type": typ, "test": "true", "click_action": "FLUTTER_NOTIFICATION_CLICK"},
			Channel: channelTests,
			Color:   colorMessage,
			Sound:   "default",
			Badge:   1,
		}
	case KindAdoptionConfirmed.String():
		return Payload{
			Title:   "Adoption confirmed (test)",
			Body:    "Maria confirmed your adoption of Rex!",
			Data:    map[string]string{"type": typ, "test": "true", "click_action": "FLUTTER_NOTIFICATION_CLICK"},
			Channel: channelTests,
			Color:   colorConfirmed,
			Sound:   "default",
			Badge:   1,
		}
	case KindAdoptionRejected.String():
		return Payload{
			Title:   "Adoption not approved (test)",
			Body:    "Pedro did not approve your request for Luna.",
			Data:    map[string]string{"type": typ, "test": "true", "click_action": "FLUTTER_NOTIFICATION_CLICK"},
			Channel: channelTests,
			Color:   colorRejected,
			Sound:   "default",
			Badge:   1,
		}
	default:
		return Payload{
			Title:   "Test notification",
			Body:    "This is a test notification from the system!",
			Data:    map[string]string{"type": "test", "test": "true", "click_action": "FLUTTER_NOTIFICATION_CLICK"},
			Channel: channelTests,
			Color:   colorMessage,
			Sound:   "default",
			Badge:   1,
		}
	}
}
