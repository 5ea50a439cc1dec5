// Package notification contains the pure composition of push payloads: a
// notification kind plus its context maps to the exact title, body, data and
// platform hints delivered to a device. Nothing in this package performs I/O.
package notification

// Kind enumerates the notification types the engine can emit.
type Kind int

const (
	// KindNewChat is sent to an animal's owner when an interested party
	// opens a conversation.
	KindNewChat Kind = iota
	// KindNewMessage is sent to the other participant of a chat when a
	// non-system message is created.
	KindNewMessage
	// KindAdoptionConfirmed is sent to the interested party when the owner
	// confirms their adoption.
	KindAdoptionConfirmed
	// KindAdoptionRejected is sent to the interested party when their request
	// is denied, either directly or by the auto-deny cascade.
	KindAdoptionRejected
)

// String returns the wire value carried in the payload's data.type field,
// which the mobile client uses to route deep links and pick OS channels.
func (k Kind) String() string {
	switch k {
	case KindNewChat:
		return "new_chat"
	case KindNewMessage:
		return "nova_mensagem"
	case KindAdoptionConfirmed:
		return "adocao_confirmada"
	case KindAdoptionRejected:
		return "adocao_recusada"
	}
	panic("notification: unknown kind")
}

// ParseKind maps a wire value back to its Kind. The boolean is false for
// unknown values.
func ParseKind(s string) (Kind, bool) {
	for _, k := range []Kind{KindNewChat, KindNewMessage, KindAdoptionConfirmed, KindAdoptionRejected} {
		if k.String() == s {
			return k, true
		}
	}

	return 0, false
}
