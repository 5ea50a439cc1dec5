package entity

// FallbackDisplayName is used when a profile carries neither a username nor
// a display name. Display-quality policy only, not a correctness invariant.
const FallbackDisplayName = "Someone"

// UserProfile holds the slice of a user document this core reads: identity,
// display names and push-delivery state. The push token is written by the
// registration flow and cleared on sign-out; it is read-only here.
type UserProfile struct {
	ID                   string `json:"id" firestore:"-"`
	DisplayName          string `json:"displayName,omitempty" firestore:"displayName,omitempty"`
	Username             string `json:"username,omitempty" firestore:"username,omitempty"`
	PushToken            string `json:"pushToken,omitempty" firestore:"pushToken,omitempty"`
	NotificationsEnabled bool   `json:"notificationsEnabled" firestore:"notificationsEnabled"`
}

// BestName returns the name to show in notifications, falling back through
// username, then display name, then a generic placeholder.
func (u *UserProfile) BestName() string {
	if u.Username != "" {
		return u.Username
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}

	return FallbackDisplayName
}
