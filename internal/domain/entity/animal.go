// Package entity contains the core business objects of the project.
package entity

import (
	"time"
)

// Animal represents a pet listed for adoption.
// Availability flips to false exactly once, when an adoption intent for the
// animal is confirmed; ownership transfers to the adopter at the same moment.
type Animal struct {
	ID        string     `json:"id" firestore:"-"`
	Name      string     `json:"name" firestore:"name"`
	OwnerID   string     `json:"ownerId" firestore:"ownerId"`
	Available bool       `json:"available" firestore:"available"`
	AdoptedBy string     `json:"adoptedBy,omitempty" firestore:"adoptedBy,omitempty"`
	AdoptedAt *time.Time `json:"adoptedAt,omitempty" firestore:"adoptedAt,omitempty"`
}
