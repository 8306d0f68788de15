package models

import (
	"time"

	"github.com/lib/pq"
)

// EventColors is the set of colors the calendar accepts.
var EventColors = map[string]bool{
	"blue":   true,
	"red":    true,
	"green":  true,
	"purple": true,
	"orange": true,
}

// Transaction types
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Secret item types
const (
	SecretFolder = "folder"
	SecretNote   = "note"
)

// Friend request statuses
const (
	FriendStatusPending  = "pending"
	FriendStatusAccepted = "accepted"
)

// User represents a user account and profile
type User struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	Password  string    `db:"password" json:"-"` // Password hash, not returned in JSON
	PhotoURL  string    `db:"photo_url" json:"photoURL,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Event represents a calendar event owned by a single user
type Event struct {
	ID          string         `db:"id" json:"id"`
	OwnerID     string         `db:"owner_id" json:"ownerId"`
	Title       string         `db:"title" json:"title"`
	Date        string         `db:"date" json:"date"` // YYYY-MM-DD
	Description string         `db:"description" json:"description,omitempty"`
	Color       string         `db:"color" json:"color"`
	IsCompleted bool           `db:"is_completed" json:"isCompleted"`
	SharedWith  pq.StringArray `db:"shared_with" json:"sharedWith,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updatedAt"`
}

// Todo represents a to-do entry, optionally mirrored into a calendar event
type Todo struct {
	ID            string    `db:"id" json:"id"`
	OwnerID       string    `db:"owner_id" json:"ownerId"`
	Text          string    `db:"text" json:"text"`
	IsCompleted   bool      `db:"is_completed" json:"isCompleted"`
	Date          string    `db:"date" json:"date"` // YYYY-MM-DD, target date
	SyncedEventID *string   `db:"synced_event_id" json:"syncedEventId,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// Transaction represents a single income or expense entry
type Transaction struct {
	ID          string    `db:"id" json:"id"`
	OwnerID     string    `db:"owner_id" json:"ownerId"`
	Type        string    `db:"type" json:"type"` // "income" or "expense"
	Amount      float64   `db:"amount" json:"amount"`
	Description string    `db:"description" json:"description"`
	Date        string    `db:"date" json:"date"` // YYYY-MM-DD
	Category    string    `db:"category" json:"category,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// SecretItem represents a node in a user's private folder/note tree.
// ParentID is nil for root-level items; a non-nil ParentID must reference
// a folder owned by the same user.
type SecretItem struct {
	ID         string         `db:"id" json:"id"`
	OwnerID    string         `db:"owner_id" json:"ownerId"`
	Type       string         `db:"type" json:"type"` // "folder" or "note"
	Name       string         `db:"name" json:"name"`
	ParentID   *string        `db:"parent_id" json:"parentId"`
	Content    string         `db:"content" json:"content,omitempty"` // notes only
	SharedWith pq.StringArray `db:"shared_with" json:"sharedWith,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updatedAt"`
}

// FriendRequest is the single edge record behind the friendship graph.
// A pending row is an outstanding request from Requester to Receiver; an
// accepted row is an established friendship between the two endpoints.
type FriendRequest struct {
	ID          string     `db:"id" json:"id"`
	Requester   string     `db:"requester" json:"requester"`
	Receiver    string     `db:"receiver" json:"receiver"`
	Status      string     `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	RespondedAt *time.Time `db:"responded_at" json:"respondedAt,omitempty"`
}
