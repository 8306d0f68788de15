package repository

import (
	"context"

	"github.com/tberezin/lifehub-server/internal/models"
)

// Repository interface defines the methods that any repository implementation must satisfy
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Event operations
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)
	GetUserEvents(ctx context.Context, ownerID string) ([]models.Event, error)
	GetEventsSharedWith(ctx context.Context, userID string) ([]models.Event, error)
	UpdateEvent(ctx context.Context, event *models.Event) error
	ShareEvent(ctx context.Context, eventID, userID string) error
	// DeleteEventCascade removes the event and any todos linked to it in a
	// single transaction. Returns the number of todos removed.
	DeleteEventCascade(ctx context.Context, eventID string) (int, error)

	// Todo operations
	CreateTodo(ctx context.Context, todo *models.Todo) error
	// CreateTodoWithEvent inserts the mirrored event and the todo referencing
	// it in a single transaction.
	CreateTodoWithEvent(ctx context.Context, todo *models.Todo, event *models.Event) error
	GetTodo(ctx context.Context, todoID string) (*models.Todo, error)
	GetUserTodos(ctx context.Context, ownerID string) ([]models.Todo, error)
	UpdateTodo(ctx context.Context, todo *models.Todo) error
	// UpdateTodoWithEvent writes both sides of an edit that propagates from a
	// todo to its linked event in a single transaction.
	UpdateTodoWithEvent(ctx context.Context, todo *models.Todo, event *models.Event) error
	// SyncTodo inserts a new event and points the todo at it in a single
	// transaction (late-sync).
	SyncTodo(ctx context.Context, todo *models.Todo, event *models.Event) error
	// UnlinkTodo deletes the linked event and clears the todo's reference in
	// a single transaction.
	UnlinkTodo(ctx context.Context, todoID, eventID string) error
	// DeleteTodoCascade removes the todo and, when eventID is non-empty, its
	// linked event in a single transaction.
	DeleteTodoCascade(ctx context.Context, todoID, eventID string) error

	// Transaction operations
	CreateTransaction(ctx context.Context, txn *models.Transaction) error
	GetTransaction(ctx context.Context, txnID string) (*models.Transaction, error)
	GetUserTransactions(ctx context.Context, ownerID string) ([]models.Transaction, error)
	UpdateTransaction(ctx context.Context, txn *models.Transaction) error
	DeleteTransaction(ctx context.Context, txnID string) error
	GetFinanceSummary(ctx context.Context, ownerID string) (income, expense float64, err error)

	// Secret item operations
	CreateSecretItem(ctx context.Context, item *models.SecretItem) error
	GetSecretItem(ctx context.Context, itemID string) (*models.SecretItem, error)
	GetUserSecretItems(ctx context.Context, ownerID string) ([]models.SecretItem, error)
	GetSecretItemsSharedWith(ctx context.Context, userID string) ([]models.SecretItem, error)
	GetSecretChildren(ctx context.Context, parentID string) ([]models.SecretItem, error)
	UpdateSecretItem(ctx context.Context, item *models.SecretItem) error
	ShareSecretItem(ctx context.Context, itemID, userID string) error
	// DeleteSecretItems removes all the given ids in a single transaction.
	DeleteSecretItems(ctx context.Context, itemIDs []string) error

	// Friend graph operations
	CreateFriendRequest(ctx context.Context, req *models.FriendRequest) error
	// GetFriendEdge returns the edge between the two users in either
	// direction and any status, or nil if none exists.
	GetFriendEdge(ctx context.Context, userA, userB string) (*models.FriendRequest, error)
	AcceptFriendRequest(ctx context.Context, requestID string) error
	DeleteFriendRequest(ctx context.Context, requestID string) error
	GetFriendIDs(ctx context.Context, userID string) ([]string, error)
	GetPendingSentIDs(ctx context.Context, userID string) ([]string, error)
	GetPendingReceivedIDs(ctx context.Context, userID string) ([]string, error)
	AreFriends(ctx context.Context, userA, userB string) (bool, error)
}
