package models

// Request models
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type UpdateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type CreateTodoRequest struct {
	Text  string `json:"text" binding:"required"`
	Date  string `json:"date" binding:"required"`
	Sync  bool   `json:"sync"`
	Color string `json:"color"`
}

type UpdateTodoRequest struct {
	Text string `json:"text" binding:"required"`
}

type SyncTodoRequest struct {
	Color string `json:"color"`
}

type CreateTransactionRequest struct {
	Type        string  `json:"type" binding:"required,oneof=income expense"`
	Amount      float64 `json:"amount" binding:"min=0"`
	Description string  `json:"description" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Category    string  `json:"category"`
}

type UpdateTransactionRequest struct {
	Type        string  `json:"type" binding:"required,oneof=income expense"`
	Amount      float64 `json:"amount" binding:"min=0"`
	Description string  `json:"description" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Category    string  `json:"category"`
}

type CreateSecretItemRequest struct {
	Type     string  `json:"type" binding:"required,oneof=folder note"`
	Name     string  `json:"name" binding:"required"`
	ParentID *string `json:"parentId"`
}

type RenameSecretItemRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateNoteContentRequest struct {
	Content string `json:"content"`
}

type MoveSecretItemRequest struct {
	ParentID *string `json:"parentId"`
}

type ShareRequest struct {
	UserID string `json:"userId" binding:"required"`
}

type SendFriendRequestRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Response models
type AuthResponse struct {
	Status    string `json:"status"`
	UserID    string `json:"userId,omitempty"`
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	Token     string `json:"token,omitempty"`
	ExpiresIn int    `json:"expiresIn,omitempty"`
}

// ProfileResponse is the wire view of a user profile. The friend lists
// are derived from the friend_requests edge table on every read.
type ProfileResponse struct {
	Status                 string   `json:"status"`
	UserID                 string   `json:"userId"`
	Email                  string   `json:"email"`
	Name                   string   `json:"name"`
	PhotoURL               string   `json:"photoURL,omitempty"`
	Friends                []string `json:"friends"`
	FriendRequestsSent     []string `json:"friendRequestsSent"`
	FriendRequestsReceived []string `json:"friendRequestsReceived"`
}

type UserSummary struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type EventResponse struct {
	Status string `json:"status"`
	Event  *Event `json:"event,omitempty"`
}

type EventListResponse struct {
	Status string  `json:"status"`
	Events []Event `json:"events"`
}

type TodoResponse struct {
	Status string `json:"status"`
	Todo   *Todo  `json:"todo,omitempty"`
}

type TodoListResponse struct {
	Status string `json:"status"`
	Todos  []Todo `json:"todos"`
}

type TransactionResponse struct {
	Status      string       `json:"status"`
	Transaction *Transaction `json:"transaction,omitempty"`
}

type TransactionListResponse struct {
	Status       string        `json:"status"`
	Transactions []Transaction `json:"transactions"`
}

type FinanceSummaryResponse struct {
	Status  string  `json:"status"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

type SecretItemResponse struct {
	Status string      `json:"status"`
	Item   *SecretItem `json:"item,omitempty"`
}

type SecretItemListResponse struct {
	Status string       `json:"status"`
	Items  []SecretItem `json:"items"`
}

type DeleteResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Deleted int    `json:"deleted,omitempty"`
}

type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
