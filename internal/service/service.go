package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tberezin/lifehub-server/internal/models"
	"github.com/tberezin/lifehub-server/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Service defines all the business logic operations. Every method that
// touches user data takes the verified subject id (userID) extracted from
// the bearer token by the auth middleware; no owner identity is ever read
// from a request payload.
type Service interface {
	// Authentication
	SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)

	// Profile and friends
	GetProfile(ctx context.Context, userID string) (*models.ProfileResponse, error)
	SearchUserByEmail(ctx context.Context, email string) (*models.UserSummary, error)
	SendFriendRequest(ctx context.Context, userID, email string) error
	AcceptFriendRequest(ctx context.Context, userID, requesterID string) error
	RejectFriendRequest(ctx context.Context, userID, requesterID string) error
	RemoveFriend(ctx context.Context, userID, friendID string) error

	// Calendar events
	ListEvents(ctx context.Context, userID string) ([]models.Event, error)
	CreateEvent(ctx context.Context, userID string, req models.CreateEventRequest) (*models.Event, error)
	UpdateEvent(ctx context.Context, userID, eventID string, req models.UpdateEventRequest) (*models.Event, error)
	ToggleEvent(ctx context.Context, userID, eventID string) (*models.Event, error)
	ShareEvent(ctx context.Context, userID, eventID, targetID string) error
	DeleteEvent(ctx context.Context, userID, eventID string) error

	// Todos
	ListTodos(ctx context.Context, userID string) ([]models.Todo, error)
	CreateTodo(ctx context.Context, userID string, req models.CreateTodoRequest) (*models.Todo, error)
	UpdateTodoText(ctx context.Context, userID, todoID, text string) (*models.Todo, error)
	ToggleTodo(ctx context.Context, userID, todoID string) (*models.Todo, error)
	SyncTodo(ctx context.Context, userID, todoID, color string) (*models.Todo, error)
	UnlinkTodo(ctx context.Context, userID, todoID string) (*models.Todo, error)
	DeleteTodo(ctx context.Context, userID, todoID string) error

	// Finance
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	GetFinanceSummary(ctx context.Context, userID string) (*models.FinanceSummaryResponse, error)
	CreateTransaction(ctx context.Context, userID string, req models.CreateTransactionRequest) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, txnID string, req models.UpdateTransactionRequest) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, txnID string) error

	// Secret space
	ListSecretItems(ctx context.Context, userID string) ([]models.SecretItem, error)
	CreateSecretItem(ctx context.Context, userID string, req models.CreateSecretItemRequest) (*models.SecretItem, error)
	RenameSecretItem(ctx context.Context, userID, itemID, name string) (*models.SecretItem, error)
	UpdateNoteContent(ctx context.Context, userID, itemID, content string) (*models.SecretItem, error)
	MoveSecretItem(ctx context.Context, userID, itemID string, parentID *string) (*models.SecretItem, error)
	ShareSecretItem(ctx context.Context, userID, itemID, targetID string) error
	DeleteSecretItem(ctx context.Context, userID, itemID string) (int, error)
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo          repository.Repository
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(repo repository.Repository, jwtSecret string) Service {
	return &DefaultService{
		repo:          repo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour, // 24 hours token validity
	}
}

// Authentication methods
func (s *DefaultService) SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error) {
	// Check if user already exists
	existingUser, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking user existence: %w", err)
	}

	if existingUser != nil {
		return nil, ErrEmailExists
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	// Create the user
	user := &models.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: string(hashedPassword),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return &models.AuthResponse{
		Status: "success",
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}, nil
}

func (s *DefaultService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	// Get the user
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	if user == nil {
		return nil, ErrInvalidCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Generate JWT token
	token, err := s.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &models.AuthResponse{
		Status:    "success",
		UserID:    user.ID,
		Token:     token,
		ExpiresIn: int(s.tokenDuration.Seconds()),
	}, nil
}

// Helper methods
func (s *DefaultService) generateJWT(user *models.User) (string, error) {
	expirationTime := time.Now().Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"sub": user.ID, // subject
		"exp": expirationTime.Unix(),
		"iat": time.Now().Unix(), // issued at
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
