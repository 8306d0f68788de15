package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/tberezin/lifehub-server/internal/models"
)

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *PostgresRepository) GetDB() *sqlx.DB {
	return r.db
}

// User repository methods
func (r *PostgresRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, name, password, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	// Generate a new UUID if not provided
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.Password, user.PhotoURL, user.CreatedAt, user.UpdatedAt)

	return err
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT * FROM users WHERE email = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT * FROM users WHERE id = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

// Event repository methods
func (r *PostgresRepository) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now
	if event.SharedWith == nil {
		event.SharedWith = pq.StringArray{}
	}

	query := `
		INSERT INTO events (id, owner_id, title, date, description, color, is_completed, shared_with, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.OwnerID, event.Title, event.Date, event.Description,
		event.Color, event.IsCompleted, event.SharedWith, event.CreatedAt, event.UpdatedAt)

	return err
}

func (r *PostgresRepository) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	query := `SELECT * FROM events WHERE id = $1`

	var event models.Event
	err := r.db.GetContext(ctx, &event, query, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Event not found
		}
		return nil, err
	}

	return &event, nil
}

func (r *PostgresRepository) GetUserEvents(ctx context.Context, ownerID string) ([]models.Event, error) {
	query := `SELECT * FROM events WHERE owner_id = $1 ORDER BY date, created_at`

	var events []models.Event
	err := r.db.SelectContext(ctx, &events, query, ownerID)
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *PostgresRepository) GetEventsSharedWith(ctx context.Context, userID string) ([]models.Event, error) {
	query := `SELECT * FROM events WHERE $1 = ANY(shared_with) ORDER BY date, created_at`

	var events []models.Event
	err := r.db.SelectContext(ctx, &events, query, userID)
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *PostgresRepository) UpdateEvent(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE events
		SET title = $1, date = $2, description = $3, color = $4, is_completed = $5, updated_at = $6
		WHERE id = $7
	`

	_, err := r.db.ExecContext(ctx, query,
		event.Title, event.Date, event.Description, event.Color,
		event.IsCompleted, event.UpdatedAt, event.ID)

	return err
}

func (r *PostgresRepository) ShareEvent(ctx context.Context, eventID, userID string) error {
	// array_append only when the uid is not already present keeps the call idempotent
	query := `
		UPDATE events
		SET shared_with = array_append(shared_with, $1), updated_at = $2
		WHERE id = $3 AND NOT ($1 = ANY(shared_with))
	`

	_, err := r.db.ExecContext(ctx, query, userID, time.Now().UTC(), eventID)
	return err
}

func (r *PostgresRepository) DeleteEventCascade(ctx context.Context, eventID string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	// Delete todos that mirror this event first (reverse filter query)
	res, err := tx.ExecContext(ctx, `DELETE FROM todos WHERE synced_event_id = $1`, eventID)
	if err != nil {
		return 0, err
	}

	deleted, _ := res.RowsAffected()

	_, err = tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, eventID)
	if err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}

	return int(deleted), nil
}

// Todo repository methods
func (r *PostgresRepository) CreateTodo(ctx context.Context, todo *models.Todo) error {
	prepareTodo(todo)

	_, err := r.db.ExecContext(ctx, insertTodoQuery,
		todo.ID, todo.OwnerID, todo.Text, todo.IsCompleted, todo.Date,
		todo.SyncedEventID, todo.CreatedAt, todo.UpdatedAt)

	return err
}

const insertTodoQuery = `
	INSERT INTO todos (id, owner_id, text, is_completed, date, synced_event_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

const insertEventQuery = `
	INSERT INTO events (id, owner_id, title, date, description, color, is_completed, shared_with, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

func prepareTodo(todo *models.Todo) {
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now
}

func prepareEvent(event *models.Event) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now
	if event.SharedWith == nil {
		event.SharedWith = pq.StringArray{}
	}
}

func (r *PostgresRepository) CreateTodoWithEvent(ctx context.Context, todo *models.Todo, event *models.Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	prepareEvent(event)
	_, err = tx.ExecContext(ctx, insertEventQuery,
		event.ID, event.OwnerID, event.Title, event.Date, event.Description,
		event.Color, event.IsCompleted, event.SharedWith, event.CreatedAt, event.UpdatedAt)
	if err != nil {
		return err
	}

	todo.SyncedEventID = &event.ID
	prepareTodo(todo)
	_, err = tx.ExecContext(ctx, insertTodoQuery,
		todo.ID, todo.OwnerID, todo.Text, todo.IsCompleted, todo.Date,
		todo.SyncedEventID, todo.CreatedAt, todo.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetTodo(ctx context.Context, todoID string) (*models.Todo, error) {
	query := `SELECT * FROM todos WHERE id = $1`

	var todo models.Todo
	err := r.db.GetContext(ctx, &todo, query, todoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Todo not found
		}
		return nil, err
	}

	return &todo, nil
}

func (r *PostgresRepository) GetUserTodos(ctx context.Context, ownerID string) ([]models.Todo, error) {
	query := `SELECT * FROM todos WHERE owner_id = $1 ORDER BY date, created_at`

	var todos []models.Todo
	err := r.db.SelectContext(ctx, &todos, query, ownerID)
	if err != nil {
		return nil, err
	}

	return todos, nil
}

const updateTodoQuery = `
	UPDATE todos
	SET text = $1, is_completed = $2, date = $3, synced_event_id = $4, updated_at = $5
	WHERE id = $6
`

func (r *PostgresRepository) UpdateTodo(ctx context.Context, todo *models.Todo) error {
	todo.UpdatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, updateTodoQuery,
		todo.Text, todo.IsCompleted, todo.Date, todo.SyncedEventID, todo.UpdatedAt, todo.ID)

	return err
}

func (r *PostgresRepository) UpdateTodoWithEvent(ctx context.Context, todo *models.Todo, event *models.Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	now := time.Now().UTC()
	todo.UpdatedAt = now
	_, err = tx.ExecContext(ctx, updateTodoQuery,
		todo.Text, todo.IsCompleted, todo.Date, todo.SyncedEventID, todo.UpdatedAt, todo.ID)
	if err != nil {
		return err
	}

	event.UpdatedAt = now
	_, err = tx.ExecContext(ctx, `
		UPDATE events
		SET title = $1, date = $2, description = $3, color = $4, is_completed = $5, updated_at = $6
		WHERE id = $7
	`, event.Title, event.Date, event.Description, event.Color,
		event.IsCompleted, event.UpdatedAt, event.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) SyncTodo(ctx context.Context, todo *models.Todo, event *models.Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	prepareEvent(event)
	_, err = tx.ExecContext(ctx, insertEventQuery,
		event.ID, event.OwnerID, event.Title, event.Date, event.Description,
		event.Color, event.IsCompleted, event.SharedWith, event.CreatedAt, event.UpdatedAt)
	if err != nil {
		return err
	}

	todo.SyncedEventID = &event.ID
	todo.UpdatedAt = time.Now().UTC()
	_, err = tx.ExecContext(ctx, updateTodoQuery,
		todo.Text, todo.IsCompleted, todo.Date, todo.SyncedEventID, todo.UpdatedAt, todo.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) UnlinkTodo(ctx context.Context, todoID, eventID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	_, err = tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, eventID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE todos SET synced_event_id = NULL, updated_at = $1 WHERE id = $2`,
		time.Now().UTC(), todoID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) DeleteTodoCascade(ctx context.Context, todoID, eventID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	_, err = tx.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, todoID)
	if err != nil {
		return err
	}

	if eventID != "" {
		_, err = tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, eventID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Transaction repository methods
func (r *PostgresRepository) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	txn.CreatedAt = now
	txn.UpdatedAt = now

	query := `
		INSERT INTO transactions (id, owner_id, type, amount, description, date, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		txn.ID, txn.OwnerID, txn.Type, txn.Amount, txn.Description,
		txn.Date, txn.Category, txn.CreatedAt, txn.UpdatedAt)

	return err
}

func (r *PostgresRepository) GetTransaction(ctx context.Context, txnID string) (*models.Transaction, error) {
	query := `SELECT * FROM transactions WHERE id = $1`

	var txn models.Transaction
	err := r.db.GetContext(ctx, &txn, query, txnID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Transaction not found
		}
		return nil, err
	}

	return &txn, nil
}

func (r *PostgresRepository) GetUserTransactions(ctx context.Context, ownerID string) ([]models.Transaction, error) {
	query := `SELECT * FROM transactions WHERE owner_id = $1 ORDER BY date DESC, created_at DESC`

	var txns []models.Transaction
	err := r.db.SelectContext(ctx, &txns, query, ownerID)
	if err != nil {
		return nil, err
	}

	return txns, nil
}

func (r *PostgresRepository) UpdateTransaction(ctx context.Context, txn *models.Transaction) error {
	txn.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE transactions
		SET type = $1, amount = $2, description = $3, date = $4, category = $5, updated_at = $6
		WHERE id = $7
	`

	_, err := r.db.ExecContext(ctx, query,
		txn.Type, txn.Amount, txn.Description, txn.Date, txn.Category, txn.UpdatedAt, txn.ID)

	return err
}

func (r *PostgresRepository) DeleteTransaction(ctx context.Context, txnID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, txnID)
	return err
}

func (r *PostgresRepository) GetFinanceSummary(ctx context.Context, ownerID string) (float64, float64, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0) AS income,
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0) AS expense
		FROM transactions
		WHERE owner_id = $1
	`

	var summary struct {
		Income  float64 `db:"income"`
		Expense float64 `db:"expense"`
	}

	err := r.db.GetContext(ctx, &summary, query, ownerID)
	if err != nil {
		return 0, 0, err
	}

	return summary.Income, summary.Expense, nil
}
