package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/tberezin/lifehub-server/internal/models"
)

// Secret item repository methods
func (r *PostgresRepository) CreateSecretItem(ctx context.Context, item *models.SecretItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.SharedWith == nil {
		item.SharedWith = pq.StringArray{}
	}

	query := `
		INSERT INTO secret_items (id, owner_id, type, name, parent_id, content, shared_with, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.OwnerID, item.Type, item.Name, item.ParentID,
		item.Content, item.SharedWith, item.CreatedAt, item.UpdatedAt)

	return err
}

func (r *PostgresRepository) GetSecretItem(ctx context.Context, itemID string) (*models.SecretItem, error) {
	query := `SELECT * FROM secret_items WHERE id = $1`

	var item models.SecretItem
	err := r.db.GetContext(ctx, &item, query, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Item not found
		}
		return nil, err
	}

	return &item, nil
}

func (r *PostgresRepository) GetUserSecretItems(ctx context.Context, ownerID string) ([]models.SecretItem, error) {
	query := `SELECT * FROM secret_items WHERE owner_id = $1 ORDER BY type, name`

	var items []models.SecretItem
	err := r.db.SelectContext(ctx, &items, query, ownerID)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *PostgresRepository) GetSecretItemsSharedWith(ctx context.Context, userID string) ([]models.SecretItem, error) {
	query := `SELECT * FROM secret_items WHERE $1 = ANY(shared_with) ORDER BY type, name`

	var items []models.SecretItem
	err := r.db.SelectContext(ctx, &items, query, userID)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *PostgresRepository) GetSecretChildren(ctx context.Context, parentID string) ([]models.SecretItem, error) {
	query := `SELECT * FROM secret_items WHERE parent_id = $1 ORDER BY type, name`

	var items []models.SecretItem
	err := r.db.SelectContext(ctx, &items, query, parentID)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *PostgresRepository) UpdateSecretItem(ctx context.Context, item *models.SecretItem) error {
	item.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE secret_items
		SET name = $1, parent_id = $2, content = $3, updated_at = $4
		WHERE id = $5
	`

	_, err := r.db.ExecContext(ctx, query,
		item.Name, item.ParentID, item.Content, item.UpdatedAt, item.ID)

	return err
}

func (r *PostgresRepository) ShareSecretItem(ctx context.Context, itemID, userID string) error {
	query := `
		UPDATE secret_items
		SET shared_with = array_append(shared_with, $1), updated_at = $2
		WHERE id = $3 AND NOT ($1 = ANY(shared_with))
	`

	_, err := r.db.ExecContext(ctx, query, userID, time.Now().UTC(), itemID)
	return err
}

func (r *PostgresRepository) DeleteSecretItems(ctx context.Context, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return nil
	}

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

	// Children reference parents, so deepest ids must go first; callers pass
	// the subtree in collection order and we delete in reverse.
	for i := len(itemIDs) - 1; i >= 0; i-- {
		_, err = tx.ExecContext(ctx, `DELETE FROM secret_items WHERE id = $1`, itemIDs[i])
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Friend graph repository methods
func (r *PostgresRepository) CreateFriendRequest(ctx context.Context, req *models.FriendRequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO friend_requests (id, requester, receiver, status, created_at, responded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.Requester, req.Receiver, req.Status, req.CreatedAt, req.RespondedAt)

	return err
}

func (r *PostgresRepository) GetFriendEdge(ctx context.Context, userA, userB string) (*models.FriendRequest, error) {
	query := `
		SELECT * FROM friend_requests
		WHERE (requester = $1 AND receiver = $2) OR (requester = $2 AND receiver = $1)
	`

	var req models.FriendRequest
	err := r.db.GetContext(ctx, &req, query, userA, userB)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // No edge between the two users
		}
		return nil, err
	}

	return &req, nil
}

func (r *PostgresRepository) AcceptFriendRequest(ctx context.Context, requestID string) error {
	query := `UPDATE friend_requests SET status = $1, responded_at = $2 WHERE id = $3`

	_, err := r.db.ExecContext(ctx, query,
		models.FriendStatusAccepted, time.Now().UTC(), requestID)

	return err
}

func (r *PostgresRepository) DeleteFriendRequest(ctx context.Context, requestID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM friend_requests WHERE id = $1`, requestID)
	return err
}

func (r *PostgresRepository) GetFriendIDs(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT CASE WHEN requester = $1 THEN receiver ELSE requester END
		FROM friend_requests
		WHERE (requester = $1 OR receiver = $1) AND status = $2
	`

	var ids []string
	err := r.db.SelectContext(ctx, &ids, query, userID, models.FriendStatusAccepted)
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *PostgresRepository) GetPendingSentIDs(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT receiver FROM friend_requests WHERE requester = $1 AND status = $2`

	var ids []string
	err := r.db.SelectContext(ctx, &ids, query, userID, models.FriendStatusPending)
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *PostgresRepository) GetPendingReceivedIDs(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT requester FROM friend_requests WHERE receiver = $1 AND status = $2`

	var ids []string
	err := r.db.SelectContext(ctx, &ids, query, userID, models.FriendStatusPending)
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *PostgresRepository) AreFriends(ctx context.Context, userA, userB string) (bool, error) {
	edge, err := r.GetFriendEdge(ctx, userA, userB)
	if err != nil {
		return false, err
	}

	return edge != nil && edge.Status == models.FriendStatusAccepted, nil
}
