package service

import (
	"context"
	"fmt"

	"github.com/tberezin/lifehub-server/internal/models"
)

// maxTreeDepth bounds subtree traversal so a corrupted (cyclic) parent
// chain fails instead of looping.
const maxTreeDepth = 64

func (s *DefaultService) getOwnedSecretItem(ctx context.Context, userID, itemID string) (*models.SecretItem, error) {
	item, err := s.repo.GetSecretItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("error getting secret item: %w", err)
	}

	if item == nil {
		return nil, ErrNotFound
	}

	if item.OwnerID != userID {
		return nil, ErrUnauthorized
	}

	return item, nil
}

// validateParent checks that a prospective parent exists, is a folder, and
// belongs to the same user. Runs on every parent_id write.
func (s *DefaultService) validateParent(ctx context.Context, userID string, parentID *string) error {
	if parentID == nil {
		return nil // root-level item
	}

	parent, err := s.repo.GetSecretItem(ctx, *parentID)
	if err != nil {
		return fmt.Errorf("error getting parent: %w", err)
	}
	if parent == nil {
		return fmt.Errorf("%w: parent does not exist", ErrValidation)
	}
	if parent.OwnerID != userID {
		return ErrUnauthorized
	}
	if parent.Type != models.SecretFolder {
		return fmt.Errorf("%w: parent must be a folder", ErrValidation)
	}

	return nil
}

// collectSubtree walks the tree below rootID breadth-first and returns the
// full id set including the root, parents before children. A visited set
// and a depth cap guard against cyclic parent chains.
func (s *DefaultService) collectSubtree(ctx context.Context, rootID string) ([]string, error) {
	visited := map[string]bool{rootID: true}
	ids := []string{rootID}
	frontier := []string{rootID}

	for depth := 0; len(frontier) > 0; depth++ {
		if depth >= maxTreeDepth {
			return nil, fmt.Errorf("secret tree exceeds maximum depth %d", maxTreeDepth)
		}

		var next []string
		for _, id := range frontier {
			children, err := s.repo.GetSecretChildren(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("error listing children: %w", err)
			}
			for _, child := range children {
				if visited[child.ID] {
					continue
				}
				visited[child.ID] = true
				ids = append(ids, child.ID)
				next = append(next, child.ID)
			}
		}
		frontier = next
	}

	return ids, nil
}

// ListSecretItems returns the caller's items as a flat list (the client
// builds the tree from parentId), plus items shared with them.
func (s *DefaultService) ListSecretItems(ctx context.Context, userID string) ([]models.SecretItem, error) {
	items, err := s.repo.GetUserSecretItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing secret items: %w", err)
	}

	shared, err := s.repo.GetSecretItemsSharedWith(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing shared items: %w", err)
	}

	return append(items, shared...), nil
}

func (s *DefaultService) CreateSecretItem(ctx context.Context, userID string, req models.CreateSecretItemRequest) (*models.SecretItem, error) {
	if req.Type != models.SecretFolder && req.Type != models.SecretNote {
		return nil, fmt.Errorf("%w: unknown item type %q", ErrValidation, req.Type)
	}

	if err := s.validateParent(ctx, userID, req.ParentID); err != nil {
		return nil, err
	}

	item := &models.SecretItem{
		OwnerID:  userID,
		Type:     req.Type,
		Name:     req.Name,
		ParentID: req.ParentID,
	}

	if err := s.repo.CreateSecretItem(ctx, item); err != nil {
		return nil, fmt.Errorf("error creating secret item: %w", err)
	}

	return item, nil
}

func (s *DefaultService) RenameSecretItem(ctx context.Context, userID, itemID, name string) (*models.SecretItem, error) {
	item, err := s.getOwnedSecretItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	item.Name = name

	if err := s.repo.UpdateSecretItem(ctx, item); err != nil {
		return nil, fmt.Errorf("error renaming secret item: %w", err)
	}

	return item, nil
}

func (s *DefaultService) UpdateNoteContent(ctx context.Context, userID, itemID, content string) (*models.SecretItem, error) {
	item, err := s.getOwnedSecretItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if item.Type != models.SecretNote {
		return nil, fmt.Errorf("%w: only notes have content", ErrValidation)
	}

	item.Content = content

	if err := s.repo.UpdateSecretItem(ctx, item); err != nil {
		return nil, fmt.Errorf("error updating note: %w", err)
	}

	return item, nil
}

// MoveSecretItem re-parents an item. Besides the usual parent checks, the
// destination must not lie inside the item's own subtree, which would
// create a cycle.
func (s *DefaultService) MoveSecretItem(ctx context.Context, userID, itemID string, parentID *string) (*models.SecretItem, error) {
	item, err := s.getOwnedSecretItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.validateParent(ctx, userID, parentID); err != nil {
		return nil, err
	}

	if parentID != nil {
		subtree, err := s.collectSubtree(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		for _, id := range subtree {
			if id == *parentID {
				return nil, fmt.Errorf("%w: cannot move an item into its own subtree", ErrValidation)
			}
		}
	}

	item.ParentID = parentID

	if err := s.repo.UpdateSecretItem(ctx, item); err != nil {
		return nil, fmt.Errorf("error moving secret item: %w", err)
	}

	return item, nil
}

// ShareSecretItem makes the item visible to an accepted friend.
func (s *DefaultService) ShareSecretItem(ctx context.Context, userID, itemID, targetID string) error {
	if _, err := s.getOwnedSecretItem(ctx, userID, itemID); err != nil {
		return err
	}

	target, err := s.repo.GetUserByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("error getting user: %w", err)
	}
	if target == nil {
		return ErrUserNotFound
	}

	friends, err := s.repo.AreFriends(ctx, userID, targetID)
	if err != nil {
		return fmt.Errorf("error checking friendship: %w", err)
	}
	if !friends {
		return ErrNotFriends
	}

	if err := s.repo.ShareSecretItem(ctx, itemID, targetID); err != nil {
		return fmt.Errorf("error sharing secret item: %w", err)
	}

	return nil
}

// DeleteSecretItem removes the item and every descendant in a single
// transaction. Returns the number of records removed.
func (s *DefaultService) DeleteSecretItem(ctx context.Context, userID, itemID string) (int, error) {
	item, err := s.getOwnedSecretItem(ctx, userID, itemID)
	if err != nil {
		return 0, err
	}

	ids, err := s.collectSubtree(ctx, item.ID)
	if err != nil {
		return 0, err
	}

	if err := s.repo.DeleteSecretItems(ctx, ids); err != nil {
		return 0, fmt.Errorf("error deleting secret items: %w", err)
	}

	return len(ids), nil
}
