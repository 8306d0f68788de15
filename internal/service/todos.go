package service

import (
	"context"
	"fmt"

	"github.com/tberezin/lifehub-server/internal/models"
)

// syncedTitlePrefix marks calendar events that mirror a todo.
const syncedTitlePrefix = "[Todo] "

// syncedDescription is the description given to every mirrored event.
const syncedDescription = "Synced from Todo List"

func (s *DefaultService) getOwnedTodo(ctx context.Context, userID, todoID string) (*models.Todo, error) {
	todo, err := s.repo.GetTodo(ctx, todoID)
	if err != nil {
		return nil, fmt.Errorf("error getting todo: %w", err)
	}

	if todo == nil {
		return nil, ErrNotFound
	}

	if todo.OwnerID != userID {
		return nil, ErrUnauthorized
	}

	return todo, nil
}

func (s *DefaultService) ListTodos(ctx context.Context, userID string) ([]models.Todo, error) {
	todos, err := s.repo.GetUserTodos(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing todos: %w", err)
	}

	return todos, nil
}

// CreateTodo creates a todo and, when the sync flag is set, a mirrored
// calendar event in the same transaction. The event carries the todo's text
// under the "[Todo] " prefix and the same date.
func (s *DefaultService) CreateTodo(ctx context.Context, userID string, req models.CreateTodoRequest) (*models.Todo, error) {
	todo := &models.Todo{
		OwnerID: userID,
		Text:    req.Text,
		Date:    req.Date,
	}

	if !req.Sync {
		if err := s.repo.CreateTodo(ctx, todo); err != nil {
			return nil, fmt.Errorf("error creating todo: %w", err)
		}
		return todo, nil
	}

	color := req.Color
	if color == "" {
		color = "purple"
	}
	if !models.EventColors[color] {
		return nil, fmt.Errorf("%w: unknown color %q", ErrValidation, req.Color)
	}

	event := &models.Event{
		OwnerID:     userID,
		Title:       syncedTitlePrefix + req.Text,
		Date:        req.Date,
		Description: syncedDescription,
		Color:       color,
	}

	if err := s.repo.CreateTodoWithEvent(ctx, todo, event); err != nil {
		return nil, fmt.Errorf("error creating synced todo: %w", err)
	}

	return todo, nil
}

// UpdateTodoText renames the todo and re-titles its linked event, if any.
// Propagation is one-way: editing the event never touches the todo.
func (s *DefaultService) UpdateTodoText(ctx context.Context, userID, todoID, text string) (*models.Todo, error) {
	todo, err := s.getOwnedTodo(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	todo.Text = text

	if todo.SyncedEventID == nil {
		if err := s.repo.UpdateTodo(ctx, todo); err != nil {
			return nil, fmt.Errorf("error updating todo: %w", err)
		}
		return todo, nil
	}

	event, err := s.repo.GetEvent(ctx, *todo.SyncedEventID)
	if err != nil {
		return nil, fmt.Errorf("error getting linked event: %w", err)
	}
	if event == nil {
		// Dangling link; update the todo alone and clear the reference
		todo.SyncedEventID = nil
		if err := s.repo.UpdateTodo(ctx, todo); err != nil {
			return nil, fmt.Errorf("error updating todo: %w", err)
		}
		return todo, nil
	}

	event.Title = syncedTitlePrefix + text

	if err := s.repo.UpdateTodoWithEvent(ctx, todo, event); err != nil {
		return nil, fmt.Errorf("error updating todo: %w", err)
	}

	return todo, nil
}

// ToggleTodo flips the completion flag and propagates it to the linked
// event, if any.
func (s *DefaultService) ToggleTodo(ctx context.Context, userID, todoID string) (*models.Todo, error) {
	todo, err := s.getOwnedTodo(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	todo.IsCompleted = !todo.IsCompleted

	if todo.SyncedEventID == nil {
		if err := s.repo.UpdateTodo(ctx, todo); err != nil {
			return nil, fmt.Errorf("error updating todo: %w", err)
		}
		return todo, nil
	}

	event, err := s.repo.GetEvent(ctx, *todo.SyncedEventID)
	if err != nil {
		return nil, fmt.Errorf("error getting linked event: %w", err)
	}
	if event == nil {
		todo.SyncedEventID = nil
		if err := s.repo.UpdateTodo(ctx, todo); err != nil {
			return nil, fmt.Errorf("error updating todo: %w", err)
		}
		return todo, nil
	}

	event.IsCompleted = todo.IsCompleted

	if err := s.repo.UpdateTodoWithEvent(ctx, todo, event); err != nil {
		return nil, fmt.Errorf("error updating todo: %w", err)
	}

	return todo, nil
}

// SyncTodo links an existing, not-yet-synced todo to a freshly created
// calendar event. The link is monogamous: a second sync fails.
func (s *DefaultService) SyncTodo(ctx context.Context, userID, todoID, color string) (*models.Todo, error) {
	todo, err := s.getOwnedTodo(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	if todo.SyncedEventID != nil {
		return nil, ErrAlreadySynced
	}

	if color == "" {
		color = "purple"
	}
	if !models.EventColors[color] {
		return nil, fmt.Errorf("%w: unknown color %q", ErrValidation, color)
	}

	event := &models.Event{
		OwnerID:     userID,
		Title:       syncedTitlePrefix + todo.Text,
		Date:        todo.Date,
		Description: syncedDescription,
		Color:       color,
		IsCompleted: todo.IsCompleted,
	}

	if err := s.repo.SyncTodo(ctx, todo, event); err != nil {
		return nil, fmt.Errorf("error syncing todo: %w", err)
	}

	return todo, nil
}

// UnlinkTodo deletes the linked event and clears the reference in one
// transaction, returning the todo to its unsynced state.
func (s *DefaultService) UnlinkTodo(ctx context.Context, userID, todoID string) (*models.Todo, error) {
	todo, err := s.getOwnedTodo(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	if todo.SyncedEventID == nil {
		return nil, ErrNotSynced
	}

	if err := s.repo.UnlinkTodo(ctx, todo.ID, *todo.SyncedEventID); err != nil {
		return nil, fmt.Errorf("error unlinking todo: %w", err)
	}

	todo.SyncedEventID = nil
	return todo, nil
}

// DeleteTodo removes the todo and its linked event, if any, together.
func (s *DefaultService) DeleteTodo(ctx context.Context, userID, todoID string) error {
	todo, err := s.getOwnedTodo(ctx, userID, todoID)
	if err != nil {
		return err
	}

	eventID := ""
	if todo.SyncedEventID != nil {
		eventID = *todo.SyncedEventID
	}

	if err := s.repo.DeleteTodoCascade(ctx, todo.ID, eventID); err != nil {
		return fmt.Errorf("error deleting todo: %w", err)
	}

	return nil
}
