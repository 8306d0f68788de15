package service

import (
	"context"
	"fmt"

	"github.com/tberezin/lifehub-server/internal/models"
)

// getOwnedEvent loads an event and checks that its stored owner matches the
// verified subject. The ownership check always runs against the stored
// record, never against anything the client sent.
func (s *DefaultService) getOwnedEvent(ctx context.Context, userID, eventID string) (*models.Event, error) {
	event, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error getting event: %w", err)
	}

	if event == nil {
		return nil, ErrNotFound
	}

	if event.OwnerID != userID {
		return nil, ErrUnauthorized
	}

	return event, nil
}

// ListEvents returns the caller's own events followed by events other users
// have shared with them.
func (s *DefaultService) ListEvents(ctx context.Context, userID string) ([]models.Event, error) {
	events, err := s.repo.GetUserEvents(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}

	shared, err := s.repo.GetEventsSharedWith(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing shared events: %w", err)
	}

	return append(events, shared...), nil
}

func (s *DefaultService) CreateEvent(ctx context.Context, userID string, req models.CreateEventRequest) (*models.Event, error) {
	color := req.Color
	if color == "" {
		color = "blue"
	}
	if !models.EventColors[color] {
		return nil, fmt.Errorf("%w: unknown color %q", ErrValidation, req.Color)
	}

	event := &models.Event{
		OwnerID:     userID, // owner always comes from the verified token
		Title:       req.Title,
		Date:        req.Date,
		Description: req.Description,
		Color:       color,
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("error creating event: %w", err)
	}

	return event, nil
}

func (s *DefaultService) UpdateEvent(ctx context.Context, userID, eventID string, req models.UpdateEventRequest) (*models.Event, error) {
	event, err := s.getOwnedEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}

	if req.Color != "" && !models.EventColors[req.Color] {
		return nil, fmt.Errorf("%w: unknown color %q", ErrValidation, req.Color)
	}

	event.Title = req.Title
	event.Date = req.Date
	event.Description = req.Description
	if req.Color != "" {
		event.Color = req.Color
	}

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("error updating event: %w", err)
	}

	return event, nil
}

func (s *DefaultService) ToggleEvent(ctx context.Context, userID, eventID string) (*models.Event, error) {
	event, err := s.getOwnedEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}

	event.IsCompleted = !event.IsCompleted

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("error updating event: %w", err)
	}

	return event, nil
}

// ShareEvent makes the event visible to another user. The target must be an
// accepted friend of the owner.
func (s *DefaultService) ShareEvent(ctx context.Context, userID, eventID, targetID string) error {
	if _, err := s.getOwnedEvent(ctx, userID, eventID); err != nil {
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

	if err := s.repo.ShareEvent(ctx, eventID, targetID); err != nil {
		return fmt.Errorf("error sharing event: %w", err)
	}

	return nil
}

// DeleteEvent removes the event and cascades to any todo that mirrors it,
// in a single transaction.
func (s *DefaultService) DeleteEvent(ctx context.Context, userID, eventID string) error {
	if _, err := s.getOwnedEvent(ctx, userID, eventID); err != nil {
		return err
	}

	if _, err := s.repo.DeleteEventCascade(ctx, eventID); err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}

	return nil
}
