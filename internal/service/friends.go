package service

import (
	"context"
	"fmt"

	"github.com/tberezin/lifehub-server/internal/models"
)

// GetProfile returns the caller's profile with the friend and pending lists
// materialized from the friend_requests edge table.
func (s *DefaultService) GetProfile(ctx context.Context, userID string) (*models.ProfileResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	friends, err := s.repo.GetFriendIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing friends: %w", err)
	}

	sent, err := s.repo.GetPendingSentIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing sent requests: %w", err)
	}

	received, err := s.repo.GetPendingReceivedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing received requests: %w", err)
	}

	if friends == nil {
		friends = []string{}
	}
	if sent == nil {
		sent = []string{}
	}
	if received == nil {
		received = []string{}
	}

	return &models.ProfileResponse{
		Status:                 "success",
		UserID:                 user.ID,
		Email:                  user.Email,
		Name:                   user.Name,
		PhotoURL:               user.PhotoURL,
		Friends:                friends,
		FriendRequestsSent:     sent,
		FriendRequestsReceived: received,
	}, nil
}

// SearchUserByEmail finds a user by exact email match.
func (s *DefaultService) SearchUserByEmail(ctx context.Context, email string) (*models.UserSummary, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return &models.UserSummary{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}, nil
}

// SendFriendRequest creates a pending edge from the caller to the user with
// the given email. A request to someone who already requested the caller is
// rejected; that situation is resolved by accepting, not by sending a
// duplicate.
func (s *DefaultService) SendFriendRequest(ctx context.Context, userID, email string) error {
	receiver, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("error getting user: %w", err)
	}
	if receiver == nil {
		return ErrUserNotFound
	}

	if receiver.ID == userID {
		return ErrSelfRequest
	}

	edge, err := s.repo.GetFriendEdge(ctx, userID, receiver.ID)
	if err != nil {
		return fmt.Errorf("error checking friendship: %w", err)
	}
	if edge != nil {
		if edge.Status == models.FriendStatusAccepted {
			return ErrAlreadyFriends
		}
		return ErrDuplicateRequest
	}

	req := &models.FriendRequest{
		Requester: userID,
		Receiver:  receiver.ID,
		Status:    models.FriendStatusPending,
	}

	if err := s.repo.CreateFriendRequest(ctx, req); err != nil {
		return fmt.Errorf("error creating friend request: %w", err)
	}

	return nil
}

// AcceptFriendRequest promotes the pending edge from requesterID to the
// caller. Only the receiver of a request may accept it.
func (s *DefaultService) AcceptFriendRequest(ctx context.Context, userID, requesterID string) error {
	edge, err := s.repo.GetFriendEdge(ctx, userID, requesterID)
	if err != nil {
		return fmt.Errorf("error getting friend request: %w", err)
	}
	if edge == nil || edge.Status != models.FriendStatusPending {
		return ErrNotFound
	}

	if edge.Receiver != userID {
		return ErrUnauthorized
	}

	if err := s.repo.AcceptFriendRequest(ctx, edge.ID); err != nil {
		return fmt.Errorf("error accepting friend request: %w", err)
	}

	return nil
}

// RejectFriendRequest drops the pending edge from requesterID to the
// caller. Only the receiver may reject.
func (s *DefaultService) RejectFriendRequest(ctx context.Context, userID, requesterID string) error {
	edge, err := s.repo.GetFriendEdge(ctx, userID, requesterID)
	if err != nil {
		return fmt.Errorf("error getting friend request: %w", err)
	}
	if edge == nil || edge.Status != models.FriendStatusPending {
		return ErrNotFound
	}

	if edge.Receiver != userID {
		return ErrUnauthorized
	}

	if err := s.repo.DeleteFriendRequest(ctx, edge.ID); err != nil {
		return fmt.Errorf("error rejecting friend request: %w", err)
	}

	return nil
}

// RemoveFriend deletes an accepted edge. Either endpoint may remove the
// friendship.
func (s *DefaultService) RemoveFriend(ctx context.Context, userID, friendID string) error {
	edge, err := s.repo.GetFriendEdge(ctx, userID, friendID)
	if err != nil {
		return fmt.Errorf("error getting friendship: %w", err)
	}
	if edge == nil || edge.Status != models.FriendStatusAccepted {
		return ErrNotFriends
	}

	if err := s.repo.DeleteFriendRequest(ctx, edge.ID); err != nil {
		return fmt.Errorf("error removing friend: %w", err)
	}

	return nil
}
