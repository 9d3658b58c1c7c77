package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/O-Gamal/FIlePlace/internal/model"
	"github.com/O-Gamal/FIlePlace/internal/repository"
)

// IdentityService wraps identity-provider subjects in local user records.
// Records are provisioned out-of-band by provider lifecycle events; an
// in-request lookup that finds no record is an unrecoverable miss.
type IdentityService struct {
	users repository.UserRepository
}

func NewIdentityService(users repository.UserRepository) *IdentityService {
	return &IdentityService{users: users}
}

// Resolve maps a token identifier to the local user record.
func (s *IdentityService) Resolve(tokenIdentifier string) (*model.User, error) {
	if tokenIdentifier == "" {
		return nil, ErrUnauthenticated
	}

	user, err := s.users.ByTokenIdentifier(tokenIdentifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	return user, nil
}

// ByID returns the user record for a local user ID, for public profiles.
func (s *IdentityService) ByID(id string) (*model.User, error) {
	user, err := s.users.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// HandleUserCreated provisions a local record for a new identity-provider
// subject. Redelivered events patch the existing record instead of
// duplicating it.
func (s *IdentityService) HandleUserCreated(tokenIdentifier, name, image string) error {
	user := &model.User{
		ID:              uuid.New().String(),
		TokenIdentifier: tokenIdentifier,
		Name:            name,
		Image:           image,
		OrgIDs:          model.OrgIDs{},
		CreatedAt:       time.Now(),
	}

	err := s.users.Create(user)
	if errors.Is(err, repository.ErrUserExists) {
		slog.Info("user already provisioned, patching profile", "token_identifier", tokenIdentifier)
		return s.HandleUserUpdated(tokenIdentifier, name, image)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// HandleUserUpdated patches profile fields on an existing record.
func (s *IdentityService) HandleUserUpdated(tokenIdentifier, name, image string) error {
	err := s.users.UpdateProfile(tokenIdentifier, name, image)
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// HandleOrgMembershipCreated adds an organization to the user's membership
// set. Redelivered events are no-ops.
func (s *IdentityService) HandleOrgMembershipCreated(tokenIdentifier, orgID string) error {
	user, err := s.users.ByTokenIdentifier(tokenIdentifier)
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.IsOrgMember(orgID) {
		return nil
	}

	err = s.users.UpdateOrgIDs(user.ID, append(user.OrgIDs, orgID))
	if err != nil {
		return fmt.Errorf("failed to add org membership: %w", err)
	}

	return nil
}
