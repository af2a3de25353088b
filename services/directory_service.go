package services

import (
	"context"
	"fmt"

	"chatline/domain"
	"chatline/errors"
	"chatline/repositories"

	"github.com/samber/lo"
)

type IDirectoryService interface {
	Contacts(ctx context.Context, callerID string) ([]domain.Profile, error)
}

// DirectoryService builds the contact list shown in the sidebar: every
// known identity except the caller, public fields only.
type DirectoryService struct {
	users repositories.IUserRepository
}

func NewDirectoryService(users repositories.IUserRepository) *DirectoryService {
	return &DirectoryService{users: users}
}

func (s *DirectoryService) Contacts(ctx context.Context, callerID string) ([]domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	users, err := s.users.ListExcept(callerID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing contacts: %v", errors.ErrUpstream, err)
	}
	return lo.Map(users, func(u domain.User, _ int) domain.Profile {
		return u.PublicProfile()
	}), nil
}
