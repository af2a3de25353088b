package services

import (
	"context"
	"testing"

	"chatline/domain"
	"chatline/errors"
	"chatline/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDirectoryService_Contacts(t *testing.T) {
	t.Run("should expose public profiles only", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		users := mocks.NewMockIUserRepository(ctrl)
		svc := NewDirectoryService(users)

		users.EXPECT().ListExcept("u1").Return([]domain.User{
			{ID: "u2", Name: "Bob", Email: "bob@example.com", PasswordHash: "hash", AvatarURL: "https://img.example.com/bob.png"},
			{ID: "u3", Name: "Clara", Email: "clara@example.com", PasswordHash: "hash"},
		}, nil).Times(1)

		contacts, err := svc.Contacts(context.Background(), "u1")
		req.NoError(err)
		req.Equal([]domain.Profile{
			{ID: "u2", Name: "Bob", AvatarURL: "https://img.example.com/bob.png"},
			{ID: "u3", Name: "Clara"},
		}, contacts)
	})

	t.Run("should surface a repository failure as upstream", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		users := mocks.NewMockIUserRepository(ctrl)
		svc := NewDirectoryService(users)

		users.EXPECT().ListExcept("u1").Return(nil, errors.ErrUserNotFound).Times(1)

		_, err := svc.Contacts(context.Background(), "u1")
		req.ErrorIs(err, errors.ErrUpstream)
	})
}
