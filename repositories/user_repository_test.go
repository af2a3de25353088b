package repositories

import (
	"testing"

	"chatline/domain"
	"chatline/errors"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func Test_CreateUser_And_Lookups(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(openTestDB(t))

	created, err := repository.CreateUser("Alice", "alice@example.com", "hashed-secret")
	req.NoError(err)
	req.NotEmpty(created.ID)
	req.Equal("Alice", created.Name)
	req.Equal("hashed-secret", created.PasswordHash)

	byEmail, err := repository.GetUserByEmail("alice@example.com")
	req.NoError(err)
	req.Equal(created, byEmail)

	byID, err := repository.GetUserByID(created.ID)
	req.NoError(err)
	req.Equal(created, byID)
}

func Test_CreateUser_Rejects_Duplicate_Email(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(openTestDB(t))

	_, err := repository.CreateUser("Alice", "alice@example.com", "hash-one")
	req.NoError(err)

	_, err = repository.CreateUser("Imposter", "alice@example.com", "hash-two")
	req.ErrorIs(err, errors.ErrUserAlreadyExists)
}

func Test_Lookups_Report_Unknown_User(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(openTestDB(t))

	_, err := repository.GetUserByEmail("ghost@example.com")
	req.ErrorIs(err, errors.ErrUserNotFound)

	_, err = repository.GetUserByID("no-such-id")
	req.ErrorIs(err, errors.ErrUserNotFound)
}

func Test_ListExcept_Excludes_Caller_And_Is_Stable(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(openTestDB(t))

	alice, err := repository.CreateUser("Alice", "alice@example.com", "h")
	req.NoError(err)
	_, err = repository.CreateUser("Bob", "bob@example.com", "h")
	req.NoError(err)
	_, err = repository.CreateUser("Clara", "clara@example.com", "h")
	req.NoError(err)

	contacts, err := repository.ListExcept(alice.ID)
	req.NoError(err)
	req.Len(contacts, 2)
	req.NotContains(lo.Map(contacts, func(u domain.User, _ int) string { return u.ID }), alice.ID)

	// Fixed dataset, repeated call: identical result, identical order.
	again, err := repository.ListExcept(alice.ID)
	req.NoError(err)
	req.Equal(contacts, again)
}

func Test_UpdateAvatar_Persists_New_URL(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(openTestDB(t))

	created, err := repository.CreateUser("Alice", "alice@example.com", "h")
	req.NoError(err)
	req.Empty(created.AvatarURL)

	updated, err := repository.UpdateAvatar(created.ID, "https://img.example.com/alice.png")
	req.NoError(err)
	req.Equal("https://img.example.com/alice.png", updated.AvatarURL)

	fetched, err := repository.GetUserByID(created.ID)
	req.NoError(err)
	req.Equal("https://img.example.com/alice.png", fetched.AvatarURL)

	_, err = repository.UpdateAvatar("no-such-id", "x")
	req.ErrorIs(err, errors.ErrUserNotFound)
}
