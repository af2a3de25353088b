//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	goerrors "errors"
	"time"

	"chatline/domain"
	"chatline/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IUserRepository interface {
	CreateUser(name, email, hashedPassword string) (domain.User, error)
	GetUserByEmail(email string) (domain.User, error)
	GetUserByID(id string) (domain.User, error)
	ListExcept(id string) ([]domain.User, error)
	UpdateAvatar(id, avatarURL string) (domain.User, error)
}

// UserRepository persists identities under two key families:
// "user:id:{uuid}" holds the record, "user:email:{email}" maps the unique
// email to the id. Both keys are written in the same transaction so a
// duplicate email can never slip in between check and insert.
type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) UserRepository {
	return UserRepository{db: db}
}

const (
	userIDPrefix    = "user:id:"
	userEmailPrefix = "user:email:"
)

func (u UserRepository) CreateUser(name, email, hashedPassword string) (domain.User, error) {
	user := domain.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now().UTC(),
	}

	data, err := json.Marshal(fromDomainUser(user))
	if err != nil {
		return domain.User{}, err
	}

	err = u.db.Update(func(txn *badger.Txn) error {
		emailKey := []byte(userEmailPrefix + email)
		if _, err := txn.Get(emailKey); err == nil {
			return errors.ErrUserAlreadyExists
		}
		if err := txn.Set(emailKey, []byte(user.ID)); err != nil {
			return err
		}
		return txn.Set([]byte(userIDPrefix+user.ID), data)
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (u UserRepository) GetUserByEmail(email string) (domain.User, error) {
	var id string
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userEmailPrefix + email))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	})
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return domain.User{}, errors.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return u.GetUserByID(id)
}

func (u UserRepository) GetUserByID(id string) (domain.User, error) {
	var du diskUser
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userIDPrefix + id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &du)
		})
	})
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return domain.User{}, errors.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return du.toDomain(), nil
}

// ListExcept returns every identity except the given one. Iteration order
// is the lexicographic id order of the key space, which is stable across
// calls for a fixed dataset.
func (u UserRepository) ListExcept(id string) ([]domain.User, error) {
	var users []domain.User
	prefix := []byte(userIDPrefix)

	err := u.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			if string(item.Key()[len(prefix):]) == id {
				continue
			}
			var du diskUser
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &du)
			})
			if err != nil {
				return err
			}
			users = append(users, du.toDomain())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateAvatar rewrites the avatar URL of a user. Read and write happen
// in one transaction.
func (u UserRepository) UpdateAvatar(id, avatarURL string) (domain.User, error) {
	var updated domain.User
	err := u.db.Update(func(txn *badger.Txn) error {
		key := []byte(userIDPrefix + id)
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		var du diskUser
		if err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &du)
		}); err != nil {
			return err
		}

		du.AvatarURL = avatarURL
		data, err := json.Marshal(du)
		if err != nil {
			return err
		}
		updated = du.toDomain()
		return txn.Set(key, data)
	})
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return domain.User{}, errors.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return updated, nil
}
