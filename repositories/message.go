//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"chatline/domain"

	"github.com/dgraph-io/badger/v4"
)

type IMessageRepository interface {
	Store(message domain.Message) error
	ListThread(userA, userB string) ([]domain.Message, error)
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) MessageRepository {
	return MessageRepository{db: db, log: log}
}

// messageKey formats the BadgerDB key of a message as
// "msg:{lo}:{hi}:{timestamp_padded}:{uuid}" where (lo, hi) is the sorted
// participant pair, to:
//  1. Group both directions of a conversation under one prefix.
//  2. Ensure chronological sorting using 19-digit zero padding
//     (lexicographical order).
//  3. Prevent data loss by using the message UUID as a collision
//     disconnector if two messages land on the same nanosecond.
func messageKey(m domain.Message) []byte {
	lo, hi := domain.ThreadKey(m.SenderID, m.ReceiverID)
	return []byte(fmt.Sprintf("msg:%s:%s:%019d:%s", lo, hi, m.CreatedAt.UnixNano(), m.ID))
}

func threadPrefix(userA, userB string) []byte {
	lo, hi := domain.ThreadKey(userA, userB)
	return []byte(fmt.Sprintf("msg:%s:%s:", lo, hi))
}

// Store persists a message in BadgerDB. A single insert, atomic by
// construction: either the full record lands on disk or nothing does.
func (m MessageRepository) Store(message domain.Message) error {
	bytes, err := json.Marshal(diskMessage{
		ID:         message.ID.String(),
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
		Text:       message.Text,
		ImageURL:   message.ImageURL,
		At:         message.CreatedAt.UnixNano(),
	})
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set(messageKey(message), bytes)
	})
}

// ListThread retrieves every message exchanged between the two users, in
// either direction, using a prefix scan. Thanks to the padded timestamp
// in the key, messages come back naturally sorted oldest first. The
// arguments are an unordered pair: (a, b) and (b, a) scan the same
// prefix. Decoded records are re-checked against the requested pair:
// keys are colon-delimited and ids arrive unvalidated, so an id that
// itself contains a colon could otherwise alias another pair's prefix.
func (m MessageRepository) ListThread(userA, userB string) ([]domain.Message, error) {
	var raw [][]byte
	prefix := threadPrefix(userA, userB)
	wantLo, wantHi := domain.ThreadKey(userA, userB)

	err := m.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				buf := make([]byte, len(value))
				copy(buf, value)
				raw = append(raw, buf)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	messages := make([]domain.Message, 0, len(raw))
	for _, b := range raw {
		var dm diskMessage
		if err = json.Unmarshal(b, &dm); err != nil {
			return nil, err
		}
		message, err := dm.toDomain()
		if err != nil {
			return nil, err
		}
		gotLo, gotHi := domain.ThreadKey(message.SenderID, message.ReceiverID)
		if gotLo != wantLo || gotHi != wantHi {
			continue
		}
		messages = append(messages, message)
	}
	return messages, nil
}
