package repositories

import (
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"chatline/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func messageAt(sender, receiver, text string, at time.Time) domain.Message {
	return domain.Message{
		ID:         uuid.New(),
		SenderID:   sender,
		ReceiverID: receiver,
		Text:       text,
		CreatedAt:  at,
	}
}

func Test_Store_And_List_Thread_Sorted(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())

	at := time.Now().UTC()
	newest := messageAt("alice", "bob", "three", at.Add(2*time.Minute))
	oldest := messageAt("alice", "bob", "one", at)
	middle := messageAt("bob", "alice", "two", at.Add(1*time.Minute))

	// Insertion order deliberately differs from chronological order.
	for _, m := range []domain.Message{newest, oldest, middle} {
		req.NoError(repository.Store(m))
	}

	fetched, err := repository.ListThread("alice", "bob")
	req.NoError(err)
	req.Len(fetched, 3)
	req.Equal([]domain.Message{oldest, middle, newest}, fetched)
}

func Test_ListThread_Is_Argument_Order_Insensitive(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())

	at := time.Now().UTC()
	req.NoError(repository.Store(messageAt("alice", "bob", "hi", at)))
	req.NoError(repository.Store(messageAt("bob", "alice", "hey", at.Add(time.Second))))

	forward, err := repository.ListThread("alice", "bob")
	req.NoError(err)
	backward, err := repository.ListThread("bob", "alice")
	req.NoError(err)
	req.Equal(forward, backward)
}

func Test_ListThread_Returns_Empty_For_Unknown_Pair(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())

	fetched, err := repository.ListThread("nobody", "noone")
	req.NoError(err)
	req.Empty(fetched)
}

func Test_ListThread_Does_Not_Leak_Other_Threads(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())

	at := time.Now().UTC()
	req.NoError(repository.Store(messageAt("alice", "bob", "for bob", at)))
	req.NoError(repository.Store(messageAt("alice", "clara", "for clara", at)))
	req.NoError(repository.Store(messageAt("clara", "bob", "for bob too", at)))

	fetched, err := repository.ListThread("alice", "bob")
	req.NoError(err)
	req.Len(fetched, 1)
	req.Equal("for bob", fetched[0].Text)
}

func Test_ListThread_Ignores_Colon_Bearing_Ids_Under_Same_Prefix(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())

	at := time.Now().UTC()
	req.NoError(repository.Store(messageAt("alice", "bob", "private", at)))
	// Receiver ids are stored as written; one containing a colon lands
	// under a key that shares the alice/bob prefix.
	req.NoError(repository.Store(messageAt("alice", "bob:x", "crafted", at)))

	fetched, err := repository.ListThread("alice", "bob")
	req.NoError(err)
	req.Len(fetched, 1)
	req.Equal("private", fetched[0].Text)
	req.Equal("bob", fetched[0].ReceiverID)

	// The crafted pair still has its own intact thread.
	other, err := repository.ListThread("alice", "bob:x")
	req.NoError(err)
	req.Len(other, 1)
	req.Equal("crafted", other[0].Text)
}

func Test_Concurrent_Stores_Keep_Thread_Non_Decreasing(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sender, receiver := "alice", "bob"
			if n%2 == 0 {
				sender, receiver = receiver, sender
			}
			m := messageAt(sender, receiver, fmt.Sprintf("message %d", n), time.Now().UTC())
			require.NoError(t, repository.Store(m))
		}(i)
	}
	wg.Wait()

	fetched, err := repository.ListThread("alice", "bob")
	req.NoError(err)
	req.Len(fetched, 20)
	for i := 1; i < len(fetched); i++ {
		req.False(fetched[i].CreatedAt.Before(fetched[i-1].CreatedAt),
			"thread must be non-decreasing by creation time")
	}
}

func Test_Store_Preserves_Image_URL(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())

	message := domain.Message{
		ID:         uuid.New(),
		SenderID:   "alice",
		ReceiverID: "bob",
		ImageURL:   "https://img.example.com/cat.png",
		CreatedAt:  time.Now().UTC(),
	}
	req.NoError(repository.Store(message))

	fetched, err := repository.ListThread("alice", "bob")
	req.NoError(err)
	req.Len(fetched, 1)
	req.Equal(message, fetched[0])
}
