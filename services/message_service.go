package services

import (
	"context"
	"fmt"
	"log/slog"

	"chatline/domain"
	"chatline/errors"
	"chatline/media"
	"chatline/repositories"

	"github.com/samber/lo"
)

type IMessageService interface {
	Send(ctx context.Context, senderID, receiverID, text, imageData string) (domain.Message, error)
	Thread(ctx context.Context, userA, userB string) ([]ThreadEntry, error)
}

// ThreadEntry pairs a message with the public profiles of both
// participants. A profile is nil when the referenced identity no longer
// exists; the message itself is still returned.
type ThreadEntry struct {
	Message  domain.Message
	Sender   *domain.Profile
	Receiver *domain.Profile
}

type MessageService struct {
	messages         repositories.IMessageRepository
	users            repositories.IUserRepository
	media            media.IMediaStore
	log              *slog.Logger
	maxContentLength int
}

func NewMessageService(
	messages repositories.IMessageRepository,
	users repositories.IUserRepository,
	mediaStore media.IMediaStore,
	log *slog.Logger,
	maxContentLength int,
) *MessageService {
	return &MessageService{
		messages:         messages,
		users:            users,
		media:            mediaStore,
		log:              log,
		maxContentLength: maxContentLength,
	}
}

// Send creates one immutable message from senderID to receiverID.
// senderID is the authenticated caller and is trusted; receiverID comes
// straight from the request path and is stored as-is, existing user or
// not. When an image payload is present it is uploaded first: if the
// media store fails, no message is persisted.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID, text, imageData string) (domain.Message, error) {
	if len(text) > s.maxContentLength {
		return domain.Message{}, errors.ErrMessageTooLong
	}

	var imageURL string
	if imageData != "" {
		url, err := s.media.Upload(ctx, imageData)
		if err != nil {
			return domain.Message{}, err
		}
		imageURL = url
	}

	message, err := domain.NewMessage(senderID, receiverID, text, imageURL)
	if err != nil {
		return domain.Message{}, err
	}

	if err = s.messages.Store(message); err != nil {
		return domain.Message{}, fmt.Errorf("%w: storing message: %v", errors.ErrUpstream, err)
	}

	s.log.Debug("Message stored", "id", message.ID, "sender", senderID, "receiver", receiverID)
	return message, nil
}

// Thread returns the full conversation between two users, oldest first.
// Identity enrichment is an explicit two-step join: fetch the messages,
// then fetch each distinct referenced identity once and attach its public
// profile in memory. A missing identity degrades only its own entries.
func (s *MessageService) Thread(ctx context.Context, userA, userB string) ([]ThreadEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	messages, err := s.messages.ListThread(userA, userB)
	if err != nil {
		return nil, fmt.Errorf("%w: listing thread: %v", errors.ErrUpstream, err)
	}

	ids := lo.Uniq(lo.FlatMap(messages, func(m domain.Message, _ int) []string {
		return []string{m.SenderID, m.ReceiverID}
	}))

	profiles := make(map[string]*domain.Profile, len(ids))
	for _, id := range ids {
		user, err := s.users.GetUserByID(id)
		if err != nil {
			s.log.Debug("Thread participant unknown, leaving profile empty", "id", id, "err", err)
			continue
		}
		profile := user.PublicProfile()
		profiles[id] = &profile
	}

	entries := make([]ThreadEntry, 0, len(messages))
	for _, m := range messages {
		entries = append(entries, ThreadEntry{
			Message:  m,
			Sender:   profiles[m.SenderID],
			Receiver: profiles[m.ReceiverID],
		})
	}
	return entries, nil
}
