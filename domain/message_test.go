package domain

import (
	"testing"

	"chatline/errors"

	"github.com/stretchr/testify/require"
)

func Test_NewMessage_Requires_Text_Or_Image(t *testing.T) {
	req := require.New(t)

	_, err := NewMessage("a", "b", "", "")
	req.ErrorIs(err, errors.ErrMessageEmpty)

	_, err = NewMessage("a", "b", "   ", "")
	req.ErrorIs(err, errors.ErrMessageEmpty)

	message, err := NewMessage("a", "b", "hello", "")
	req.NoError(err)
	req.Equal("hello", message.Text)
	req.Empty(message.ImageURL)

	message, err = NewMessage("a", "b", "", "https://img.example.com/1.png")
	req.NoError(err)
	req.Empty(message.Text)
	req.Equal("https://img.example.com/1.png", message.ImageURL)
}

func Test_NewMessage_Assigns_ID_And_UTC_Timestamp(t *testing.T) {
	req := require.New(t)

	first, err := NewMessage("a", "b", "one", "")
	req.NoError(err)
	second, err := NewMessage("a", "b", "two", "")
	req.NoError(err)

	req.NotEqual(first.ID, second.ID)
	req.False(first.CreatedAt.IsZero())
	req.Equal(first.CreatedAt, first.CreatedAt.UTC())
}

func Test_ThreadKey_Is_Order_Insensitive(t *testing.T) {
	req := require.New(t)

	lo1, hi1 := ThreadKey("user-1", "user-2")
	lo2, hi2 := ThreadKey("user-2", "user-1")

	req.Equal(lo1, lo2)
	req.Equal(hi1, hi2)
	req.LessOrEqual(lo1, hi1)
}
