package auth

import (
	"testing"

	"chatline/errors"

	"github.com/stretchr/testify/require"
)

func Test_ValidateRegister(t *testing.T) {
	tests := []struct {
		name    string
		request RegisterRequest
		wantErr bool
	}{
		{"valid input", RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secret1"}, false},
		{"missing name", RegisterRequest{Email: "alice@example.com", Password: "secret1"}, true},
		{"invalid email", RegisterRequest{Name: "Alice", Email: "not-an-email", Password: "secret1"}, true},
		{"password too short", RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "short"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			err := ValidateRegister(tt.request)
			if tt.wantErr {
				req.ErrorIs(err, errors.ErrValidation)
			} else {
				req.NoError(err)
			}
		})
	}
}

func Test_ValidateLogin(t *testing.T) {
	req := require.New(t)

	req.NoError(ValidateLogin(LoginRequest{Email: "bob@example.com", Password: "anything"}))
	req.ErrorIs(ValidateLogin(LoginRequest{Email: "", Password: "anything"}), errors.ErrValidation)
	req.ErrorIs(ValidateLogin(LoginRequest{Email: "bob@example.com", Password: ""}), errors.ErrValidation)
}
