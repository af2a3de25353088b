package services

import (
	"context"
	goerrors "errors"
	"fmt"
	"strings"

	"chatline/auth"
	"chatline/domain"
	"chatline/errors"
	"chatline/media"
	"chatline/repositories"
)

type IAuthService interface {
	Register(name, email, password string) (Token, domain.User, error)
	Login(email, password string) (Token, domain.User, error)
	Me(userID string) (domain.User, error)
	UpdateAvatar(ctx context.Context, userID, imageData string) (domain.User, error)
}

type AuthService struct {
	users  repositories.IUserRepository
	media  media.IMediaStore
	tokens *auth.TokenManager
}

type Token string

func NewAuthService(users repositories.IUserRepository, mediaStore media.IMediaStore, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, media: mediaStore, tokens: tokens}
}

func (s *AuthService) Register(name, email, password string) (Token, domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	// 1. Validate business rules (email format, password length)
	// before any expensive cryptographic operation.
	if err := auth.ValidateRegister(auth.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}); err != nil {
		return "", domain.User{}, err
	}

	// 2. Hash the password using Argon2id. Done in the service layer to
	// keep the repository unaware of plain passwords.
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("hashing failed: %w", err)
	}

	// 3. Persist the user with the generated hash.
	user, err := s.users.CreateUser(name, email, hashedPassword)
	if err != nil {
		return "", domain.User{}, err // propagates ErrUserAlreadyExists
	}

	// 4. Issue the initial session token.
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", domain.User{}, errors.ErrTokenGeneration
	}

	return Token(token), user, nil
}

func (s *AuthService) Login(email, password string) (Token, domain.User, error) {
	email = normalizeEmail(email)
	if err := auth.ValidateLogin(auth.LoginRequest{Email: email, Password: password}); err != nil {
		return "", domain.User{}, err
	}

	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		// Generic error to prevent user enumeration attacks.
		return "", domain.User{}, errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return "", domain.User{}, errors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", domain.User{}, errors.ErrTokenGeneration
	}

	return Token(token), user, nil
}

func (s *AuthService) Me(userID string) (domain.User, error) {
	return s.users.GetUserByID(userID)
}

// UpdateAvatar pushes a new profile picture through the media store and
// saves the returned URL on the user record.
func (s *AuthService) UpdateAvatar(ctx context.Context, userID, imageData string) (domain.User, error) {
	if strings.TrimSpace(imageData) == "" {
		return domain.User{}, fmt.Errorf("%w: profile picture is required", errors.ErrValidation)
	}

	url, err := s.media.Upload(ctx, imageData)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.users.UpdateAvatar(userID, url)
	if goerrors.Is(err, errors.ErrUserNotFound) {
		return domain.User{}, err
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: updating avatar: %v", errors.ErrUpstream, err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
