package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"interview-coach/internal/domain/apperr"
	"interview-coach/internal/domain/entities"
	"interview-coach/internal/domain/interfaces/repository"
	"interview-coach/internal/domain/interfaces/repository/constants"
	"interview-coach/internal/infra/logger"
	"interview-coach/internal/infra/security"

	"github.com/sirupsen/logrus"
)

const emailField = "email"

// UserService is the service responsible for account signup and login.
type UserService struct {
	UserRepository repository.Repository[entities.User]
	Credential     security.Credential
	Logger         *logger.Logger

	// dummyHash is verified for unknown emails so both login failure paths cost the same.
	dummyHash string
}

// NewUserService creates a new instance of the service.
func NewUserService(userRepository repository.Repository[entities.User], credential security.Credential, logger *logger.Logger) (*UserService, error) {
	dummy, err := credential.Hash("interview-coach-login-padding")
	if err != nil {
		return nil, fmt.Errorf("prepare credential: %w", err)
	}
	return &UserService{
		UserRepository: userRepository,
		Credential:     credential,
		Logger:         logger,
		dummyHash:      dummy,
	}, nil
}

// EnsureIndexes makes the store reject a second account with the same email.
func (us *UserService) EnsureIndexes(ctx context.Context) error {
	return us.UserRepository.EnsureUniqueIndex(ctx, constants.USERS_COLLECTION, emailField)
}

// Signup stores a new account with a hashed password.
func (us *UserService) Signup(ctx context.Context, name, email, password string) (entities.User, error) {
	const op = "users.Signup"

	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return entities.User{}, apperr.New(apperr.KindInvalidInput, op, "name, email and password are required")
	}

	_, err := us.UserRepository.FindOne(ctx, constants.USERS_COLLECTION, emailField, email)
	switch {
	case err == nil:
		return entities.User{}, apperr.New(apperr.KindConflict, op, "An account with this email already exists")
	case !errors.Is(err, repository.ErrNotFound):
		us.Logger.Error(fmt.Sprintf("Failed to look up user: %v", err))
		return entities.User{}, apperr.Wrap(apperr.KindPersistence, op, err, "Unable to signup")
	}

	hash, err := us.Credential.Hash(password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooLong) {
			return entities.User{}, apperr.Wrap(apperr.KindInvalidInput, op, err, "password must be at most 72 bytes")
		}
		return entities.User{}, apperr.Wrap(apperr.KindInternal, op, err, "Unable to signup")
	}

	user := entities.User{Name: name, Email: email, PasswordHash: hash}
	id, err := us.UserRepository.Create(ctx, constants.USERS_COLLECTION, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return entities.User{}, apperr.New(apperr.KindConflict, op, "An account with this email already exists")
		}
		us.Logger.Error(fmt.Sprintf("Failed to create user: %v", err))
		return entities.User{}, apperr.Wrap(apperr.KindPersistence, op, err, "Unable to signup")
	}

	created, err := us.UserRepository.FindOne(ctx, constants.USERS_COLLECTION, emailField, email)
	if err != nil {
		us.Logger.Error(fmt.Sprintf("Failed to read back user %s: %v", id, err))
		return entities.User{}, apperr.Wrap(apperr.KindPersistence, op, err, "Unable to signup")
	}

	us.Logger.Info("User signed up", logrus.Fields{"user_id": id})
	return created, nil
}

// Login reports whether email and password match a stored account.
func (us *UserService) Login(ctx context.Context, email, password string) (bool, error) {
	user, err := us.UserRepository.FindOne(ctx, constants.USERS_COLLECTION, emailField, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		us.Credential.Verify(password, us.dummyHash)
		return false, nil
	}
	if err != nil {
		us.Logger.Error(fmt.Sprintf("Failed to look up user for login: %v", err))
		return false, apperr.Wrap(apperr.KindPersistence, "users.Login", err, "Not found")
	}

	return us.Credential.Verify(password, user.PasswordHash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
