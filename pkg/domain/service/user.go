package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/rachelSwimmer/StoreApi/pkg/domain/model"
)

var (
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const minPasswordLength = 8

type RegisterUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      model.Role
	Phone     string
	Address   string
}

type UserService interface {
	RegisterUser(ctx context.Context, input RegisterUserInput) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateUserProfile(ctx context.Context, id uuid.UUID, patch model.UserPatch) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
}

func NewUserService(repo model.UserRepository, passManager model.PasswordManager, tokens model.TokenIssuer, dispatcher EventDispatcher) UserService {
	return &userService{
		repo:        repo,
		passManager: passManager,
		tokens:      tokens,
		dispatcher:  dispatcher,
	}
}

type userService struct {
	repo        model.UserRepository
	passManager model.PasswordManager
	tokens      model.TokenIssuer
	dispatcher  EventDispatcher
}

func (s *userService) RegisterUser(ctx context.Context, input RegisterUserInput) (*model.User, error) {
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, model.ErrEmailTaken
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := s.passManager.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	userID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:             userID,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		HashedPassword: hashedPassword,
		Role:           input.Role,
		Phone:          input.Phone,
		Address:        input.Address,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.UserRegistered{
		UserID:    userID,
		Email:     input.Email,
		FirstName: input.FirstName,
	})
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.Find(ctx, id)
}

func (s *userService) UpdateUserProfile(ctx context.Context, id uuid.UUID, patch model.UserPatch) (*model.User, error) {
	user, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(user)
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Authenticate never reveals whether the email or the password was wrong.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	ok, err := s.passManager.Check(user.HashedPassword, password)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
