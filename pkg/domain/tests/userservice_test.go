package tests

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rachelSwimmer/StoreApi/pkg/domain/model"
	"github.com/rachelSwimmer/StoreApi/pkg/domain/service"
)

type fakePasswordManager struct{}

func (fakePasswordManager) Hash(plainTextPassword string) (string, error) {
	return "hashed:" + plainTextPassword, nil
}

func (fakePasswordManager) Check(hashedPassword, plainTextPassword string) (bool, error) {
	return hashedPassword == "hashed:"+plainTextPassword, nil
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) Issue(user *model.User) (string, error) {
	return "token-" + user.ID.String(), nil
}

func setupUsers(t *testing.T) (service.UserService, *mockState, *mockEventDispatcher) {
	t.Helper()

	state := newMockState()
	dispatcher := &mockEventDispatcher{}
	userService := service.NewUserService(
		&mockUserRepository{state: state},
		fakePasswordManager{},
		fakeTokenIssuer{},
		dispatcher,
	)
	return userService, state, dispatcher
}

func registerInput() service.RegisterUserInput {
	return service.RegisterUserInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "correct horse",
		Role:      model.RoleCustomer,
		Phone:     "+1 555 0100",
		Address:   "1 Analytical Engine Way",
	}
}

func TestRegisterUser(t *testing.T) {
	userService, state, dispatcher := setupUsers(t)

	user, err := userService.RegisterUser(context.Background(), registerInput())

	require.NoError(t, err)
	assert.Equal(t, "hashed:correct horse", user.HashedPassword)
	assert.Equal(t, model.RoleCustomer, user.Role)

	_, ok := state.users[user.ID]
	require.True(t, ok)

	require.Len(t, dispatcher.events, 1)
	registered, ok := dispatcher.events[0].(model.UserRegistered)
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", registered.Email)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := userService.RegisterUser(context.Background(), registerInput())
		assert.ErrorIs(t, err, model.ErrEmailTaken)
	})

	t.Run("short password", func(t *testing.T) {
		input := registerInput()
		input.Email = "other@example.com"
		input.Password = "short"
		_, err := userService.RegisterUser(context.Background(), input)
		assert.ErrorIs(t, err, service.ErrPasswordTooShort)
	})
}

func TestUpdateUserProfile(t *testing.T) {
	userService, _, _ := setupUsers(t)
	user, err := userService.RegisterUser(context.Background(), registerInput())
	require.NoError(t, err)

	phone := "+1 555 0199"
	updated, err := userService.UpdateUserProfile(context.Background(), user.ID, model.UserPatch{Phone: &phone})

	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "Ada", updated.FirstName, "omitted fields stay put")

	t.Run("absent user", func(t *testing.T) {
		_, err := userService.UpdateUserProfile(context.Background(), uuid.New(), model.UserPatch{})
		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})
}

func TestAuthenticate(t *testing.T) {
	userService, _, _ := setupUsers(t)
	user, err := userService.RegisterUser(context.Background(), registerInput())
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		authenticated, token, err := userService.Authenticate(context.Background(), "ada@example.com", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, user.ID, authenticated.ID)
		assert.Equal(t, "token-"+user.ID.String(), token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := userService.Authenticate(context.Background(), "ada@example.com", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := userService.Authenticate(context.Background(), "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestDeleteUser(t *testing.T) {
	userService, state, _ := setupUsers(t)
	user, err := userService.RegisterUser(context.Background(), registerInput())
	require.NoError(t, err)

	require.NoError(t, userService.DeleteUser(context.Background(), user.ID))
	assert.Empty(t, state.users)

	err = userService.DeleteUser(context.Background(), user.ID)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}
