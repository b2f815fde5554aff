package application

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-todo-auth/pkg/apperror"
)

func TestRegisterThenLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "ada", "Ada@Example.com", "5551234")

	assert.Equal(t, "ada@example.com", u.Email)
	assert.NotEqual(t, "Passw0rd!", u.PasswordHash)
	assert.Nil(t, u.PasswordChangedAt)

	for _, login := range []string{"ada", "ada@example.com", "ADA@example.com", "5551234"} {
		sess, err := f.svc.Login(ctx, login, "Passw0rd!")
		require.NoError(t, err, login)
		assert.NotEmpty(t, sess.Token)
		assert.Equal(t, u.ID, sess.User.ID)
		assert.Equal(t, t0.Add(24*time.Hour), sess.ExpiresAt)
	}
}

func TestLoginDoesNotRevealWhichPartFailed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "ada", "ada@example.com", "5551234")

	_, wrongPassword := f.svc.Login(ctx, "ada", "Passw0rd?")
	_, unknownUser := f.svc.Login(ctx, "nobody", "Passw0rd!")

	for _, err := range []error{wrongPassword, unknownUser} {
		require.Error(t, err)
		assert.Equal(t, apperror.KindInvalidCredentials, apperror.KindOf(err))
		assert.Equal(t, http.StatusUnauthorized, apperror.From(err).Status)
	}
	assert.Equal(t, apperror.From(wrongPassword).Message, apperror.From(unknownUser).Message)
}

func TestRegisterDuplicateIsConflict(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ada", "ada@example.com", "5551234")

	_, err := f.svc.Register(context.Background(), RegisterInput{
		FullName: "Other", UserName: "other", Email: "ADA@example.com", PhoneNumber: "5559999", Password: "Passw0rd!",
	})
	e := apperror.From(err)
	require.NotNil(t, e)
	assert.Equal(t, apperror.KindConflict, e.Kind)
	assert.Equal(t, http.StatusConflict, e.Status)
	assert.Equal(t, map[string]string{"email": "already in use"}, e.Details)
}

func TestUpdateUserKeepsEmptyFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "ada", "ada@example.com", "5551234")

	got, err := f.svc.UpdateUser(ctx, u.ID, UpdateUserInput{FullName: "Ada King"})
	require.NoError(t, err)
	assert.Equal(t, "Ada King", got.FullName)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, "5551234", got.PhoneNumber)
	assert.Equal(t, u.PasswordHash, got.PasswordHash)
}

func TestUpdateUserConflict(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ada", "ada@example.com", "5551234")
	bob := f.register(t, "bob", "bob@example.com", "5555678")

	_, err := f.svc.UpdateUser(context.Background(), bob.ID, UpdateUserInput{PhoneNumber: "5551234"})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestDeleteUserOnlyOwnAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ada := f.register(t, "ada", "ada@example.com", "5551234")
	bob := f.register(t, "bob", "bob@example.com", "5555678")
	_, err := f.todos.Create(ctx, ada.ID, TodoInput{Title: "milk", Description: "two litres of milk"})
	require.NoError(t, err)

	err = f.svc.DeleteUser(ctx, bob.ID, ada.ID)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	require.NoError(t, f.svc.DeleteUser(ctx, ada.ID, ada.ID))
	_, err = f.svc.GetUser(ctx, ada.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	todos, err := f.todos.List(ctx, ada.ID)
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestListUsers(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ada", "ada@example.com", "5551234")
	f.register(t, "bob", "bob@example.com", "5555678")

	users, err := f.svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "ada", users[0].UserName)
}

func TestSearchUsersWithoutIndex(t *testing.T) {
	f := newFixture(t)
	hits, err := f.svc.SearchUsers(context.Background(), "ada", 10)
	require.NoError(t, err)
	assert.NotNil(t, hits)
	assert.Empty(t, hits)
}
