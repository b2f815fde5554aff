package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-todo-auth/internal/domain/entity"
	"github.com/oksasatya/go-todo-auth/pkg/apperror"
)

func TestTodoLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ada := f.register(t, "ada", "ada@example.com", "5551234")

	due := t0.Add(48 * time.Hour)
	first, err := f.todos.Create(ctx, ada.ID, TodoInput{Title: "milk", Description: "two litres of milk", Date: &due})
	require.NoError(t, err)
	assert.Equal(t, entity.TodoActive, first.Status)
	second, err := f.todos.Create(ctx, ada.ID, TodoInput{Title: "bread", Description: "one loaf of rye bread"})
	require.NoError(t, err)

	all, err := f.todos.List(ctx, ada.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest first")

	done, err := f.todos.Complete(ctx, ada.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TodoDone, done.Status)

	active, err := f.todos.ListActive(ctx, ada.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)

	doneList, err := f.todos.ListDone(ctx, ada.ID)
	require.NoError(t, err)
	require.Len(t, doneList, 1)
	assert.Equal(t, first.ID, doneList[0].ID)

	updated, err := f.todos.Update(ctx, ada.ID, second.ID, TodoInput{Description: "two loaves of rye bread"})
	require.NoError(t, err)
	assert.Equal(t, "bread", updated.Title)
	assert.Equal(t, "two loaves of rye bread", updated.Description)

	require.NoError(t, f.todos.Delete(ctx, ada.ID, second.ID))
	_, err = f.todos.Get(ctx, ada.ID, second.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestTodoOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ada := f.register(t, "ada", "ada@example.com", "5551234")
	bob := f.register(t, "bob", "bob@example.com", "5555678")

	todo, err := f.todos.Create(ctx, ada.ID, TodoInput{Title: "milk", Description: "two litres of milk"})
	require.NoError(t, err)

	_, err = f.todos.Get(ctx, bob.ID, todo.ID)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	_, err = f.todos.Update(ctx, bob.ID, todo.ID, TodoInput{Title: "stolen"})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	_, err = f.todos.Complete(ctx, bob.ID, todo.ID)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(f.todos.Delete(ctx, bob.ID, todo.ID)))

	bobs, err := f.todos.List(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobs)

	_, err = f.todos.Create(ctx, bob.ID, TodoInput{Title: "milk", Description: "bob wants milk too"})
	assert.NoError(t, err, "titles are unique per owner only")
	_, err = f.todos.Create(ctx, ada.ID, TodoInput{Title: "milk", Description: "milk again please"})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestTodoDeleteAllNeedsConfirmation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ada := f.register(t, "ada", "ada@example.com", "5551234")
	for _, title := range []string{"milk", "bread", "eggs"} {
		_, err := f.todos.Create(ctx, ada.ID, TodoInput{Title: title, Description: "buy some " + title})
		require.NoError(t, err)
	}

	_, err := f.todos.DeleteAll(ctx, ada.ID, "")
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	_, err = f.todos.DeleteAll(ctx, ada.ID, "no")
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	left, err := f.todos.List(ctx, ada.ID)
	require.NoError(t, err)
	assert.Len(t, left, 3)

	n, err := f.todos.DeleteAll(ctx, ada.ID, "yes")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
