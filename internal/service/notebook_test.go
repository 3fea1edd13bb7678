package service

import (
	"context"
	"errors"
	"testing"

	"github.com/amformscst/backend/internal/eventbus"
	"github.com/amformscst/backend/internal/model"
	"github.com/amformscst/backend/internal/pkg/variables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotebookService_LoadFailure(t *testing.T) {
	repo := &mockNoteRepo{
		LoadFunc: func() (*model.Notebook, error) {
			return nil, errors.New("corrupt")
		},
	}
	svc := NewNotebookService(repo, nil)
	require.NotNil(t, svc.Notebook())
	assert.Equal(t, 0, svc.Notebook().Notes.Len())
}

func TestNotebookService_SelectPublishesAndPersists(t *testing.T) {
	nb := sampleNotebook()
	repo := &mockNoteRepo{LoadFunc: func() (*model.Notebook, error) { return nb, nil }}
	bus := eventbus.NewNotebookEventBus()
	var events []eventbus.NotebookEvent
	bus.Subscribe(eventbus.NotebookEventSelectionChanged, func(ctx context.Context, event eventbus.NotebookEvent) error {
		events = append(events, event)
		return nil
	})
	svc := NewNotebookService(repo, bus)

	note := nb.Notes.Items[0]
	second := model.NewDealer("Second Motors", "srv2")
	note.Dealers.Add(second)

	next, err := svc.Select(context.Background(), SelectRequest{Note: note.ID, Dealer: second.ID})
	require.NoError(t, err)

	sel := variables.Resolve(next)
	require.NotNil(t, sel.Dealer)
	assert.Equal(t, "srv2", sel.Dealer.ServerCode)
	assert.Nil(t, sel.Contact, "omitted contact clears the selection")
	assert.Same(t, next, svc.Notebook())
	assert.Equal(t, 1, repo.saves)
	require.Len(t, events, 1)
	assert.Equal(t, note.ID, events[0].NoteID)

	// 已发布的实例不被修改
	assert.NotEqual(t, second.ID, nb.Notes.Items[0].Dealers.SelectedID)
}

func TestNotebookService_SelectUnknownID(t *testing.T) {
	nb := sampleNotebook()
	svc := NewNotebookService(&mockNoteRepo{LoadFunc: func() (*model.Notebook, error) { return nb, nil }}, nil)
	before := svc.Notebook()

	_, err := svc.Select(context.Background(), SelectRequest{Note: nb.Notes.SelectedID, Dealer: "missing"})
	assert.ErrorIs(t, err, ErrSelectionNotFound)
	assert.Same(t, before, svc.Notebook())
}

func TestNotebookService_SelectClearNote(t *testing.T) {
	svc := NewNotebookService(&mockNoteRepo{LoadFunc: func() (*model.Notebook, error) { return sampleNotebook(), nil }}, nil)

	next, err := svc.Select(context.Background(), SelectRequest{})
	require.NoError(t, err)
	assert.Nil(t, variables.Resolve(next).Note)
}

func TestNotebookService_Replace(t *testing.T) {
	repo := &mockNoteRepo{}
	bus := eventbus.NewNotebookEventBus()
	replaced := 0
	bus.Subscribe(eventbus.NotebookEventReplaced, func(ctx context.Context, event eventbus.NotebookEvent) error {
		replaced++
		return nil
	})
	svc := NewNotebookService(repo, bus)

	nb := sampleNotebook()
	require.NoError(t, svc.Replace(context.Background(), nb))
	assert.Same(t, nb, svc.Provider()())
	assert.Equal(t, 1, repo.saves)
	assert.Equal(t, 1, replaced)

	repo.SaveFunc = func(nb *model.Notebook) error { return errors.New("disk full") }
	err := svc.Replace(context.Background(), model.NewNotebook())
	require.Error(t, err)
	assert.Same(t, nb, svc.Notebook(), "failed replace keeps the previous notebook")
}
