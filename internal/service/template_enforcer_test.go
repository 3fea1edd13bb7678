package service

import (
	"context"
	"errors"
	"testing"

	"github.com/amformscst/backend/internal/eventbus"
	"github.com/amformscst/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationMessage(t *testing.T, err error) string {
	t.Helper()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	return ve.Message
}

func TestNewTemplateEnforcer_LoadFailureStartsEmpty(t *testing.T) {
	store := &mockTemplateStore{
		LoadTemplatesFunc: func() ([]*model.TextTemplate, error) {
			return nil, errors.New("disk gone")
		},
	}
	e := NewTemplateEnforcer(store, nil)
	assert.Empty(t, e.Templates())
}

func TestTemplateEnforcer_AddTemplate(t *testing.T) {
	store := &mockTemplateStore{}
	bus := eventbus.NewTemplateEventBus()
	var events []eventbus.TemplateEvent
	bus.Subscribe(eventbus.TemplateEventAdded, func(ctx context.Context, event eventbus.TemplateEvent) error {
		events = append(events, event)
		return nil
	})
	e := NewTemplateEnforcer(store, bus)
	ctx := context.Background()

	tpl := model.NewTextTemplateFromText("Greeting", "", "Hello SelectedContact:Name", model.TemplateEmail)
	require.NoError(t, e.AddTemplate(ctx, tpl))

	assert.Len(t, e.Templates(), 1)
	require.Len(t, store.saved, 1)
	assert.Equal(t, tpl.ID, store.saved[0][0].ID)
	require.Len(t, events, 1)
	assert.Equal(t, tpl.ID, events[0].TemplateID)

	err := e.AddTemplate(ctx, tpl)
	assert.Equal(t, msgTemplateExists, validationMessage(t, err))
	assert.Len(t, store.saved, 1, "rejected add should not persist")
}

func TestTemplateEnforcer_AddTemplateValidation(t *testing.T) {
	e := NewTemplateEnforcer(&mockTemplateStore{}, nil)
	ctx := context.Background()

	err := e.AddTemplate(ctx, nil)
	assert.Equal(t, msgTemplateNil, validationMessage(t, err))

	blank := model.NewTextTemplateFromText("Blank", "", "   \n  ", model.TemplateOther)
	err = e.AddTemplate(ctx, blank)
	assert.Equal(t, msgTemplateTextBlank, validationMessage(t, err))
	assert.True(t, IsValidationError(err))
	assert.Empty(t, e.Templates())
}

func TestTemplateEnforcer_AddTemplateInlineMarkup(t *testing.T) {
	store := &mockTemplateStore{}
	e := NewTemplateEnforcer(store, nil)

	markup := `<FlowDocument xmlns="http://schemas.microsoft.com/winfx/2006/xaml/presentation">` +
		`<Paragraph>Hello {0}</Paragraph><Paragraph><Bold>World</Bold></Paragraph></FlowDocument>`
	tpl := model.NewTextTemplate("Inline", "", markup, model.TemplateOther)

	require.NoError(t, e.AddTemplate(context.Background(), tpl))
	assert.Equal(t, "Hello {0}\r\nWorld\r\n", tpl.PlainText())
	require.Len(t, store.saved, 1)
}

func TestTemplateEnforcer_AddTemplatePersistFailureKeepsChange(t *testing.T) {
	store := &mockTemplateStore{
		SaveTemplatesFunc: func(templates []*model.TextTemplate) error {
			return errors.New("write failed")
		},
	}
	e := NewTemplateEnforcer(store, nil)

	tpl := model.NewTextTemplateFromText("A", "", "body", model.TemplateOther)
	err := e.AddTemplate(context.Background(), tpl)
	require.Error(t, err)
	assert.False(t, IsValidationError(err))
	assert.Len(t, e.Templates(), 1)
}

func TestTemplateEnforcer_RemoveTemplate(t *testing.T) {
	existing := model.NewTextTemplateFromText("A", "", "body", model.TemplateOther)
	store := &mockTemplateStore{
		LoadTemplatesFunc: func() ([]*model.TextTemplate, error) {
			return []*model.TextTemplate{existing}, nil
		},
	}
	e := NewTemplateEnforcer(store, nil)
	ctx := context.Background()

	absent := model.NewTextTemplateFromText("B", "", "other body", model.TemplateOther)
	err := e.RemoveTemplate(ctx, absent)
	assert.Equal(t, msgTemplateMissing, validationMessage(t, err))

	require.NoError(t, e.RemoveTemplate(ctx, existing))
	assert.Empty(t, e.Templates())
	require.Len(t, store.saved, 1)
	assert.Empty(t, store.saved[0])

	_, err = e.GetTemplate(existing.ID)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestTemplateEnforcer_RemoveTemplateMatchesByID(t *testing.T) {
	existing := model.NewTextTemplateFromText("A", "", "body", model.TemplateOther)
	e := NewTemplateEnforcer(&mockTemplateStore{
		LoadTemplatesFunc: func() ([]*model.TextTemplate, error) {
			return []*model.TextTemplate{existing}, nil
		},
	}, nil)

	sameID := model.NewTextTemplateFromText("renamed", "", "different body", model.TemplateEmail)
	sameID.ID = existing.ID
	require.NoError(t, e.RemoveTemplate(context.Background(), sameID))
	assert.Empty(t, e.Templates())
}

func TestTemplateEnforcer_UpdateTemplate(t *testing.T) {
	existing := model.NewTextTemplateFromText("A", "old", "old body", model.TemplateOther)
	store := &mockTemplateStore{
		LoadTemplatesFunc: func() ([]*model.TextTemplate, error) {
			return []*model.TextTemplate{existing}, nil
		},
	}
	e := NewTemplateEnforcer(store, nil)
	ctx := context.Background()

	missing := model.NewTextTemplateFromText("X", "", "x", model.TemplateOther)
	updated, err := e.UpdateTemplate(ctx, missing)
	require.NoError(t, err)
	assert.False(t, updated)
	assert.Empty(t, store.saved, "missing template should not persist")

	change := model.NewTextTemplateFromText("A2", "new", "new body", model.TemplateEmail)
	change.ID = existing.ID
	updated, err = e.UpdateTemplate(ctx, change)
	require.NoError(t, err)
	assert.True(t, updated)
	require.Len(t, store.saved, 1)

	got, err := e.GetTemplate(existing.ID)
	require.NoError(t, err)
	assert.Same(t, existing, got)
	assert.Equal(t, "A2", got.Name)
	assert.Equal(t, "new", got.Description)
	assert.Equal(t, "new body\r\n", got.PlainText())
	assert.Equal(t, model.TemplateOther, got.Type, "type is not copied on update")
}

func TestTemplateEnforcer_StateCodes(t *testing.T) {
	e := NewTemplateEnforcer(&mockTemplateStore{}, nil)
	codes := e.StateCodes()
	assert.Len(t, codes, 52)
	assert.Contains(t, codes, "NY")
	assert.Contains(t, codes, "PR")

	codes[0] = "ZZ"
	assert.NotEqual(t, "ZZ", e.StateCodes()[0])
}

func TestTemplateEnforcer_ValidationErrorKinds(t *testing.T) {
	tpl := model.NewTextTemplateFromText("A", "", "body", model.TemplateOther)
	e := NewTemplateEnforcer(&mockTemplateStore{}, nil)
	ctx := context.Background()

	err := e.RemoveTemplate(ctx, tpl)
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	require.NoError(t, e.AddTemplate(ctx, tpl))
	err = e.AddTemplate(ctx, tpl)
	assert.ErrorIs(t, err, ErrTemplateExists)
	assert.True(t, IsValidationError(err))
}
