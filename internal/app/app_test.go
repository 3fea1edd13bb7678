package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/amformscst/backend/config"
	"github.com/amformscst/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, store string) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		Database:  config.DatabaseConfig{Type: "sqlite", DSN: filepath.Join(dir, "app.db")},
		Data:      config.DataConfig{Dir: dir, NotesFile: filepath.Join(dir, "SavedNotes.json")},
		Templates: config.TemplatesConfig{Store: store, File: filepath.Join(dir, "TextTemplates.json")},
		Formgen:   config.FormgenConfig{BackupDir: filepath.Join(dir, "FormgenBackup"), BackupRetention: 3},
		Org:       config.OrgConfig{LooseVariables: config.DefaultLooseVariables()},
	}
}

func TestNew_TemplatesPersistAcrossRestart(t *testing.T) {
	for _, store := range []string{"db", "file"} {
		t.Run(store, func(t *testing.T) {
			cfg := testConfig(t, store)

			a, cleanup, err := New(cfg)
			require.NoError(t, err)
			tpl := model.NewTextTemplateFromText("Mail", "", "Send to AMMail:FullAddress", model.TemplateEmail)
			require.NoError(t, a.Templates.AddTemplate(context.Background(), tpl))
			cleanup()

			b, cleanup, err := New(cfg)
			require.NoError(t, err)
			defer cleanup()
			got, err := b.Templates.GetTemplate(tpl.ID)
			require.NoError(t, err)
			assert.Equal(t, "Mail", got.Name)
		})
	}
}

func TestNew_LooseVariablesFromConfig(t *testing.T) {
	cfg := testConfig(t, "file")
	cfg.Org.LooseVariables["AMCity"] = "Albany"

	a, cleanup, err := New(cfg)
	require.NoError(t, err)
	defer cleanup()

	v, ok := a.Registry.Lookup("AMMail:City")
	require.True(t, ok)
	assert.Equal(t, "Albany", v.GetValue())
}
