package service

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/amformscst/backend/internal/pkg/formgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFormgenUUID = "0d3f1a52-8a0e-4a8b-9a43-6f0d2b7c1e11"

const testFormgenXML = `<?xml version="1.0" encoding="utf-8" standalone="yes"?>
<formDef version="4" publishedUUID="0d3f1a52-8a0e-4a8b-9a43-6f0d2b7c1e11" totalPages="1">
  <pages pageNumber="1">
    <fields>
      <entry>
        <key>1</key>
        <value uniqueId="1" formFieldType="TEXT"><expression>F0</expression></value>
      </entry>
    </fields>
  </pages>
  <title>Retail Contract</title>
  <formPrintType>LegacyImpact</formPrintType>
  <codeLines order="3" type="PROMPT" destVariable="F7">
    <promptData type="Text"><promptMessage>Trade value</promptMessage></promptData>
  </codeLines>
  <codeLines order="0" type="INIT" destVariable="F1">
    <expression>DEAL.NUMBER</expression>
  </codeLines>
  <formCategory>Retail</formCategory>
  <validStates>NY</validStates>
</formDef>`

func newTestFormgenService(backupDir string, retention uint) *formgenService {
	svc := NewFormgenService(backupDir, retention).(*formgenService)
	base := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	calls := 0
	svc.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}
	return svc
}

func writeFormgen(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contract.formgen")
	require.NoError(t, os.WriteFile(path, []byte(testFormgenXML), 0644))
	return path
}

func TestFormgenService_LoadAndSummary(t *testing.T) {
	svc := newTestFormgenService("", 0)

	doc, err := svc.Load(writeFormgen(t))
	require.NoError(t, err)

	summary := svc.Summary(doc)
	assert.Equal(t, "Retail Contract", summary.Title)
	assert.Equal(t, testFormgenUUID, summary.UUID)
	assert.Equal(t, "Retail", summary.Category)
	assert.Equal(t, "LegacyImpact", summary.Format)
	assert.Equal(t, 1, summary.PageCount)
	assert.Equal(t, 1, summary.FieldCount)
	assert.Equal(t, 1, summary.InitCount)
	assert.Equal(t, 1, summary.PromptCount)
	assert.Equal(t, 0, summary.PostCount)
	assert.Equal(t, []string{"NY"}, summary.States)
}

func TestFormgenService_LoadErrors(t *testing.T) {
	svc := newTestFormgenService("", 0)

	_, err := svc.Load(filepath.Join(t.TempDir(), "missing.formgen"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.formgen")
	require.NoError(t, os.WriteFile(bad, []byte("not xml at all"), 0644))
	_, err = svc.Load(bad)
	assert.Error(t, err)
}

func TestFormgenService_SaveWithoutExistingFileSkipsBackup(t *testing.T) {
	backupDir := t.TempDir()
	svc := newTestFormgenService(backupDir, 5)

	doc, err := formgen.Parse([]byte(testFormgenXML))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "new.formgen")
	require.NoError(t, svc.Save(path, doc))

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	reloaded, err := svc.Load(path)
	require.NoError(t, err)
	want, err := doc.Generate()
	require.NoError(t, err)
	got, err := reloaded.Generate()
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestFormgenService_SaveBacksUpAndPrunes(t *testing.T) {
	backupDir := t.TempDir()
	svc := newTestFormgenService(backupDir, 2)
	path := writeFormgen(t)

	doc, err := svc.Load(path)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		doc.Title = "Revision " + string(rune('A'+i))
		require.NoError(t, svc.Save(path, doc))
	}

	dir := filepath.Join(backupDir, testFormgenUUID)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	assert.Equal(t, []string{"2025-01-02.03-04-08.000.bak", "2025-01-02.03-04-09.000.bak"}, names)

	// 最新的备份是第三次保存后的内容
	latest, err := os.ReadFile(filepath.Join(dir, names[1]))
	require.NoError(t, err)
	backedUp, err := formgen.Parse(latest)
	require.NoError(t, err)
	assert.Equal(t, "Revision C", backedUp.Title)
}

func TestFormgenService_RetentionZeroKeepsAll(t *testing.T) {
	backupDir := t.TempDir()
	svc := newTestFormgenService(backupDir, 0)
	path := writeFormgen(t)

	doc, err := svc.Load(path)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Save(path, doc))
	}

	entries, err := os.ReadDir(filepath.Join(backupDir, testFormgenUUID))
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestFormgenService_ClonePrompt(t *testing.T) {
	svc := newTestFormgenService("", 0)
	doc, err := formgen.Parse([]byte(testFormgenXML))
	require.NoError(t, err)

	line, err := svc.ClonePrompt(doc, 0, "")
	require.NoError(t, err)
	assert.Equal(t, "F8", line.Settings.Variable)
	assert.Equal(t, 4, line.Settings.Order)
	assert.Equal(t, formgen.CodePrompt, line.Settings.Type)
	require.NotNil(t, line.PromptData)
	assert.Equal(t, "Trade value", line.PromptData.Message)
	assert.Equal(t, 2, doc.PromptCount())

	named, err := svc.ClonePrompt(doc, 1, "TradeAllowance")
	require.NoError(t, err)
	assert.Equal(t, "TradeAllowance", named.Settings.Variable)
	assert.Equal(t, 5, named.Settings.Order)

	_, err = svc.ClonePrompt(doc, 9, "")
	assert.ErrorIs(t, err, formgen.ErrIndexOutOfRange)
}
