package dashboard

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-admin-dashboard/components/board"
	"github.com/goliatone/go-admin-dashboard/components/calendar"
	"github.com/goliatone/go-admin-dashboard/components/records"
	"github.com/goliatone/go-admin-dashboard/components/settings"
)

const sampleSeed = `
version: 1
records:
  - id: 10
    name: Ada Lovelace
    email: ada@example.com
    role: Admin
    status: Active
    last_login: 2024-02-01
columns:
  - title: Backlog
    cards:
      - id: b1
        title: Write docs
        priority: low
        assignee: Ada Lovelace
        due_date: 2024-02-10
  - id: shipped
    title: Shipped
events:
  - id: e1
    title: Launch
    start: 2024-02-12T09:00:00
    type: deadline
settings:
  ada:
    profile:
      name: Ada Lovelace
      email: ada@example.com
      role: Administrator
    appearance:
      mode: dark
`

func TestDecodeSeed(t *testing.T) {
	doc, err := DecodeSeed(strings.NewReader(sampleSeed))
	require.NoError(t, err)
	assert.Equal(t, SeedVersion, doc.Version)
	require.Len(t, doc.Records, 1)
	assert.Equal(t, 2024, doc.Records[0].LastLogin.Year())
	require.Len(t, doc.Columns, 2)
	assert.Equal(t, "b1", doc.Columns[0].Cards[0].ID)

	st, err := doc.Stores()
	require.NoError(t, err)

	r, err := st.Records.Record(10)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", r.Name)

	assert.Equal(t, []board.ColumnSummary{
		{ID: "backlog", Title: "Backlog", Count: 1},
		{ID: "shipped", Title: "Shipped", Count: 0},
	}, st.Board.ColumnSummary())
	card, owner, err := st.Board.Card("b1")
	require.NoError(t, err)
	assert.Equal(t, "backlog", owner)
	assert.Equal(t, "AL", card.Initials)

	e, err := st.Calendar.Event("e1")
	require.NoError(t, err)
	assert.Equal(t, e.Start, e.End)
	assert.Equal(t, calendar.TypeDeadline, e.Type)

	prefs := st.Settings.Get("ada")
	assert.Equal(t, settings.ModeDark, prefs.Appearance.Mode)
	assert.Equal(t, "AL", prefs.Profile.Avatar)
}

func TestDecodeSeedRejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"unknown top-level": "version: 1\nwidgets: []\n",
		"bad role":          "records:\n  - id: 1\n    name: X\n    email: x@example.com\n    role: Owner\n",
		"missing email":     "records:\n  - id: 1\n    name: X\n",
		"bad priority":      "columns:\n  - title: A\n    cards:\n      - title: T\n        priority: urgent\n",
		"event w/o start":   "events:\n  - title: Party\n",
	}
	for name, payload := range cases {
		_, err := DecodeSeed(strings.NewReader(payload))
		assert.Error(t, err, name)
	}
}

func TestDecodeSeedRejectsDuplicates(t *testing.T) {
	payload := "columns:\n  - title: A\n    cards:\n      - id: x\n        title: One\n  - title: B\n    cards:\n      - id: x\n        title: Two\n"
	_, err := DecodeSeed(strings.NewReader(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicates card x")

	_, err = DecodeSeed(strings.NewReader("version: 2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported seed version")

	_, err = DecodeSeed(strings.NewReader("  \n"))
	require.Error(t, err)
}

func TestSeedApplyJoinsErrors(t *testing.T) {
	doc := &SeedDocument{
		Version: SeedVersion,
		Records: []records.Record{{ID: 1, Name: "Dup", Email: "dup@example.com", Role: records.RoleUser, Status: records.StatusActive}},
		Columns: []SeedColumn{{ID: "todo", Title: "To Do"}},
	}
	st := NewStores()
	st.Records = records.NewDefaultStore()
	st.Board = board.NewDefaultStore()

	err := doc.Apply(st)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed records")
	assert.Contains(t, err.Error(), "seed column To Do")
}

func TestDefaultSeedRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeSeed(&buf, DefaultSeedDocument()))

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	doc, err := ReadSeed(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)

	st, err := doc.Stores()
	require.NoError(t, err)
	assert.Equal(t, records.NewDefaultStore().Records(), st.Records.Records())
	assert.Equal(t, board.NewDefaultStore().Columns(), st.Board.Columns())
	assert.Equal(t, calendar.NewDefaultStore().Events(), st.Calendar.Events())
}

func TestStoresDocumentCapturesMutations(t *testing.T) {
	st := Stores{
		Records:  records.NewDefaultStore(),
		Board:    board.NewDefaultStore(),
		Calendar: calendar.NewDefaultStore(),
		Settings: settings.NewStore(),
	}
	moved, err := st.Board.MoveCard("1", "todo", "done", 0)
	require.NoError(t, err)
	require.True(t, moved)
	require.NoError(t, st.Settings.SetTheme("u1", settings.ModeDark))

	doc := st.Document()
	var buf bytes.Buffer
	require.NoError(t, EncodeSeed(&buf, doc))
	decoded, err := DecodeSeed(&buf)
	require.NoError(t, err)

	restored, err := decoded.Stores()
	require.NoError(t, err)
	assert.Equal(t, st.Board.Columns(), restored.Board.Columns())
	assert.Equal(t, st.Records.Records(), restored.Records.Records())
	assert.Equal(t, settings.ModeDark, restored.Settings.Get("u1").Appearance.Mode)
}
