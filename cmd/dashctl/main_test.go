package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-admin-dashboard/components/dashboard"
	"github.com/goliatone/go-admin-dashboard/components/dashboard/queries"
	"github.com/goliatone/go-admin-dashboard/components/records"
	"github.com/goliatone/go-admin-dashboard/components/storeerr"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func TestRecordsListJSON(t *testing.T) {
	out, err := runCLI(t, "records", "list", "--role", "Admin", "--sort", "name", "--desc", "--format", "json")
	require.NoError(t, err)

	var view records.PageView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, 2, view.Total)
	require.Len(t, view.Records, 2)
	assert.Equal(t, "John Doe", view.Records[0].Name)
	assert.Equal(t, "David Brown", view.Records[1].Name)
}

func TestRecordsListSortAcceptsCamelCase(t *testing.T) {
	out, err := runCLI(t, "records", "list", "--sort", "lastLogin", "--format", "json")
	require.NoError(t, err)
	var view records.PageView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Len(t, view.Records, 6)
	assert.Equal(t, "Emily Davis", view.Records[0].Name)
	assert.Equal(t, records.SortLastLogin, view.Sort.Key)
}

func TestRecordsListTable(t *testing.T) {
	out, err := runCLI(t, "records", "list", "--size", "4", "--page", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "last_login")
	assert.Contains(t, out, "page 2/2, 6 matching")
	assert.Contains(t, out, "emily.davis@example.com")
	assert.NotContains(t, out, "john.doe@example.com")
}

func TestRecordsListRejectsBadInput(t *testing.T) {
	_, err := runCLI(t, "records", "list", "--sort", "avatar")
	assert.True(t, storeerr.IsValidation(err), "got %v", err)

	_, err = runCLI(t, "records", "list", "--page=-1")
	assert.True(t, storeerr.IsValidation(err), "got %v", err)
}

func TestRecordsExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inactive.csv")
	_, err := runCLI(t, "records", "export", "--status", "Inactive", "--out", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, records.ExportHeader, rows[0])
	assert.Equal(t, "Mike Johnson", rows[1][1])

	out, err := runCLI(t, "records", "export", "--search", "jane")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestBoardShow(t *testing.T) {
	out, err := runCLI(t, "board", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "To Do (todo)")
	assert.Contains(t, out, "[5] Code review for payment module")

	out, err = runCLI(t, "board", "show", "--format", "json")
	require.NoError(t, err)
	var columns []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &columns))
	assert.Len(t, columns, 4)
}

func TestBoardMoveWritesSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	_, err := runCLI(t, "seed", "dump", "--out", path)
	require.NoError(t, err)

	out, err := runCLI(t, "--seed", path, "board", "move", "1", "--from", "todo", "--to", "done", "--index", "5", "--write")
	require.NoError(t, err)
	assert.Contains(t, out, "Done (done)")

	doc, err := dashboard.ReadSeed(path)
	require.NoError(t, err)
	stores, err := doc.Stores()
	require.NoError(t, err)
	done, err := stores.Board.Column("done")
	require.NoError(t, err)
	require.Len(t, done.Cards, 2)
	assert.Equal(t, "6", done.Cards[0].ID)
	assert.Equal(t, "1", done.Cards[1].ID)

	out, err = runCLI(t, "--seed", path, "board", "move", "1", "--from", "done", "--to", "done", "--index", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "already at done[1]")
}

func TestBoardMoveErrors(t *testing.T) {
	_, err := runCLI(t, "board", "move", "1", "--from", "todo", "--to", "done", "--write")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--write needs --seed")

	_, err = runCLI(t, "board", "move", "1", "--from", "review", "--to", "done")
	assert.True(t, storeerr.IsNotFound(err), "got %v", err)
}

func TestSeedValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("records:\n  - id: 1\n    name: Only One\n    email: one@example.com\n"), 0o600))
	out, err := runCLI(t, "seed", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "ok (1 records, 0 columns, 0 cards, 0 events, 0 settings)")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("records:\n  - id: 1\n    name: Nobody\n    email: invalid\n"), 0o600))
	_, err = runCLI(t, "seed", "validate", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed validation")
}

func TestSeedDumpStdout(t *testing.T) {
	out, err := runCLI(t, "seed", "dump")
	require.NoError(t, err)
	doc, err := dashboard.DecodeSeed(strings.NewReader(out))
	require.NoError(t, err)
	assert.Len(t, doc.Records, 6)
	assert.Len(t, doc.Columns, 4)
}

func TestStatsAndChart(t *testing.T) {
	out, err := runCLI(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "(4 active, 2 inactive)")
	assert.Contains(t, out, "(5 open)")

	out, err = runCLI(t, "chart", "users_by_role")
	require.NoError(t, err)
	assert.Contains(t, out, "Admin")

	path := filepath.Join(t.TempDir(), "chart.html")
	_, err = runCLI(t, "chart", "cards_by_column", "--type", "pie", "--out", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	_, err = runCLI(t, "chart", "revenue")
	require.Error(t, err)
}

func TestLoadServeConfig(t *testing.T) {
	cfg, err := loadServeConfig(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "/admin", cfg.BasePath)
	assert.Equal(t, "/ws", cfg.WebSocketPath)
	assert.Equal(t, queries.DefaultPageSize, cfg.PageSize)

	cfg, err = loadServeConfig(map[string]string{
		"DASHBOARD_ADDR":      "127.0.0.1:9000",
		"DASHBOARD_BASE_PATH": "/ops",
		"DASHBOARD_PAGE_SIZE": "25",
	})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "/ops", cfg.BasePath)
	assert.Equal(t, 25, cfg.PageSize)

	_, err = loadServeConfig(map[string]string{"DASHBOARD_PAGE_SIZE": "0"})
	assert.Error(t, err)
	_, err = loadServeConfig(map[string]string{"DASHBOARD_PAGE_SIZE": "many"})
	assert.Error(t, err)
	_, err = loadServeConfig(map[string]string{"DASHBOARD_BASE_PATH": "admin"})
	assert.Error(t, err)
	_, err = loadServeConfig(map[string]string{"DASHBOARD_LOG_LEVEL": "loud"})
	assert.Error(t, err)
}

func TestNewAppWiresBroadcastAndPageSize(t *testing.T) {
	logger, err := newLogger("error", &bytes.Buffer{})
	require.NoError(t, err)
	rc := &runContext{ctx: context.Background(), out: &bytes.Buffer{}, logger: logger}

	a, err := newApp(rc, &serveConfig{PageSize: 4, ChartTheme: "dark"})
	require.NoError(t, err)

	view, err := a.api.RecordPage.Query(context.Background(), queries.RecordPageInput{})
	require.NoError(t, err)
	assert.Len(t, view.Records, 4)

	events, cancel := a.broadcast.Subscribe()
	defer cancel()
	require.NoError(t, a.service.ToggleRecordSelection(context.Background(), 2))
	event := <-events
	assert.Equal(t, dashboard.AreaRecords, event.Area)
	assert.Equal(t, []string{"2"}, event.IDs)
}
