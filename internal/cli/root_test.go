package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"RieperLogistics_ScanLedger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "ledger", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"serve"}, {"worker", "set"}, {"worker", "show"}, {"add"}, {"list"},
		{"edit"}, {"delete"}, {"export"}, {"send"}, {"scan"},
	}

	for _, path := range commands {
		name := strings.Join(path, " ")
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "Command %s should exist", name)
			assert.Equal(t, path[len(path)-1], subCmd.Name())
		})
	}
}

func TestExportCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	exportCmd, _, err := cmd.Find([]string{"export"})
	require.NoError(t, err)

	formatFlag := exportCmd.Flags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "csv", formatFlag.DefValue)

	outFlag := exportCmd.Flags().Lookup("out")
	require.NotNil(t, outFlag)
	assert.Equal(t, "o", outFlag.Shorthand)
}

// 임시 ledger 파일에 대해 명령을 실행하고 stdout을 돌려준다
func run(t *testing.T, db, endpoint, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	base := []string{"--env", filepath.Join(t.TempDir(), "missing.env"), "--db", db}
	if endpoint != "" {
		base = append(base, "--endpoint", endpoint)
	}
	cmd.SetArgs(append(base, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestLedgerWorkflow(t *testing.T) {
	var received []models.AppendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.AppendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			received = append(received, req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	db := filepath.Join(t.TempDir(), "ledger.db")

	_, err := run(t, db, srv.URL, "", "add", "-b", "0012345")
	require.Error(t, err, "add without worker id must fail")

	out, err := run(t, db, srv.URL, "", "worker", "set", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "worker set to 42")

	out, err = run(t, db, srv.URL, "", "add", "-b", "0012345", "-s", "DHL", "--hundert", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "added entry 1")

	out, err = run(t, db, srv.URL, "", "edit", "1", "--hundert", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "updated entry 1")

	out, err = run(t, db, srv.URL, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "0012345")
	assert.Contains(t, out, "DHL")
	assert.Contains(t, out, "7")

	out, err = run(t, db, srv.URL, "0099\n\n0100\n", "scan", "-a", "Palette")
	require.NoError(t, err)
	assert.Contains(t, out, "stored 0099 as entry 2")
	assert.Contains(t, out, "stored 0100 as entry 3")

	_, err = run(t, db, srv.URL, "", "delete", "3")
	require.NoError(t, err)

	csvPath := filepath.Join(t.TempDir(), "batch.csv")
	out, err = run(t, db, srv.URL, "", "export", "-o", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "exported 2 entries")
	exported, err := os.ReadFile(csvPath)
	require.NoError(t, err)

	out, err = run(t, db, srv.URL, "", "send")
	require.NoError(t, err)
	assert.Contains(t, out, "sent 2 entries")
	require.Len(t, received, 1)
	assert.Equal(t, string(exported), received[0].CSVData)
	assert.True(t, strings.HasSuffix(received[0].Filename, "_MA_42.csv"))

	out, err = run(t, db, srv.URL, "", "send")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to send")

	out, err = run(t, db, srv.URL, "", "worker", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "worker:    42")
	assert.NotContains(t, out, "never")
}

func TestSend_RemoteRejectionKeepsBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"quota exceeded"}`))
	}))
	defer srv.Close()

	db := filepath.Join(t.TempDir(), "ledger.db")
	_, err := run(t, db, srv.URL, "", "worker", "set", "7")
	require.NoError(t, err)
	_, err = run(t, db, srv.URL, "", "add", "-b", "1")
	require.NoError(t, err)

	_, err = run(t, db, srv.URL, "", "send")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	out, err := run(t, db, srv.URL, "", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "no entries today")
}

func TestExport_RejectsUnknownFormat(t *testing.T) {
	db := filepath.Join(t.TempDir(), "ledger.db")
	_, err := run(t, db, "", "", "export", "--format", "pdf")
	assert.ErrorContains(t, err, "invalid format")
}
