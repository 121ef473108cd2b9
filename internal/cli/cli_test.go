package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urustack/sentrywatch/internal/logic"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SENTRYWATCH_API_BASE", "SENTRYWATCH_API_HOST", "SENTRYWATCH_LOG_LEVEL", "SENTRYWATCH_LISTEN", "SENTRYWATCH_CONFIG"} {
		t.Setenv(k, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgPath, apiBase, logLevel = "", "", ""
	snapshotFormat, historyFormat = formatTable, formatTable
	historyLimit, historyIP = 20, ""
	demoNoWait, initForce = false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func backend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/incidents", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"a1","created_at":"2024-01-01T10:00:00Z","ip":"203.0.113.7","type":"BRUTE_FORCE","count":6,"severity":"MEDIUM"}]`))
	})
	mux.HandleFunc("/api/stats/daily", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"today_count":1,"by_type":{"BRUTE_FORCE":1},"timeseries":[]}`))
	})
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","database":"connected"}`))
	})
	mux.HandleFunc("/api/test-event", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"ok","events_created":17,"brute_force_ip":"203.0.113.7","port_scan_ip":"198.51.100.4"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeConfig(t *testing.T, host string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "api:\n  host: " + host + "\n  timeout: 2s\n" +
		"sync:\n  settle_delay: 10ms\n" +
		"storage:\n  data_dir: " + filepath.Join(dir, "data") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))
	return path
}

func TestSnapshot_JSON(t *testing.T) {
	clearEnv(t)
	srv := backend(t)
	path := writeConfig(t, srv.URL)

	out, err := execute(t, "snapshot", "--config", path, "-f", "json")
	require.NoError(t, err)

	var vm logic.ViewModel
	require.NoError(t, json.Unmarshal([]byte(out), &vm))
	assert.Equal(t, "203.0.113.7", vm.TopAttacker)
	assert.Equal(t, 1, vm.TodayCount)
	assert.Equal(t, 1, vm.BruteForce)
	assert.Equal(t, 0, vm.PortScan)

	out, err = execute(t, "history", "--config", path, "-f", "json")
	require.NoError(t, err)
	var hist struct {
		Attempts []map[string]any `json:"attempts"`
		Sources  []map[string]any `json:"sources"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &hist))
	assert.Len(t, hist.Attempts, 1)
	require.Len(t, hist.Sources, 1)
	assert.Equal(t, "203.0.113.7", hist.Sources[0]["ip"])
}

func TestSnapshot_BackendDown(t *testing.T) {
	clearEnv(t)
	srv := backend(t)
	path := writeConfig(t, srv.URL)
	srv.Close()

	out, err := execute(t, "snapshot", "--config", path)
	require.Error(t, err)
	assert.Contains(t, out, "no data yet")
}

func TestSnapshot_APIBaseFlag(t *testing.T) {
	clearEnv(t)
	srv := backend(t)
	path := writeConfig(t, "http://127.0.0.1:1")

	out, err := execute(t, "snapshot", "--config", path, "--api-base", srv.URL+"/api")
	require.NoError(t, err)
	assert.Contains(t, out, "203.0.113.7")
}

func TestDemo_WaitsAndSyncs(t *testing.T) {
	clearEnv(t)
	srv := backend(t)
	path := writeConfig(t, srv.URL)

	start := time.Now()
	out, err := execute(t, "demo", "--config", path)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	assert.Contains(t, out, "17 events")
	assert.Contains(t, out, "top attacker: 203.0.113.7")
}

func TestHealth(t *testing.T) {
	clearEnv(t)
	srv := backend(t)
	path := writeConfig(t, srv.URL)

	out, err := execute(t, "health", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "status:    ok")
}

func TestInit(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	_, err := execute(t, "init", "--config", path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = execute(t, "init", "--config", path)
	assert.Error(t, err)

	_, err = execute(t, "init", "--config", path, "--force")
	assert.NoError(t, err)
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, checkFormat("json"))
	assert.NoError(t, checkFormat("table"))
	assert.Error(t, checkFormat("yaml"))
}
