package e2e

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	server := newSessionServer(t)

	_, stderr, err := runTT(t, binaryPath, home, "profile", "set", "work", "--url", server.URL, "--use")
	require.NoError(t, err, "stderr: %s", stderr)

	_, stderr, err = runTT(t, binaryPath, home, "auth", "set", "--token", "tt-smoke")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runTT(t, binaryPath, home, "status")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Running")
	assert.Contains(t, stdout, "profile: work")
}

func newSessionServer(t *testing.T) *httptest.Server {
	t.Helper()

	start := time.Now().UTC().Format(time.RFC3339)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tt-smoke" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail": "Invalid token"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id": 1, "start_time": "`+start+`", "status": "active", "paused_duration": 0}]`)
	}))
	t.Cleanup(server.Close)
	return server
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "tt-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/tt")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build tt binary: %s", string(output))
	return binaryPath
}

func runTT(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"XDG_CONFIG_HOME=",
		"TIMETRACK_SECRET_BACKEND=file",
		"TIMETRACK_API_BASE_URL=",
		"TIMETRACK_API_TOKEN=",
	)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
