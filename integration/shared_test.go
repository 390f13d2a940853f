//go:build basic || database

// Package integration runs the gitwrapped binary end to end against a fake
// GitHub API. These tests are excluded from normal test runs by build tags:
//
//	go test -tags basic ./integration
//	go test -tags database ./integration
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

var (
	// sharedBinaryPath holds the path to a gitwrapped binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getBinary returns the path to the gitwrapped binary, building it once if needed.
func getBinary() string {
	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "gitwrapped-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binaryPath := filepath.Join(tempDir, "gitwrapped")
		buildCmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/gitwrapped")
		buildCmd.Dir = ".." // project root
		if output, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build gitwrapped: %v\n%s", err, output))
		}

		sharedBinaryPath = binaryPath
	})

	return sharedBinaryPath
}

// fakeGitHub serves one known user whose pushes all land on weekday nights.
type fakeGitHub struct {
	login       string
	pushes      int
	userFetches atomic.Int32
}

func (f *fakeGitHub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/{user}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("user") != f.login {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
			return
		}
		f.userFetches.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{
			"login": f.login, "name": "The Octocat", "bio": "Builds lanterns", "followers": 12,
		})
	})
	mux.HandleFunc("GET /users/{user}/repos", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("user") != f.login {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
			return
		}
		writeJSON(w, http.StatusOK, []map[string]any{
			{"name": "lantern", "full_name": f.login + "/lantern", "stargazers_count": 9, "forks_count": 2, "language": "Go"},
		})
	})
	mux.HandleFunc("GET /users/{user}/events/public", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("user") != f.login {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
			return
		}
		if r.URL.Query().Get("page") != "1" {
			writeJSON(w, http.StatusOK, []any{})
			return
		}
		writeJSON(w, http.StatusOK, f.events())
	})
	mux.HandleFunc("GET /repos/{owner}/{repo}/languages", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"Go": 9000, "Shell": 1000})
	})
	return mux
}

// events returns one single-commit push per weekday at 23:00 UTC, starting
// on Monday 2025-02-03.
func (f *fakeGitHub) events() []map[string]any {
	out := make([]map[string]any, 0, f.pushes)
	day := time.Date(2025, 2, 3, 23, 0, 0, 0, time.UTC)
	for len(out) < f.pushes {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			out = append(out, map[string]any{
				"type":       "PushEvent",
				"created_at": day.Format(time.RFC3339),
				"repo":       map[string]any{"name": f.login + "/lantern"},
				"payload":    map[string]any{"commits": []map[string]any{{"sha": fmt.Sprintf("%040d", len(out))}}},
			})
		}
		day = day.AddDate(0, 0, 1)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// startFakeGitHub starts the fake API and returns it with its base URL.
func startFakeGitHub(t *testing.T) (*fakeGitHub, string) {
	t.Helper()
	fake := &fakeGitHub{login: "octocat", pushes: 60}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	return fake, srv.URL + "/"
}

// runGitwrapped runs the binary with HOME and the working directory pointed
// at home, so default SQLite files and config lookups stay inside the test.
func runGitwrapped(t *testing.T, home string, env []string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := exec.Command(getBinary(), args...)
	cmd.Dir = home
	cmd.Env = append(os.Environ(), "HOME="+home, "GITHUB_TOKEN=", "GITWRAPPED_TOKEN=")
	cmd.Env = append(cmd.Env, env...)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	if err != nil {
		t.Logf("Command failed: %s\nstdout: %s\nstderr: %s", cmd.String(), outBuf.String(), errBuf.String())
	}
	return outBuf.String(), errBuf.String(), err
}
