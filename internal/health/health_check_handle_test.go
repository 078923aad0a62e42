package health

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/IsaacDSC/miracle/pkg/httpadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMux(staticDir string) *http.ServeMux {
	mux := http.NewServeMux()
	httpadapter.Register(mux, Routes(staticDir)...)
	return mux
}

func serve(mux http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestHeartbeat(t *testing.T) {
	mux := newMux(t.TempDir())

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodHead} {
		t.Run(method, func(t *testing.T) {
			rr := serve(mux, method, HeartbeatPath)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			if method != http.MethodHead {
				assert.Equal(t, "{}", rr.Body.String())
			}
		})
	}
}

func TestLBHeartbeat(t *testing.T) {
	rr := serve(newMux(t.TempDir()), http.MethodGet, LBHeartbeatPath)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"OK"}`, rr.Body.String())
}

func TestIndex(t *testing.T) {
	mux := newMux(t.TempDir())

	rr := serve(mux, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/plain", rr.Header().Get("Content-Type"))
	assert.Equal(t, "It works!\n", rr.Body.String())

	rr = serve(mux, http.MethodGet, "/unknown")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRobots(t *testing.T) {
	rr := serve(newMux(t.TempDir()), http.MethodGet, RobotsPath)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/plain", rr.Header().Get("Content-Type"))

	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	assert.Equal(t, "User-agent: *", lines[0])

	var disallowed []string
	for _, line := range lines[1:] {
		require.True(t, strings.HasPrefix(line, "Disallow: "), line)
		disallowed = append(disallowed, strings.TrimPrefix(line, "Disallow: "))
	}
	assert.Equal(t, []string{"/__heartbeat__", "/__lbheartbeat__", "/__version__"}, disallowed)
}

func TestVersion(t *testing.T) {
	t.Run("artifact present", func(t *testing.T) {
		dir := t.TempDir()
		content := `{"version":"1.2.3"}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, VersionFile), []byte(content), 0o644))

		rr := serve(newMux(dir), http.MethodGet, VersionPath)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.Equal(t, content, rr.Body.String())
	})

	t.Run("artifact missing", func(t *testing.T) {
		rr := serve(newMux(t.TempDir()), http.MethodGet, VersionPath)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("artifact unreadable", func(t *testing.T) {
		dir := t.TempDir()
		// a directory in place of the file makes ReadFile fail with something other than ErrNotExist
		require.NoError(t, os.Mkdir(filepath.Join(dir, VersionFile), 0o755))

		rr := serve(newMux(dir), http.MethodGet, VersionPath)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
