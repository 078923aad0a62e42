package health

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/IsaacDSC/miracle/pkg/ctxlogger"
	"github.com/IsaacDSC/miracle/pkg/httpadapter"
)

const (
	HeartbeatPath   = "/__heartbeat__"
	LBHeartbeatPath = "/__lbheartbeat__"
	VersionPath     = "/__version__"
	RobotsPath      = "/robots.txt"

	VersionFile = "version.json"
)

var (
	heartbeatBody   = []byte(`{}`)
	lbHeartbeatBody = []byte(`{"status":"OK"}`)
	indexBody       = []byte("It works!\n")
	robotsBody      = []byte("User-agent: *\n" +
		"Disallow: " + HeartbeatPath + "\n" +
		"Disallow: " + LBHeartbeatPath + "\n" +
		"Disallow: " + VersionPath + "\n")
)

func write(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func GetHeartbeatHandler() httpadapter.HttpHandle {
	return httpadapter.HttpHandle{
		Path: HeartbeatPath,
		Handler: func(w http.ResponseWriter, r *http.Request) {
			write(w, "application/json", heartbeatBody)
		},
	}
}

func GetLBHeartbeatHandler() httpadapter.HttpHandle {
	return httpadapter.HttpHandle{
		Path: LBHeartbeatPath,
		Handler: func(w http.ResponseWriter, r *http.Request) {
			write(w, "application/json", lbHeartbeatBody)
		},
	}
}

// GetIndexHandler only answers the exact root path; anything else falls
// through to the mux's 404.
func GetIndexHandler() httpadapter.HttpHandle {
	return httpadapter.HttpHandle{
		Path: "/{$}",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			write(w, "text/plain", indexBody)
		},
	}
}

func GetRobotsHandler() httpadapter.HttpHandle {
	return httpadapter.HttpHandle{
		Path: RobotsPath,
		Handler: func(w http.ResponseWriter, r *http.Request) {
			write(w, "text/plain", robotsBody)
		},
	}
}

// GetVersionHandler serves <staticDir>/version.json as-is. The file is read on
// every request so a redeployed artifact is picked up without a restart.
func GetVersionHandler(staticDir string) httpadapter.HttpHandle {
	versionFile := filepath.Join(staticDir, VersionFile)

	return httpadapter.HttpHandle{
		Path: VersionPath,
		Handler: func(w http.ResponseWriter, r *http.Request) {
			body, err := os.ReadFile(versionFile)
			if errors.Is(err, fs.ErrNotExist) {
				http.NotFound(w, r)
				return
			}
			if err != nil {
				ctxlogger.GetLogger(r.Context()).Error("could not read version file", "path", versionFile, "error", err)
				http.Error(w, "could not read version file", http.StatusInternalServerError)
				return
			}

			write(w, "application/json", body)
		},
	}
}

// Routes returns the health check and version endpoints, registered method-agnostic.
func Routes(staticDir string) []httpadapter.HttpHandle {
	return []httpadapter.HttpHandle{
		GetHeartbeatHandler(),
		GetLBHeartbeatHandler(),
		GetIndexHandler(),
		GetRobotsHandler(),
		GetVersionHandler(staticDir),
	}
}
