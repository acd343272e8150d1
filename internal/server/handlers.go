package server

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"sort"

	"github.com/osse101/MagicGarden_Go/internal/domain"
	"github.com/osse101/MagicGarden_Go/internal/logger"
)

// Build-time variables (injected via ldflags)
var (
	BuildTime = "unknown"
	GitCommit = "unset"
)

// HealthCheck reports whether one dependency is usable
type HealthCheck func(ctx context.Context) error

// HealthResponse represents the response for /healthz
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// VersionInfo contains version and build information
type VersionInfo struct {
	App       string `json:"app"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	BuildTime string `json:"build_time,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
}

// HandleHealthz runs every check. Any failure turns the response into a 503.
func HandleHealthz(checks map[string]HealthCheck) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), HealthCheckTimeout)
		defer cancel()

		resp := HealthResponse{Status: StatusOK}
		status := http.StatusOK
		if len(names) > 0 {
			resp.Checks = make(map[string]string, len(names))
		}
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				logger.FromContext(ctx).Error(LogMsgHealthCheckFail, "check", name, "error", err)
				resp.Checks[name] = err.Error()
				resp.Status = StatusUnavailable
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = StatusOK
		}

		respondJSON(w, status, resp)
	}
}

// HandleVersion returns version information about the application
func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, VersionInfo{
			App:       domain.AppName,
			Version:   domain.AppVersion,
			GoVersion: runtime.Version(),
			BuildTime: BuildTime,
			GitCommit: GitCommit,
		})
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
