package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avakhov/relcat/internal/catalog"
	"github.com/avakhov/relcat/internal/storage"
)

const maxRequestBodySize = 1 << 20 // 1MB

// Deps holds dependencies for the HTTP handler.
type Deps struct {
	Catalog *catalog.Catalog
	Store   *storage.Store
	Token   string // optional; empty disables bearer auth
}

// versionResponse is one aggregated entry as served to the picker UI, with
// the release channel precomputed so the UI never re-derives it.
type versionResponse struct {
	Version   string          `json:"version"`
	Name      string          `json:"name,omitempty"`
	LocalPath string          `json:"localPath,omitempty"`
	Source    catalog.Source  `json:"source"`
	State     catalog.State   `json:"state"`
	Channel   catalog.Channel `json:"channel"`
}

// NewHandler builds the REST surface for the version picker.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Group(func(pr chi.Router) {
		if deps.Token != "" {
			pr.Use(BearerAuth(deps.Token))
		}
		pr.Get("/versions", handleListVersions(deps))
		pr.Get("/versions/default", handleDefaultVersion(deps))
		pr.Post("/versions/local", handleAddLocal(deps))
		pr.Get("/versions/selected", handleGetSelected(deps))
		pr.Put("/versions/selected", handlePutSelected(deps))
		pr.Post("/refresh", handleRefresh(deps))
		pr.Get("/refreshes", handleListRefreshes(deps))
		pr.Get("/refreshes/{id}", handleGetRefresh(deps))
	})

	return r
}

func handleListVersions(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			all []catalog.AggregatedVersion
			err error
		)
		if r.URL.Query().Get("refresh") == "true" {
			all, err = deps.Catalog.RefreshAndGetAll(r.Context())
		} else {
			all, err = deps.Catalog.GetAll()
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to load versions: %v", err)
			return
		}

		out := make([]versionResponse, len(all))
		for i, v := range all {
			out[i] = versionResponse{
				Version:   v.Version,
				Name:      v.Name,
				LocalPath: v.LocalPath,
				Source:    v.Source,
				State:     v.State,
				Channel:   catalog.Classify(v.VersionRecord),
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
	}
}

func handleDefaultVersion(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version, err := deps.Catalog.Default()
		if errors.Is(err, catalog.ErrNoVersions) {
			httpError(w, http.StatusInternalServerError, "corrupted_state", "no versions available to select")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to resolve default: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"version": version})
	}
}

func handleAddLocal(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var rec catalog.VersionRecord
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if rec.Version == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "version is required")
			return
		}
		if rec.LocalPath == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "localPath is required")
			return
		}

		locals, err := deps.Catalog.AddLocal(rec)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to add local version: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(locals)
	}
}

func handleGetSelected(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version, ok := deps.Catalog.Selected()
		if !ok {
			httpError(w, http.StatusNotFound, "not_found", "no version selected")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"version": version})
	}
}

func handlePutSelected(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req struct {
			Version string `json:"version"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Version == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "version is required")
			return
		}

		if err := deps.Catalog.SetSelected(req.Version); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to store selection: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "updated"})
	}
}

func handleRefresh(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := deps.Catalog.Refresh(r.Context())
		if err != nil {
			httpError(w, http.StatusBadGateway, "api_error", "refresh failed: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"count": len(records)})
	}
}

func handleListRefreshes(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseIntParam(r, "limit", 20, 100)

		entries, err := deps.Store.RecentRefreshes(limit)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list refreshes: %v", err)
			return
		}
		if entries == nil {
			entries = []storage.RefreshEntry{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entries)
	}
}

func handleGetRefresh(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry, err := deps.Store.GetRefresh(chi.URLParam(r, "id"))
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "refresh not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to load refresh: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entry)
	}
}

func httpError(w http.ResponseWriter, status int, code, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"type":    code,
			"message": fmt.Sprintf(format, args...),
		},
	})
}

func parseIntParam(r *http.Request, key string, defaultVal, maxVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	if maxVal > 0 && v > maxVal {
		return maxVal
	}
	return v
}
