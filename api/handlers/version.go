package handlers

import (
	"net/http"
)

// VersionResponse contains the build info of the running API.
type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// GetVersion returns the build info set at link time.
func (h *Handlers) GetVersion(w http.ResponseWriter, r *http.Request) {
	v := h.version
	if v.Version == "" {
		v.Version = "dev"
	}
	writeJSON(w, v)
}

type ReadyResponse struct {
	Status     string `json:"status"`
	Indicators int    `json:"indicators"`
}

// Healthz reports that the process is serving.
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Readyz reports ready once the store holds at least one indicator.
func (h *Handlers) Readyz(w http.ResponseWriter, r *http.Request) {
	n := h.store.Len()
	if n == 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		writeJSON(w, ReadyResponse{Status: "no indicators loaded"})
		return
	}
	writeJSON(w, ReadyResponse{Status: "ok", Indicators: n})
}
