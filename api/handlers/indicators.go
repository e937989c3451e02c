package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/malbeclabs/weo/indexer/pkg/weo"
)

type IndicatorListResponse struct {
	Country string `json:"country"`
	PaginatedResponse[weo.Summary]
}

// ListIndicators returns one summary line per indicator in table order.
func (h *Handlers) ListIndicators(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, IndicatorListResponse{
		Country:           h.store.Country(),
		PaginatedResponse: Paginate(h.store.List(), ParsePagination(r, DefaultPageLimit)),
	})
}

type SearchResponse struct {
	Query   string             `json:"query"`
	Results []weo.SearchResult `json:"results"`
}

// SearchIndicators matches ?q= against indicator metadata.
func (h *Handlers) SearchIndicators(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "missing_query", "q parameter is required")
		return
	}
	results := h.store.Search(q)
	if results == nil {
		results = []weo.SearchResult{}
	}
	writeJSON(w, SearchResponse{Query: q, Results: results})
}

// IndicatorResponse is an indicator restricted to the requested years.
type IndicatorResponse struct {
	*weo.IndicatorView
	From int `json:"from,omitempty"`
	To   int `json:"to,omitempty"`
}

// GetIndicator returns metadata, full-series statistics and the series
// filtered to ?from= and ?to=.
func (h *Handlers) GetIndicator(w http.ResponseWriter, r *http.Request) {
	yr, ok := parseYearRange(w, r)
	if !ok {
		return
	}
	code := chi.URLParam(r, "code")
	view, ok := h.store.Get(code, yr)
	if !ok {
		writeNotFound(w, code)
		return
	}
	writeJSON(w, IndicatorResponse{IndicatorView: view, From: yr.From, To: yr.To})
}

// ExportResponse is the JSON export body.
type ExportResponse struct {
	*weo.Export
	GeneratedAt time.Time `json:"generated_at"`
}

// ExportIndicator writes the filtered series as CSV or JSON (?format=).
func (h *Handlers) ExportIndicator(w http.ResponseWriter, r *http.Request) {
	yr, ok := parseYearRange(w, r)
	if !ok {
		return
	}
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "json" {
		writeError(w, http.StatusBadRequest, "invalid_format", "format must be csv or json")
		return
	}

	code := chi.URLParam(r, "code")
	export, ok := h.store.Export(code, yr)
	if !ok {
		writeNotFound(w, code)
		return
	}
	now := h.clock.Now().UTC()
	filename := fmt.Sprintf("%s_%s.%s", strings.ToLower(code), now.Format("20060102"), format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if format == "json" {
		writeJSON(w, ExportResponse{Export: export, GeneratedAt: now})
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"code", "name", "units", "year", "value", "projection"})
	for _, p := range export.Points {
		_ = cw.Write([]string{
			export.Metadata.Code,
			export.Metadata.Name,
			export.Metadata.Units,
			strconv.Itoa(p.Year),
			strconv.FormatFloat(p.Value, 'f', -1, 64),
			strconv.FormatBool(p.Projection),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.log.Error("failed to write csv export", "code", code, "error", err)
	}
}

func writeNotFound(w http.ResponseWriter, code string) {
	writeError(w, http.StatusNotFound, "indicator_not_found", fmt.Sprintf("indicator %q not found", code))
}

// parseYearRange reads ?from= and ?to=. It writes a 400 and returns false on
// malformed input.
func parseYearRange(w http.ResponseWriter, r *http.Request) (weo.YearRange, bool) {
	var yr weo.YearRange
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"from", &yr.From},
		{"to", &yr.To},
	} {
		raw := strings.TrimSpace(r.URL.Query().Get(p.name))
		if raw == "" {
			continue
		}
		year, err := strconv.Atoi(raw)
		if err != nil || year < weo.MinYear || year > weo.MaxYear {
			writeError(w, http.StatusBadRequest, "invalid_year",
				fmt.Sprintf("%s must be a year between %d and %d", p.name, weo.MinYear, weo.MaxYear))
			return yr, false
		}
		*p.dst = year
	}
	return yr, true
}
