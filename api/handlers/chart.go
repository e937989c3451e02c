package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// chartEvent is a year annotated on every chart when the series covers it.
type chartEvent struct {
	Name string
	Year int
}

var chartEvents = []chartEvent{
	{Name: "Dolarización", Year: 2000},
	{Name: "COVID-19", Year: 2020},
}

// ChartIndicator renders the filtered series as a standalone HTML line chart.
// Observed and projected years are drawn as separate series.
func (h *Handlers) ChartIndicator(w http.ResponseWriter, r *http.Request) {
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

	years := view.Series.Years()
	if len(years) == 0 {
		writeError(w, http.StatusNotFound, "no_data", fmt.Sprintf("indicator %q has no observations in the requested range", code))
		return
	}

	x := make([]string, 0, len(years))
	observed := make([]opts.LineData, 0, len(years))
	projected := make([]opts.LineData, 0, len(years))
	covered := make(map[int]bool, len(years))
	for i, y := range years {
		x = append(x, strconv.Itoa(y))
		covered[y] = true
		v := view.Series[y]
		if view.Info.IsProjection(y) {
			observed = append(observed, opts.LineData{Value: "-"})
			// Repeat the last observed point so the two lines join.
			if i > 0 && !view.Info.IsProjection(years[i-1]) {
				projected[i-1] = opts.LineData{Value: view.Series[years[i-1]]}
			}
			projected = append(projected, opts.LineData{Value: v})
		} else {
			observed = append(observed, opts.LineData{Value: v})
			projected = append(projected, opts.LineData{Value: "-"})
		}
	}

	var marks []opts.MarkLineNameXAxisItem
	for _, ev := range chartEvents {
		if covered[ev.Year] {
			marks = append(marks, opts.MarkLineNameXAxisItem{Name: ev.Name, XAxis: strconv.Itoa(ev.Year)})
		}
	}

	subtitle := view.Info.Units
	if view.Info.Country != "" {
		subtitle = view.Info.Country + " · " + subtitle
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: view.Info.Code, Width: "100%", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s (%s)", view.Info.Name, view.Info.Code), Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Año"}),
	)
	line.SetXAxis(x).
		AddSeries("Observado", observed, charts.WithMarkLineNameXAxisItemOpts(marks...)).
		AddSeries("Proyección", projected, charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}))

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		h.log.Error("failed to render chart", "code", code, "error", err)
		writeError(w, http.StatusInternalServerError, "render_failed", "failed to render chart")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
