package weo

// Point is one observation.
type Point struct {
	Year       int     `json:"year"`
	Value      float64 `json:"value"`
	Projection bool    `json:"projection,omitempty"`
}

// ExportMetadata describes an exported series.
type ExportMetadata struct {
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Units       string    `json:"units"`
	Scale       string    `json:"scale"`
	Description string    `json:"description"`
	Country     string    `json:"country,omitempty"`
	Range       YearRange `json:"-"`
}

// Export is a flat, year-ordered series plus metadata. Serialization belongs
// to the caller.
type Export struct {
	Metadata ExportMetadata `json:"metadata"`
	Points   []Point        `json:"points"`
}

// Export returns the indicator's observations within r in ascending year order.
func (s *Store) Export(code string, r YearRange) (*Export, bool) {
	view, ok := s.Get(code, r)
	if !ok {
		return nil, false
	}
	years := view.Series.Years()
	points := make([]Point, 0, len(years))
	for _, y := range years {
		points = append(points, Point{
			Year:       y,
			Value:      view.Series[y],
			Projection: view.Info.IsProjection(y),
		})
	}
	return &Export{
		Metadata: ExportMetadata{
			Code:        view.Info.Code,
			Name:        view.Info.Name,
			Units:       view.Info.Units,
			Scale:       view.Info.Scale,
			Description: view.Info.Description,
			Country:     view.Info.Country,
			Range:       r,
		},
		Points: points,
	}, true
}
