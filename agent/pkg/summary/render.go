package summary

import (
	"fmt"
	"strings"
)

// NoInformation is returned when a question selects no known indicator.
const NoInformation = `📊 **Información no encontrada**

Para obtener análisis específicos, puedes preguntar sobre:
- **PIB y crecimiento económico** (incluye análisis pre/post dolarización)
- **Inflación y estabilidad de precios**
- **Mercado laboral y desempleo**
- **Finanzas públicas y deuda**
- **Sector externo y balanza comercial**

*Fuente: FMI World Economic Outlook*`

const sourceFooter = "*Fuente: FMI World Economic Outlook*"

// RenderContext writes the digests as a structured block for the answer
// generator.
func (s *Summarizer) RenderContext(country string, digests []IndicatorDigest) string {
	var sb strings.Builder
	if country == "" {
		country = "el país"
	}
	fmt.Fprintf(&sb, "DATOS ECONÓMICOS DE %s (FMI World Economic Outlook):\n\n", strings.ToUpper(country))

	for _, d := range digests {
		fmt.Fprintf(&sb, "=== INDICADOR: %s (%s) ===\n", d.Info.Name, d.Info.Code)
		if d.Info.Description != "" {
			fmt.Fprintf(&sb, "Descripción: %s\n", truncate(d.Info.Description, s.cfg.DescriptionLimit))
		}
		fmt.Fprintf(&sb, "Unidades: %s", d.Info.Units)
		if d.Info.Scale != "" {
			fmt.Fprintf(&sb, " (escala: %s)", d.Info.Scale)
		}
		sb.WriteString("\n")
		if d.Info.EstimatesStartAfter != 0 {
			fmt.Fprintf(&sb, "Datos observados hasta %d; los años posteriores son proyecciones.\n", d.Info.EstimatesStartAfter)
		}
		fmt.Fprintf(&sb, "\nPERÍODO COMPLETO: %d-%d (%d observaciones)\n", d.Stats.FirstYear, d.Stats.LastYear, d.Stats.Count)

		sb.WriteString("\nRESUMEN POR DÉCADAS:\n")
		if len(d.Decades) == 0 {
			sb.WriteString("- sin décadas con datos suficientes\n")
		}
		for _, dec := range d.Decades {
			fmt.Fprintf(&sb, "- %ds: %.2f promedio (%d obs.)\n", dec.Decade, dec.Mean, dec.Count)
		}

		sb.WriteString("\nPERÍODOS HISTÓRICOS CLAVE:\n")
		if len(d.Eras) == 0 {
			sb.WriteString("- sin observaciones en los períodos definidos\n")
		}
		for _, e := range d.Eras {
			fmt.Fprintf(&sb, "- %s: promedio %.2f\n", e.Era.Label(), e.Mean)
		}

		fmt.Fprintf(&sb, "\nDATOS RECIENTES (últimos %d años): %s\n", len(d.Recent), formatRecent(d.Recent))

		sb.WriteString("\nESTADÍSTICAS GENERALES:\n")
		fmt.Fprintf(&sb, "- Valor actual: %.2f (%d)\n", d.Stats.Latest, d.Stats.LastYear)
		fmt.Fprintf(&sb, "- Promedio histórico: %.2f\n", d.Stats.Mean)
		fmt.Fprintf(&sb, "- Desviación estándar: %.2f\n", d.Stats.StdDev)
		fmt.Fprintf(&sb, "- Máximo histórico: %.2f\n", d.Stats.Max)
		fmt.Fprintf(&sb, "- Mínimo histórico: %.2f\n", d.Stats.Min)
		sb.WriteString("\n========================\n\n")
	}
	return sb.String()
}

// Narrate writes a self-contained answer from the digests alone.
func (s *Summarizer) Narrate(digests []IndicatorDigest) string {
	if len(digests) == 0 {
		return NoInformation
	}

	sections := make([]string, 0, len(digests))
	for _, d := range digests {
		sections = append(sections, s.narrateOne(d))
	}
	return strings.Join(sections, "\n\n---\n\n") + "\n\n" + sourceFooter
}

func (s *Summarizer) narrateOne(d IndicatorDigest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 **%s** (%s)\n\n", d.Info.Name, d.Info.Code)

	latest := fmt.Sprintf("%.2f", d.Stats.Latest)
	if d.Info.Units != "" {
		latest += " " + d.Info.Units
	}
	fmt.Fprintf(&sb, "**Valor más reciente (%d):** %s", d.Stats.LastYear, latest)
	if d.Info.IsProjection(d.Stats.LastYear) {
		fmt.Fprintf(&sb, " (proyección; datos observados hasta %d)", d.Info.EstimatesStartAfter)
	}
	sb.WriteString("\n\n")

	switch {
	case d.Stats.Count == 1:
		sb.WriteString("Solo hay una observación disponible para este indicador.\n\n")
	case d.Stats.Latest > d.Stats.Mean:
		fmt.Fprintf(&sb, "El valor más reciente está por encima del promedio histórico de %.2f.\n\n", d.Stats.Mean)
	case d.Stats.Latest < d.Stats.Mean:
		fmt.Fprintf(&sb, "El valor más reciente está por debajo del promedio histórico de %.2f.\n\n", d.Stats.Mean)
	default:
		fmt.Fprintf(&sb, "El valor más reciente coincide con el promedio histórico de %.2f.\n\n", d.Stats.Mean)
	}

	if len(d.Eras) > 0 {
		sb.WriteString("**Períodos clave:**\n")
		for _, e := range d.Eras {
			fmt.Fprintf(&sb, "- **%s:** %.2f promedio\n", e.Era.Label(), e.Mean)
		}
		sb.WriteString("\n")
	}

	if len(d.Decades) > 0 {
		parts := make([]string, 0, len(d.Decades))
		for _, dec := range d.Decades {
			parts = append(parts, fmt.Sprintf("%ds: %.2f", dec.Decade, dec.Mean))
		}
		fmt.Fprintf(&sb, "**Promedios por década:** %s\n\n", strings.Join(parts, " · "))
	}

	if len(d.Recent) > 0 {
		fmt.Fprintf(&sb, "**Últimos %d años:** %s\n\n", len(d.Recent), formatRecent(d.Recent))
	}

	sb.WriteString("**Estadísticas históricas:**\n")
	fmt.Fprintf(&sb, "- Período completo: %d-%d (%d años con datos)\n", d.Stats.FirstYear, d.Stats.LastYear, d.Stats.Count)
	fmt.Fprintf(&sb, "- Promedio histórico: %.2f\n", d.Stats.Mean)
	fmt.Fprintf(&sb, "- Máximo: %.2f | Mínimo: %.2f", d.Stats.Max, d.Stats.Min)

	if d.Info.Description != "" {
		fmt.Fprintf(&sb, "\n\n**Definición:** %s", truncate(d.Info.Description, 200))
	}
	return sb.String()
}

func formatRecent(obs []Observation) string {
	if len(obs) == 0 {
		return "sin datos"
	}
	parts := make([]string, 0, len(obs))
	for _, o := range obs {
		p := fmt.Sprintf("%d: %.2f", o.Year, o.Value)
		if o.Projection {
			p += " (proy.)"
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, ", ")
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return strings.TrimSpace(string(r[:limit])) + "..."
}
