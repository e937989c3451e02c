package workflow

import (
	"fmt"
	"strings"
)

const systemPrompt = `Eres un economista senior especializado en %[1]s con acceso a la serie histórica completa del FMI World Economic Outlook (%[2]s).

INSTRUCCIONES:
1. Responde únicamente con base en los datos del contexto; no inventes cifras.
2. Analiza toda la serie disponible e identifica los períodos económicos clave.
3. Proporciona datos específicos con años y cifras exactas.
4. Compara períodos históricos cuando sea relevante.
5. Explica causas económicas y contexto institucional.
6. Distingue los valores observados de las proyecciones.
7. Usa terminología económica apropiada pero accesible.
8. Incluye implicaciones de política económica cuando corresponda.

FORMATO DE RESPUESTA:
📊 **Análisis Histórico**
- Resumen ejecutivo con datos clave
- Tendencias por períodos
- Comparaciones temporales
- Contexto económico e interpretación
- Implicaciones y perspectivas`

// BuildSystemPrompt returns the fixed answering instructions for a country
// and year coverage such as "1980-2030".
func BuildSystemPrompt(country, coverage string) string {
	if country == "" {
		country = "el país"
	}
	return fmt.Sprintf(systemPrompt, country, coverage)
}

// BuildUserPrompt combines the rendered context with the question.
func BuildUserPrompt(context, query string) string {
	var sb strings.Builder
	sb.WriteString("CONTEXTO HISTÓRICO DISPONIBLE:\n")
	sb.WriteString(context)
	sb.WriteString("\nPREGUNTA DEL USUARIO: ")
	sb.WriteString(strings.TrimSpace(query))
	sb.WriteString("\n\nRESPUESTA:")
	return sb.String()
}
