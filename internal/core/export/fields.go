// Package export maps a quote onto the fields consumed by the Word/PDF
// document templates. Rendering itself belongs to the document collaborator.
package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cotizador/quoting-system/internal/core/domain"
)

const dateLayout = "02/01/2006"

// Field is a labelled value in document order.
type Field struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Document is the template input for one quote.
type Document struct {
	Fields       []Field           `json:"fields"`
	Placeholders map[string]string `json:"placeholders"`
	Staffing     []StaffingRow     `json:"staffing"`
	Technical    []Field           `json:"technical"`
}

// StaffingRow is a flattened staffing line.
type StaffingRow struct {
	Role      string `json:"role"`
	Level     string `json:"level"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
}

// Fields builds the document input for q.
func Fields(q *domain.Quote) Document {
	fields := []Field{
		{Key: "client_name", Label: "Cliente", Value: q.ClientName},
		{Key: "project_type", Label: "Tipo de proyecto", Value: string(q.ProjectType)},
		{Key: "service_type", Label: "Tipo de servicio", Value: q.ServiceType},
		{Key: "estimated_cost", Label: "Costo estimado", Value: FormatMoney(q.EstimatedCost)},
		{Key: "status", Label: "Estado", Value: string(q.Status)},
		{Key: "created_at", Label: "Fecha", Value: q.CreatedAt.Format(dateLayout)},
		{Key: "quote_id", Label: "Referencia", Value: q.ID},
	}

	placeholders := make(map[string]string, len(fields)+1)
	for _, f := range fields {
		placeholders["{{"+f.Key+"}}"] = f.Value
	}
	placeholders["{{diagram}}"] = q.DiagramDefinition

	rows := make([]StaffingRow, len(q.StaffingRequirements))
	for i, l := range q.StaffingRequirements {
		rows[i] = StaffingRow{
			Role:      l.Role,
			Level:     string(l.Level),
			Quantity:  l.Quantity,
			UnitPrice: FormatMoney(l.UnitPrice),
			Subtotal:  FormatMoney(l.UnitPrice * float64(l.Quantity)),
		}
	}

	return Document{
		Fields:       fields,
		Placeholders: placeholders,
		Staffing:     rows,
		Technical:    technicalFields(q.TechnicalParameters),
	}
}

// technicalFields flattens a JSON object one level deep, sorted by key.
// Anything that is not an object is exposed as a single "parameters" field.
func technicalFields(raw json.RawMessage) []Field {
	if len(raw) == 0 {
		return []Field{}
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return []Field{{Key: "parameters", Label: "parameters", Value: string(raw)}}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, Field{Key: k, Label: k, Value: stringify(obj[k])})
	}
	return out
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// FormatMoney renders v with two decimals and comma thousands separators,
// e.g. 1234567.5 -> "$1,234,567.50".
func FormatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + "." + frac
}
