// Package ingest imports client and payment rows exported from the
// spreadsheet era of the business. Rows arrive as loose string maps with
// inconsistent column names, so every row passes through a normalization
// step before anything is parsed.
package ingest

import "strings"

// Canonical column names after normalization.
const (
	colName      = "nombre"
	colEmail     = "email"
	colPhone     = "whatsapp"
	colPlanTier  = "modalidad"
	colBirthDate = "fecha_de_nacimiento"
	colSchedule  = "dias"
	colStartDate = "fecha_de_inicio"
	colLastAntro = "ultima_antro"
	colPlanURL   = "plan"
	colClientRef = "alumno_id"
	colAmount    = "monto"
	colPayDate   = "fecha_de_pago"
	colDueDate   = "fecha_de_vencimiento"
)

// columnAliases maps every column name seen across historical exports to
// its canonical form. Keys are compared lowercased and trimmed.
var columnAliases = map[string]string{
	"name":          colName,
	"alumno":        colName,
	"correo":        colEmail,
	"mail":          colEmail,
	"telefono":      colPhone,
	"phone":         colPhone,
	"plan_tier":     colPlanTier,
	"nacimiento":    colBirthDate,
	"inicio":        colStartDate,
	"antro":         colLastAntro,
	"link_plan":     colPlanURL,
	"id_estudiante": colClientRef,
	"student_id":    colClientRef,
	"studentid":     colClientRef,
	"id_alumno":     colClientRef,
	"amount":        colAmount,
	"importe":       colAmount,
	"fecha_pago":    colPayDate,
	"payment_date":  colPayDate,
	"pago":          colPayDate,
	"vencimiento":   colDueDate,
	"fecha_venc":    colDueDate,
	"due_date":      colDueDate,
}

// normalizeRow returns a copy of row with canonical lowercase keys and
// trimmed values. Unknown columns are kept under their lowercased name so
// the caller can ignore them without losing them during debugging.
func normalizeRow(row map[string]string) map[string]string {
	out := make(map[string]string, len(row))
	for k, v := range row {
		key := strings.ToLower(strings.TrimSpace(k))
		if canonical, ok := columnAliases[key]; ok {
			key = canonical
		}
		out[key] = strings.TrimSpace(v)
	}
	return out
}
