package model

import "strings"

type Field string

const (
	FieldName         Field = "name"
	FieldAddress      Field = "address"
	FieldLeaders      Field = "leaders"
	FieldPhone        Field = "phone"
	FieldDayOfWeek    Field = "day_of_week"
	FieldStartTime    Field = "start_time"
	FieldAudienceType Field = "audience_type"
	FieldModality     Field = "modality"
	FieldNeighborhood Field = "neighborhood"
)

// fieldAliases lists the accepted sheet headers per field, English first, then the
// headers used by the LifeGroup spreadsheets.
var fieldAliases = map[Field][]string{
	FieldName:         {"Name", "Nome do Life", "Nome"},
	FieldAddress:      {"Address", "Endereço", "Endereco"},
	FieldLeaders:      {"Leaders", "Líderes", "Lideres"},
	FieldPhone:        {"Phone", "Telefone", "WhatsApp"},
	FieldDayOfWeek:    {"DayOfWeek", "Dia da Semana"},
	FieldStartTime:    {"StartTime", "Horário de Início", "Horario de Inicio", "Horário"},
	FieldAudienceType: {"AudienceType", "Tipo de Life", "Tipo"},
	FieldModality:     {"Modality", "Modalidade"},
	FieldNeighborhood: {"Neighborhood", "Bairro"},
}

// Schema maps fields to the column index they were found at in a header row.
type Schema map[Field]int

// ResolveSchema trims every header cell and matches it against the known aliases.
// Matching is exact after trimming, with a case-insensitive second pass.
func ResolveSchema(header []string) Schema {
	trimmed := make([]string, len(header))
	for i, h := range header {
		trimmed[i] = strings.TrimSpace(h)
	}

	schema := Schema{}
	for field, aliases := range fieldAliases {
		if idx := indexOf(trimmed, aliases, false); idx >= 0 {
			schema[field] = idx
			continue
		}
		if idx := indexOf(trimmed, aliases, true); idx >= 0 {
			schema[field] = idx
		}
	}
	return schema
}

func indexOf(header, aliases []string, fold bool) int {
	for _, alias := range aliases {
		for i, h := range header {
			if h == alias || (fold && strings.EqualFold(h, alias)) {
				return i
			}
		}
	}
	return -1
}

func (s Schema) Has(f Field) bool {
	_, ok := s[f]
	return ok
}

// Value returns the trimmed cell for field f, or "" when the column or cell is missing.
func (s Schema) Value(row []string, f Field) string {
	idx, ok := s[f]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
