package csvmap

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Value is one normalized cell. Kind says which of the typed fields is
// meaningful; Raw always carries the trimmed original text.
type Value struct {
	Kind   Transform
	Raw    string
	Amount decimal.Decimal
	Date   *time.Time
}

// MappedRow is a canonical-field-name to normalized-value map for one CSV row.
type MappedRow map[string]Value

// String returns the raw text of a field, empty when absent.
func (r MappedRow) String(field string) string {
	return r[field].Raw
}

// Amount returns the parsed amount of a field, zero when absent.
func (r MappedRow) Amount(field string) decimal.Decimal {
	v, ok := r[field]
	if !ok || v.Kind != TransformAmount {
		return decimal.Zero
	}
	return v.Amount
}

// Date returns the parsed date of a field, nil when absent or unparseable.
func (r MappedRow) Date(field string) *time.Time {
	return r[field].Date
}

// Mapper resolves a header row against a mapping table once, then converts
// data rows to canonical records. Column resolution happens a single time
// per file, not per row.
type Mapper struct {
	cfg     Config
	columns map[string]string // canonical field -> verbatim CSV header
}

// NewMapper resolves each configured field against the file's headers.
// Missing optional columns are simply absent from later rows; missing
// required columns surface per row through MissingRequired.
func NewMapper(cfg Config, headers []string) *Mapper {
	columns := make(map[string]string, len(cfg.Fields))
	for _, f := range cfg.Fields {
		if h, ok := FindColumn(headers, append([]string{f.Name}, f.Aliases...)); ok {
			columns[f.Name] = h
		}
	}
	return &Mapper{cfg: cfg, columns: columns}
}

// Columns reports the resolved canonical-field to CSV-header mapping.
func (m *Mapper) Columns() map[string]string {
	out := make(map[string]string, len(m.columns))
	for k, v := range m.columns {
		out[k] = v
	}
	return out
}

// MapRow converts one raw CSV row into a MappedRow. Cells are trimmed and
// transformed per the field's declared kind. Unresolvable amounts become
// zero and unresolvable dates become nil; mapping itself never fails.
func (m *Mapper) MapRow(row map[string]string) MappedRow {
	out := make(MappedRow, len(m.columns))
	for _, f := range m.cfg.Fields {
		header, ok := m.columns[f.Name]
		if !ok {
			continue
		}
		raw := strings.TrimSpace(row[header])
		v := Value{Kind: f.Transform, Raw: raw}
		switch f.Transform {
		case TransformAmount:
			v.Amount = ParseAmount(raw)
		case TransformDate:
			v.Date = ParseDate(raw)
		}
		out[f.Name] = v
	}
	return out
}

// Unmapped collects the cells of a raw row whose columns no canonical field
// consumed. Keys are normalized headers, values trimmed cells; empty cells
// are dropped and a fully-consumed row yields nil. This is what lands in a
// record's metadata bag.
func (m *Mapper) Unmapped(row map[string]string) map[string]string {
	consumed := make(map[string]struct{}, len(m.columns))
	for _, h := range m.columns {
		consumed[h] = struct{}{}
	}

	var out map[string]string
	for header, cell := range row {
		if _, ok := consumed[header]; ok {
			continue
		}
		value := strings.TrimSpace(cell)
		if value == "" {
			continue
		}
		if out == nil {
			out = map[string]string{}
		}
		out[normalizeHeader(header)] = value
	}
	return out
}

// MissingRequired lists the required fields a mapped row does not satisfy.
// A required amount field counts as present even when zero; a required date
// field must have parsed. An empty result means the row is acceptable.
func (m *Mapper) MissingRequired(row MappedRow) []string {
	var missing []string
	for _, f := range m.cfg.Fields {
		if !f.Required {
			continue
		}
		v, ok := row[f.Name]
		if !ok {
			missing = append(missing, f.Name)
			continue
		}
		switch f.Transform {
		case TransformDate:
			if v.Date == nil {
				missing = append(missing, f.Name)
			}
		case TransformAmount:
			// zero is a legitimate amount
		default:
			if v.Raw == "" {
				missing = append(missing, f.Name)
			}
		}
	}
	return missing
}

// Entity returns the row's entity name per the table's EntityField.
func (m *Mapper) Entity(row MappedRow) string {
	return row.String(m.cfg.EntityField)
}

// Period derives the row's YYYY-MM period from the table's DateField,
// falling back to the supplied period when the date is missing.
func (m *Mapper) Period(row MappedRow, fallback string) string {
	return PeriodFromDate(row.Date(m.cfg.DateField), fallback)
}

// RowError describes a single skipped row.
type RowError struct {
	Line    int
	Missing []string
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: missing required fields: %s", e.Line, strings.Join(e.Missing, ", "))
}
