package reader

import (
	"fmt"
	"io"
	"strings"

	"github.com/DjordjeVuckovic/exam-portal/internal/domain"
	"gopkg.in/yaml.v3"
)

// AliasTable maps canonical record fields to the column spellings seen in uploaded sheets.
type AliasTable struct {
	Kind        string                         `yaml:"kind"`
	Version     string                         `yaml:"version"`
	Collections map[string]map[string][]string `yaml:"collections"`
}

func (t *AliasTable) Validate() error {
	if t.Kind != "AliasTable" {
		return fmt.Errorf("kind must be AliasTable, got %q", t.Kind)
	}
	if t.Version == "" {
		return fmt.Errorf("version is required")
	}
	if len(t.Collections) == 0 {
		return fmt.Errorf("at least one collection is required")
	}
	for name, fields := range t.Collections {
		if !domain.IsCollection(name) {
			return fmt.Errorf("unknown collection %q", name)
		}
		owner := make(map[string]string)
		for field := range fields {
			owner[normalizeHeader(field)] = field
		}
		for field, aliases := range fields {
			for i, a := range aliases {
				h := normalizeHeader(a)
				if h == "" {
					return fmt.Errorf("collections.%s.%s[%d] must not be empty", name, field, i)
				}
				if other, ok := owner[h]; ok && other != field {
					return fmt.Errorf("collections.%s: %q is claimed by both %s and %s", name, a, other, field)
				}
				owner[h] = field
			}
		}
	}
	return nil
}

// Resolver returns the header lookup for a collection.
func (t *AliasTable) Resolver(collection string) *FieldResolver {
	lookup := make(map[string]column)
	for field, aliases := range t.Collections[collection] {
		lookup[normalizeHeader(field)] = column{field: field}
		for i, a := range aliases {
			h := normalizeHeader(a)
			if _, taken := lookup[h]; taken {
				continue
			}
			lookup[h] = column{field: field, rank: i + 1}
		}
	}
	return &FieldResolver{lookup: lookup}
}

// column is the field a header maps to. Rank 0 is the canonical field name,
// rank n the n-th alias listed for it.
type column struct {
	field string
	rank  int
}

// FieldResolver renames row headers to canonical field names, ignoring case and spacing.
type FieldResolver struct {
	lookup map[string]column
}

// Resolve returns the row keyed by canonical field. Unknown columns are dropped.
// When several columns resolve to the same field, the non-empty value whose header
// ranks first wins: the canonical name, then the aliases in listed order.
func (r *FieldResolver) Resolve(row map[string]string) map[string]string {
	out := make(map[string]string, len(row))
	best := make(map[string]int, len(row))
	for header, value := range row {
		col, ok := r.lookup[normalizeHeader(header)]
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		rank, seen := best[col.field]
		switch {
		case !seen:
		case out[col.field] == "" && value != "":
		case value != "" && col.rank < rank:
		default:
			continue
		}
		out[col.field] = value
		best[col.field] = col.rank
	}
	return out
}

func normalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(h)), " ")
}

type AliasLoader struct {
	reader io.Reader
}

func NewAliasLoader(reader io.Reader) *AliasLoader {
	return &AliasLoader{
		reader: reader,
	}
}

func (al *AliasLoader) Load(validate bool) (*AliasTable, error) {
	decoder := yaml.NewDecoder(al.reader)
	var table AliasTable
	if err := decoder.Decode(&table); err != nil {
		return nil, err
	}
	if validate {
		if err := table.Validate(); err != nil {
			return nil, err
		}
	}
	return &table, nil
}

// DefaultAliasTable holds the column names used by the university's sheet templates.
func DefaultAliasTable() *AliasTable {
	return &AliasTable{
		Kind:    "AliasTable",
		Version: "v1",
		Collections: map[string]map[string][]string{
			domain.CollectionApplications: {
				"seatNo":      {"seat no", "seat no.", "seat number", "seat_no", "seatno", "roll no"},
				"studentName": {"student name", "name", "student", "name of student"},
				"collegeCode": {"college code", "college_code", "clg code"},
				"course":      {"course", "programme", "program"},
				"semester":    {"semester", "sem"},
				"subjects":    {"subjects", "subject", "papers", "paper"},
				"requestType": {"request type", "request", "type", "application type"},
				"paid":        {"paid", "fee paid", "payment status"},
				"receiptNo":   {"receipt no", "receipt no.", "receipt", "receipt number"},
			},
			domain.CollectionColleges: {
				"code":      {"college code", "code", "clg code"},
				"name":      {"college name", "name"},
				"address":   {"address", "college address"},
				"email":     {"email", "e-mail", "email id"},
				"principal": {"principal", "principal name"},
			},
			domain.CollectionPayments: {
				"id":          {"payment id", "id", "transaction id"},
				"collegeCode": {"college code", "clg code"},
				"amount":      {"amount", "amount paid", "fee amount"},
				"reference":   {"reference", "dd no", "cheque no", "utr"},
				"paidOn":      {"paid on", "date", "payment date"},
			},
		},
	}
}
