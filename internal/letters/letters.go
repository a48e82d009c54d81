package letters

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/exam-portal/internal/apperr"
	"github.com/DjordjeVuckovic/exam-portal/internal/domain"
	"github.com/DjordjeVuckovic/exam-portal/internal/fees"
)

//go:embed templates/*.html
var templateFS embed.FS

type Kind string

const (
	KindCover       Kind = "cover"
	KindDiscrepancy Kind = "discrepancy"
	KindCredit      Kind = "credit"
)

var Kinds = []Kind{KindCover, KindDiscrepancy, KindCredit}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", apperr.NewValidation(fmt.Sprintf("unknown letter kind %q", s))
}

// Letter is a rendered HTML letter.
type Letter struct {
	Kind    Kind
	Subject string
	HTML    []byte
}

type data struct {
	Office    string
	Signatory string
	Reference string
	Date      time.Time
	Statement fees.Statement
}

// Renderer renders letters addressed to colleges.
type Renderer struct {
	templates map[Kind]*template.Template
	office    string
	signatory string
	now       func() time.Time
}

type Option func(*Renderer)

func WithOffice(office string) Option {
	return func(r *Renderer) {
		r.office = office
	}
}

func WithSignatory(signatory string) Option {
	return func(r *Renderer) {
		r.signatory = signatory
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

func NewRenderer(schedule fees.Schedule, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[Kind]*template.Template, len(Kinds)),
		office:    "Office of the Controller of Examinations",
		signatory: "Controller of Examinations",
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	funcs := template.FuncMap{
		"money": domain.FormatAmount,
		"due":   schedule.Due,
		"join":  strings.Join,
		"neg":   func(v int64) int64 { return -v },
		"date":  func(t time.Time) string { return t.Format("02 Jan 2006") },
	}
	for _, k := range Kinds {
		tmpl, err := template.New(string(k)).Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+string(k)+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s letter: %w", k, err)
		}
		r.templates[k] = tmpl
	}
	return r, nil
}

// Render writes the letter of the given kind for a statement. Discrepancy notices need a
// positive balance and credit notes a negative one.
func (r *Renderer) Render(kind Kind, st fees.Statement) (Letter, error) {
	tmpl, ok := r.templates[kind]
	if !ok {
		return Letter{}, apperr.NewValidation(fmt.Sprintf("unknown letter kind %q", kind))
	}
	switch {
	case kind == KindDiscrepancy && st.Status() != fees.StatusDiscrepancy:
		return Letter{}, apperr.NewValidation(fmt.Sprintf("college %s has no outstanding balance", st.College.Code))
	case kind == KindCredit && st.Status() != fees.StatusCredit:
		return Letter{}, apperr.NewValidation(fmt.Sprintf("college %s has no credit", st.College.Code))
	}

	now := r.now()
	d := data{
		Office:    r.office,
		Signatory: r.signatory,
		Reference: fmt.Sprintf("EXAM/%s/%s/%s", strings.ToUpper(string(kind)), st.College.Code, now.Format("20060102")),
		Date:      now,
		Statement: st,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", d); err != nil {
		return Letter{}, fmt.Errorf("failed to render %s letter: %w", kind, err)
	}

	var subject bytes.Buffer
	if err := tmpl.ExecuteTemplate(&subject, "title", d); err != nil {
		return Letter{}, fmt.Errorf("failed to render %s subject: %w", kind, err)
	}

	return Letter{Kind: kind, Subject: subject.String(), HTML: buf.Bytes()}, nil
}
