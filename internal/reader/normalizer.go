package reader

import (
	"fmt"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/exam-portal/internal/domain"
	"github.com/google/uuid"
)

// Normalizer turns a raw sheet row into a validated record.
type Normalizer[T any] interface {
	Normalize(row map[string]string) (T, error)
}

type NormalizerFunc[T any] func(row map[string]string) (T, error)

func (f NormalizerFunc[T]) Normalize(row map[string]string) (T, error) {
	return f(row)
}

// RowError describes why a row could not be normalized.
type RowError struct {
	Field  string
	Reason string
}

func (e *RowError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2/1/2006",
	"02.01.2006",
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func required(row map[string]string, fields ...string) error {
	for _, f := range fields {
		if row[f] == "" {
			return &RowError{Field: f, Reason: "is required"}
		}
	}
	return nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "paid":
		return true
	}
	return false
}

func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func NewApplicationNormalizer(aliases *AliasTable, now func() time.Time) Normalizer[domain.Application] {
	resolver := aliases.Resolver(domain.CollectionApplications)
	return NormalizerFunc[domain.Application](func(raw map[string]string) (domain.Application, error) {
		row := resolver.Resolve(raw)
		if err := required(row, "seatNo", "studentName", "collegeCode", "subjects", "requestType"); err != nil {
			return domain.Application{}, err
		}

		kind, ok := domain.ParseRequestType(row["requestType"])
		if !ok {
			return domain.Application{}, &RowError{Field: "requestType", Reason: fmt.Sprintf("unknown request type %q", row["requestType"])}
		}

		app := domain.Application{
			SeatNo:      row["seatNo"],
			StudentName: row["studentName"],
			CollegeCode: strings.ToUpper(row["collegeCode"]),
			Course:      row["course"],
			Semester:    row["semester"],
			Subjects:    splitList(row["subjects"]),
			RequestType: kind,
			Paid:        parseBool(row["paid"]),
			ReceiptNo:   row["receiptNo"],
			CreatedAt:   now().UTC(),
		}
		if err := domain.Validate(app); err != nil {
			return domain.Application{}, &RowError{Reason: err.Error()}
		}
		return app, nil
	})
}

func NewCollegeNormalizer(aliases *AliasTable) Normalizer[domain.College] {
	resolver := aliases.Resolver(domain.CollectionColleges)
	return NormalizerFunc[domain.College](func(raw map[string]string) (domain.College, error) {
		row := resolver.Resolve(raw)
		if err := required(row, "code", "name"); err != nil {
			return domain.College{}, err
		}

		college := domain.College{
			Code:      strings.ToUpper(row["code"]),
			Name:      row["name"],
			Address:   row["address"],
			Email:     strings.ToLower(row["email"]),
			Principal: row["principal"],
		}
		if err := domain.Validate(college); err != nil {
			return domain.College{}, &RowError{Reason: err.Error()}
		}
		return college, nil
	})
}

// NewPaymentNormalizer assigns a random id to rows that carry none.
func NewPaymentNormalizer(aliases *AliasTable) Normalizer[domain.Payment] {
	resolver := aliases.Resolver(domain.CollectionPayments)
	return NormalizerFunc[domain.Payment](func(raw map[string]string) (domain.Payment, error) {
		row := resolver.Resolve(raw)
		if err := required(row, "collegeCode", "amount"); err != nil {
			return domain.Payment{}, err
		}

		amount, err := domain.ParseAmount(row["amount"])
		if err != nil {
			return domain.Payment{}, &RowError{Field: "amount", Reason: err.Error()}
		}

		payment := domain.Payment{
			ID:          row["id"],
			CollegeCode: strings.ToUpper(row["collegeCode"]),
			Amount:      amount,
			Reference:   row["reference"],
		}
		if payment.ID == "" {
			payment.ID = uuid.NewString()
		}
		if row["paidOn"] != "" {
			paidOn, err := parseDate(row["paidOn"])
			if err != nil {
				return domain.Payment{}, &RowError{Field: "paidOn", Reason: err.Error()}
			}
			payment.PaidOn = paidOn
		}

		if err := domain.Validate(payment); err != nil {
			return domain.Payment{}, &RowError{Reason: err.Error()}
		}
		return payment, nil
	})
}
