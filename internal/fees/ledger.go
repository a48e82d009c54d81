package fees

import (
	"sort"

	"github.com/DjordjeVuckovic/exam-portal/internal/domain"
)

type Status string

const (
	StatusSettled     Status = "settled"
	StatusDiscrepancy Status = "discrepancy"
	StatusCredit      Status = "credit"
)

// Statement is the fee account of one college. Balance is Due minus Paid.
type Statement struct {
	College      domain.College       `json:"college"`
	Applications []domain.Application `json:"applications"`
	Payments     []domain.Payment     `json:"payments"`
	Due          int64                `json:"due"`
	Paid         int64                `json:"paid"`
	Balance      int64                `json:"balance"`
}

func (s Statement) Status() Status {
	switch {
	case s.Balance > 0:
		return StatusDiscrepancy
	case s.Balance < 0:
		return StatusCredit
	default:
		return StatusSettled
	}
}

// Papers is the number of answer papers across the statement's applications.
func (s Statement) Papers() int {
	n := 0
	for _, a := range s.Applications {
		n += a.Papers()
	}
	return n
}

// Ledger groups applications and payments by college and totals them.
// Colleges without records still get an empty statement; records of unknown colleges
// get a statement carrying only the code.
func Ledger(schedule Schedule, apps []domain.Application, payments []domain.Payment, colleges []domain.College) []Statement {
	byCode := make(map[string]*Statement, len(colleges))
	get := func(code string) *Statement {
		st, ok := byCode[code]
		if !ok {
			st = &Statement{College: domain.College{Code: code}}
			byCode[code] = st
		}
		return st
	}

	for _, c := range colleges {
		get(c.Code).College = c
	}
	for _, a := range apps {
		st := get(a.CollegeCode)
		st.Applications = append(st.Applications, a)
		st.Due += schedule.Due(a)
	}
	for _, p := range payments {
		st := get(p.CollegeCode)
		st.Payments = append(st.Payments, p)
		st.Paid += p.Amount
	}

	out := make([]Statement, 0, len(byCode))
	for _, st := range byCode {
		st.Balance = st.Due - st.Paid
		sort.Slice(st.Applications, func(i, j int) bool { return st.Applications[i].SeatNo < st.Applications[j].SeatNo })
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].College.Code < out[j].College.Code })
	return out
}
