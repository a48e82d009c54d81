package fees

import (
	"fmt"
	"os"

	"github.com/DjordjeVuckovic/exam-portal/internal/domain"
)

// Default per-paper fees in paise.
const (
	DefaultRetotalPerPaper   int64 = 200_00
	DefaultPhotocopyPerPaper int64 = 500_00
)

// Schedule holds per-paper fees in paise.
type Schedule struct {
	RetotalPerPaper   int64
	PhotocopyPerPaper int64
}

func DefaultSchedule() Schedule {
	return Schedule{
		RetotalPerPaper:   DefaultRetotalPerPaper,
		PhotocopyPerPaper: DefaultPhotocopyPerPaper,
	}
}

// Due is the fee owed for an application. A request for both services pays both fees.
func (s Schedule) Due(app domain.Application) int64 {
	papers := int64(app.Papers())
	switch app.RequestType {
	case domain.RequestRetotal:
		return papers * s.RetotalPerPaper
	case domain.RequestPhotocopy:
		return papers * s.PhotocopyPerPaper
	case domain.RequestBoth:
		return papers * (s.RetotalPerPaper + s.PhotocopyPerPaper)
	default:
		return 0
	}
}

// LoadScheduleEnv reads FEE_RETOTAL_PER_PAPER and FEE_PHOTOCOPY_PER_PAPER as rupee amounts.
func LoadScheduleEnv() (Schedule, error) {
	s := DefaultSchedule()

	if v := os.Getenv("FEE_RETOTAL_PER_PAPER"); v != "" {
		fee, err := domain.ParseAmount(v)
		if err != nil {
			return Schedule{}, fmt.Errorf("invalid FEE_RETOTAL_PER_PAPER: %w", err)
		}
		s.RetotalPerPaper = fee
	}
	if v := os.Getenv("FEE_PHOTOCOPY_PER_PAPER"); v != "" {
		fee, err := domain.ParseAmount(v)
		if err != nil {
			return Schedule{}, fmt.Errorf("invalid FEE_PHOTOCOPY_PER_PAPER: %w", err)
		}
		s.PhotocopyPerPaper = fee
	}

	if s.RetotalPerPaper < 0 || s.PhotocopyPerPaper < 0 {
		return Schedule{}, fmt.Errorf("fees must not be negative")
	}
	return s, nil
}
