package domain

import "time"

// Payment is a fee remittance made by a college. Amount is in paise.
type Payment struct {
	ID          string    `json:"id" validate:"required"`
	CollegeCode string    `json:"collegeCode" validate:"required"`
	Amount      int64     `json:"amount" validate:"gt=0"`
	Reference   string    `json:"reference,omitempty"`
	PaidOn      time.Time `json:"paidOn"`
}

func (p Payment) Key() string {
	return p.ID
}
