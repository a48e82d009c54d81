package domain

import (
	"strings"
	"time"
)

const (
	CollectionApplications = "applications"
	CollectionColleges     = "colleges"
	CollectionPayments     = "payments"
)

// Collections lists every collection the portal writes to.
var Collections = []string{CollectionApplications, CollectionColleges, CollectionPayments}

func IsCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}

type RequestType string

const (
	RequestRetotal   RequestType = "retotal"
	RequestPhotocopy RequestType = "photocopy"
	RequestBoth      RequestType = "both"
)

// ParseRequestType accepts the spellings used on the paper forms.
func ParseRequestType(s string) (RequestType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "retotal", "re-total", "retotaling", "re-totaling", "rt":
		return RequestRetotal, true
	case "photocopy", "photo copy", "xerox", "pc":
		return RequestPhotocopy, true
	case "both", "retotal+photocopy", "retotal & photocopy":
		return RequestBoth, true
	default:
		return "", false
	}
}

// Application is a student request for re-totaling and/or a photocopy of answer papers.
// Seat numbers are unique per examination session and identify the application.
type Application struct {
	SeatNo      string      `json:"seatNo" validate:"required"`
	StudentName string      `json:"studentName" validate:"required"`
	CollegeCode string      `json:"collegeCode" validate:"required"`
	Course      string      `json:"course,omitempty"`
	Semester    string      `json:"semester,omitempty"`
	Subjects    []string    `json:"subjects" validate:"min=1,dive,required"`
	RequestType RequestType `json:"requestType" validate:"oneof=retotal photocopy both"`
	Paid        bool        `json:"paid"`
	ReceiptNo   string      `json:"receiptNo,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func (a Application) Key() string {
	return a.SeatNo
}

func (a Application) Papers() int {
	return len(a.Subjects)
}
