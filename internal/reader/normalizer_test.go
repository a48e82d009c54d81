package reader

import (
	"testing"
	"time"

	"github.com/DjordjeVuckovic/exam-portal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC) }

func TestApplicationNormalizer(t *testing.T) {
	n := NewApplicationNormalizer(DefaultAliasTable(), fixedNow)

	t.Run("maps aliased columns", func(t *testing.T) {
		app, err := n.Normalize(map[string]string{
			"Seat No.":     "S-1042",
			"Student Name": "Asha Patil",
			"College Code": "c01",
			"Sem":          "IV",
			"Papers":       "Maths; Physics, , Chemistry",
			"Request":      "Xerox",
			"Fee Paid":     "Yes",
			"Receipt":      "R-77",
		})
		require.NoError(t, err)
		assert.Equal(t, "S-1042", app.SeatNo)
		assert.Equal(t, "C01", app.CollegeCode)
		assert.Equal(t, "IV", app.Semester)
		assert.Equal(t, []string{"Maths", "Physics", "Chemistry"}, app.Subjects)
		assert.Equal(t, domain.RequestPhotocopy, app.RequestType)
		assert.True(t, app.Paid)
		assert.Equal(t, "R-77", app.ReceiptNo)
		assert.Equal(t, fixedNow(), app.CreatedAt)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := n.Normalize(map[string]string{"seat no": "1", "name": "A", "college code": "C01", "request": "both"})
		var rowErr *RowError
		require.ErrorAs(t, err, &rowErr)
		assert.Equal(t, "subjects", rowErr.Field)
	})

	t.Run("rejects unknown request type", func(t *testing.T) {
		_, err := n.Normalize(map[string]string{
			"seat no": "1", "name": "A", "college code": "C01", "subjects": "Maths", "request": "regrade",
		})
		assert.ErrorContains(t, err, "unknown request type")
	})

	t.Run("subjects made only of separators fail validation", func(t *testing.T) {
		_, err := n.Normalize(map[string]string{
			"seat no": "1", "name": "A", "college code": "C01", "subjects": ";;", "request": "rt",
		})
		assert.Error(t, err)
	})
}

func TestCollegeNormalizer(t *testing.T) {
	n := NewCollegeNormalizer(DefaultAliasTable())

	college, err := n.Normalize(map[string]string{
		"College Code": "c01",
		"College Name": "City College",
		"E-mail":       "Office@City.EDU",
	})
	require.NoError(t, err)
	assert.Equal(t, "C01", college.Code)
	assert.Equal(t, "office@city.edu", college.Email)

	_, err = n.Normalize(map[string]string{"code": "C02", "name": "X", "email": "not-an-email"})
	assert.Error(t, err)

	_, err = n.Normalize(map[string]string{"code": "C03"})
	assert.Error(t, err)
}

func TestPaymentNormalizer(t *testing.T) {
	n := NewPaymentNormalizer(DefaultAliasTable())

	t.Run("generates an id and parses money and dates", func(t *testing.T) {
		p, err := n.Normalize(map[string]string{
			"College Code": "c01",
			"Amount":  "Rs. 1,250.50",
			"Date":    "15/04/2024",
			"DD No":   "884421",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, int64(125050), p.Amount)
		assert.Equal(t, time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC), p.PaidOn)
		assert.Equal(t, "884421", p.Reference)
	})

	t.Run("keeps a supplied id", func(t *testing.T) {
		p, err := n.Normalize(map[string]string{"id": "P-1", "college code": "C01", "amount": "100"})
		require.NoError(t, err)
		assert.Equal(t, "P-1", p.ID)
	})

	t.Run("rejects bad values", func(t *testing.T) {
		for _, row := range []map[string]string{
			{"college code": "C01", "amount": "abc"},
			{"college code": "C01", "amount": "0"},
			{"college code": "C01", "amount": "10", "date": "April"},
			{"amount": "10"},
		} {
			_, err := n.Normalize(row)
			assert.Error(t, err, row)
		}
	})
}
