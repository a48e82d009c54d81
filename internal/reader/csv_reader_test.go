package reader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVReader_Read(t *testing.T) {
	csvData := `Seat No,Student Name,College Code,Subjects
S1001,Asha Patil,C01,"Physics, Chemistry"
S1002,Ravi Kulkarni,C02,Mathematics`

	reader := NewCSVReader(strings.NewReader(csvData))

	records, err := reader.Read()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, map[string]string{
		"Seat No":      "S1001",
		"Student Name": "Asha Patil",
		"College Code": "C01",
		"Subjects":     "Physics, Chemistry",
	}, records[0])

	assert.Equal(t, "Mathematics", records[1]["Subjects"])
}

func TestCSVReader_ToleratesRaggedRowsAndBlankLines(t *testing.T) {
	csvData := "\ufeffcode,name,email\nC01,City College\n,,\nC02,Hill College,office@hill.edu,extra\n"

	records, err := NewCSVReader(strings.NewReader(csvData)).Read()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, map[string]string{"code": "C01", "name": "City College", "email": ""}, records[0])
	assert.Equal(t, "office@hill.edu", records[1]["email"])
}

func TestTSVReader_PastedBlock(t *testing.T) {
	pasted := "Seat No\tName\tCollege\n S1 \tAsha\tC01\nS2\tRavi\tC02\n"

	records, err := NewTSVReader(strings.NewReader(pasted)).Read()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "S1", records[0]["Seat No"])
	assert.Equal(t, "C02", records[1]["College"])
}

func TestCSVReader_EmptyInput(t *testing.T) {
	records, err := NewCSVReader(strings.NewReader("")).Read()
	require.NoError(t, err)
	assert.Empty(t, records)
}
