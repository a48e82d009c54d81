package reader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/exam-portal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aliasYAML = `
kind: AliasTable
version: v1
collections:
  applications:
    seatNo: ["Seat No.", "roll   number"]
    studentName: ["Name"]
`

func TestAliasLoader_String_Load(t *testing.T) {
	// Arrange
	loader := NewAliasLoader(strings.NewReader(aliasYAML))

	// Act
	table, err := loader.Load(true)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "AliasTable", table.Kind)
	assert.Equal(t, "v1", table.Version)
	assert.Equal(t, []string{"Seat No.", "roll   number"}, table.Collections[domain.CollectionApplications]["seatNo"])
}

func TestAliasLoader_File_Load(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	require.NoError(t, os.WriteFile(path, []byte(aliasYAML), 0o600))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	// Act
	table, err := NewAliasLoader(file).Load(true)

	// Assert
	require.NoError(t, err)
	assert.Len(t, table.Collections[domain.CollectionApplications], 2)
}

func TestAliasLoader_Load_ShouldFail(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "wrong kind", yaml: "kind: DataMapping\nversion: v1\ncollections:\n  colleges:\n    code: [code]\n"},
		{name: "missing version", yaml: "kind: AliasTable\ncollections:\n  colleges:\n    code: [code]\n"},
		{name: "no collections", yaml: "kind: AliasTable\nversion: v1\n"},
		{name: "unknown collection", yaml: "kind: AliasTable\nversion: v1\ncollections:\n  students:\n    name: [name]\n"},
		{name: "blank alias", yaml: "kind: AliasTable\nversion: v1\ncollections:\n  colleges:\n    code: [\"  \"]\n"},
		{name: "malformed", yaml: "kind: [AliasTable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAliasLoader(strings.NewReader(tt.yaml)).Load(true)
			assert.Error(t, err)
		})
	}
}

func TestAliasLoader_LoadWithoutValidation(t *testing.T) {
	table, err := NewAliasLoader(strings.NewReader("kind: Other\n")).Load(false)
	require.NoError(t, err)
	assert.Equal(t, "Other", table.Kind)
}

func TestDefaultAliasTable_IsValid(t *testing.T) {
	table := DefaultAliasTable()
	require.NoError(t, table.Validate())
	for _, c := range domain.Collections {
		assert.NotEmpty(t, table.Collections[c], c)
	}
}

func TestFieldResolver_Resolve(t *testing.T) {
	table, err := NewAliasLoader(strings.NewReader(aliasYAML)).Load(true)
	require.NoError(t, err)
	resolver := table.Resolver(domain.CollectionApplications)

	t.Run("ignores case and spacing", func(t *testing.T) {
		got := resolver.Resolve(map[string]string{
			"SEAT NO.":      " 1042 ",
			"Roll Number":   "",
			"name":          "Asha",
			"Remarks":       "ignored",
			"  studentname": "",
		})
		assert.Equal(t, map[string]string{"seatNo": "1042", "studentName": "Asha"}, got)
	})

	t.Run("canonical names resolve to themselves", func(t *testing.T) {
		got := resolver.Resolve(map[string]string{"SeatNo": "7"})
		assert.Equal(t, "7", got["seatNo"])
	})

	t.Run("unknown collection resolves nothing", func(t *testing.T) {
		got := table.Resolver("payments").Resolve(map[string]string{"amount": "10"})
		assert.Empty(t, got)
	})
}

func TestFieldResolver_ConflictingColumns(t *testing.T) {
	resolver := DefaultAliasTable().Resolver(domain.CollectionApplications)

	tests := []struct {
		name string
		row  map[string]string
		want string
	}{
		{
			name: "college name column is not a code",
			row:  map[string]string{"College": "City College", "College Code": "C01"},
			want: "C01",
		},
		{
			name: "canonical name beats aliases",
			row:  map[string]string{"collegeCode": "C01", "College Code": "C99", "clg code": "C98"},
			want: "C01",
		},
		{
			name: "aliases rank in listed order",
			row:  map[string]string{"clg code": "C98", "college_code": "C97", "College Code": "C01"},
			want: "C01",
		},
		{
			name: "empty higher ranked value falls back",
			row:  map[string]string{"College Code": " ", "clg code": "C02"},
			want: "C02",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range 50 {
				got := resolver.Resolve(tt.row)
				require.Equal(t, tt.want, got["collegeCode"])
			}
		})
	}
}

func TestAliasTable_Validate_RejectsSharedAliases(t *testing.T) {
	yml := "kind: AliasTable\nversion: v1\ncollections:\n  applications:\n    collegeCode: [college]\n    course: [College]\n"
	_, err := NewAliasLoader(strings.NewReader(yml)).Load(true)
	assert.ErrorContains(t, err, "claimed by both")
}
