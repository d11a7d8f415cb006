package demographics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"housing-prediction-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = ` zipcode , gender,education,median_home_value
98101,F,Bachelors,650000
02139,M,Masters,820000
 60614 ,,HighSchool,410000
98101,M,PhD,1
`

func TestLoad(t *testing.T) {
	table, err := Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, 1, table.Duplicates())
	assert.Equal(t, []string{"zipcode", "gender", "education", "median_home_value"}, table.Columns())

	row, ok := table.Lookup("98101")
	require.True(t, ok)
	assert.Equal(t, Row{
		"zipcode":           "98101",
		"gender":            "F",
		"education":         "Bachelors",
		"median_home_value": "650000",
	}, row, "first occurrence of a duplicate zipcode wins")

	row, ok = table.Lookup("60614")
	require.True(t, ok)
	_, hasGender := row["gender"]
	assert.False(t, hasGender, "empty cells are absent")
	assert.Equal(t, "60614", row["zipcode"])
}

func TestLoad_KeepsLeadingZeros(t *testing.T) {
	table, err := Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	row, ok := table.Lookup("02139")
	require.True(t, ok)
	assert.Equal(t, "02139", row["zipcode"])

	_, ok = table.Lookup("2139")
	assert.False(t, ok)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "missing zipcode column",
			input:   "zip,gender\n98101,F\n",
			wantErr: ErrMissingZipcodeColumn,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: ErrMissingZipcodeColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_MalformedRecord(t *testing.T) {
	_, err := Load(strings.NewReader("zipcode,gender\n98101,\"F\n"))
	assert.Error(t, err)
}

func TestLoad_ByteOrderMark(t *testing.T) {
	table, err := Load(strings.NewReader("\ufeffzipcode,gender\n98101,F\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demographics.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	table, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()
	noZip := filepath.Join(dir, "nozip.csv")
	require.NoError(t, os.WriteFile(noZip, []byte("a,b\n1,2\n"), 0o600))

	tests := []struct {
		name string
		path string
	}{
		{name: "file does not exist", path: filepath.Join(dir, "missing.csv")},
		{name: "zipcode column absent", path: noZip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(tt.path)
			require.Error(t, err)

			var loadErr *models.LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, "demographics", loadErr.Resource)
			assert.Equal(t, tt.path, loadErr.Source)
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{name: "plain string", input: "02139", expected: "02139"},
		{name: "padded string", input: " 02139 ", expected: "02139"},
		{name: "tabs and newline", input: "\t98101\n", expected: "98101"},
		{name: "int", input: 98101, expected: "98101"},
		{name: "int64", input: int64(98101), expected: "98101"},
		{name: "integral float", input: float64(98101), expected: "98101"},
		{name: "float beyond int64", input: 1e20, expected: "100000000000000000000"},
		{name: "zipcode type", input: models.Zipcode(" 98101"), expected: "98101"},
		{name: "bytes", input: []byte(" 98101 "), expected: "98101"},
		{name: "nil", input: nil, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestLookup_NormalizesInput(t *testing.T) {
	table, err := Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	want, ok := table.Lookup("02139")
	require.True(t, ok)

	for _, zip := range []string{"02139", " 02139 ", "02139\n"} {
		got, ok := table.Lookup(zip)
		assert.True(t, ok, zip)
		assert.Equal(t, want, got, zip)
	}
}

func TestLookup_Miss(t *testing.T) {
	table, err := Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	row, ok := table.Lookup("00000")
	assert.False(t, ok)
	assert.Nil(t, row)

	var empty *Table
	_, ok = empty.Lookup("98101")
	assert.False(t, ok)
	assert.Equal(t, 0, empty.Len())
}

func TestLookup_ReturnsCopy(t *testing.T) {
	table, err := Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	row, _ := table.Lookup("98101")
	row["gender"] = "X"

	again, _ := table.Lookup("98101")
	assert.Equal(t, "F", again["gender"])
}

func TestLookup_Concurrent(t *testing.T) {
	table, err := Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			row, ok := table.Lookup(" 98101 ")
			assert.True(t, ok)
			assert.Equal(t, "Bachelors", row["education"])
		}()
	}
	wg.Wait()
}

func TestFromRows(t *testing.T) {
	table, err := FromRows(
		[]string{" zipcode", "gender "},
		[]Row{
			{"zipcode": " 98101 ", "gender": "F"},
			{"zipcode": "98101", "gender": "M"},
			{"zipcode": "", "gender": "M"},
		},
	)
	require.NoError(t, err)

	assert.Equal(t, 1, table.Len())
	assert.Equal(t, 1, table.Duplicates())
	assert.Equal(t, []Row{{"zipcode": "98101", "gender": "F"}}, table.Rows())

	_, err = FromRows([]string{"gender"}, nil)
	assert.ErrorIs(t, err, ErrMissingZipcodeColumn)
}
