package store_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"attendance-register-go/models"
	"attendance-register-go/store"
)

func TestLoadRosterSkipsMalformedLines(t *testing.T) {
	reg := store.New()
	input := "1001,Bob\n1002,Carol\nbadline\n1003,Dan"

	count, err := reg.LoadRoster(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 3, reg.Count())

	for _, id := range []int{1001, 1002, 1003} {
		assert.NotNil(t, reg.FindByID(id), "expected record for %d", id)
	}
}

func TestLoadRosterKeepsCommasInNames(t *testing.T) {
	reg := store.New()
	count, err := reg.LoadRoster(strings.NewReader("7,Smith, John\n"))
	require.NoError(t, err)
	require.Equal(t, 1, count)

	st := reg.FindByID(7)
	require.NotNil(t, st)
	assert.Equal(t, "Smith, John", st.Name)
}

func TestLoadRosterClipsLongNames(t *testing.T) {
	reg := store.New()
	long := strings.Repeat("n", models.MaxNameLen+10)
	count, err := reg.LoadRoster(strings.NewReader("8," + long))
	require.NoError(t, err)
	require.Equal(t, 1, count)
	assert.Len(t, reg.FindByID(8).Name, models.MaxNameLen)
}

func TestLoadRosterRejectsMissingFields(t *testing.T) {
	reg := store.New()
	input := "5,\nnotanumber,Kim\n,NoID\njustaname\n"
	count, err := reg.LoadRoster(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 0, reg.Count())
}

func TestLoadRosterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.txt")
	require.NoError(t, os.WriteFile(path, []byte("1001,Bob\n1002,Carol\n"), 0o644))

	reg := store.New()
	count, err := reg.LoadRosterFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestLoadRosterFileMissing(t *testing.T) {
	reg := store.New()
	_, err := reg.LoadRosterFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
	assert.Equal(t, 0, reg.Count())
}

func TestImportRosterFromExcel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"ID", "Name"}, // header, skipped
		{2001, "Alice"},
		{2002, "Bob"},
		{"notanumber", "Skipped"},
		{2003, ""}, // missing name, skipped
	}
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	reg := store.New()
	count, err := reg.ImportRosterFromExcel(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NotNil(t, reg.FindByID(2001))
	assert.NotNil(t, reg.FindByID(2002))
}

func TestImportRosterFromExcelRejectsGarbage(t *testing.T) {
	reg := store.New()
	_, err := reg.ImportRosterFromExcel(strings.NewReader("this is not a workbook"))
	assert.Error(t, err)
}
