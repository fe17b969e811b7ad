package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"loan-scorer/internal/apperrors"
	"loan-scorer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func records() []models.FinancingRequest {
	return []models.FinancingRequest{
		{RequestID: 1, Age: 30, Sex: "M", Education: "Laurea", AmountRequested: 12000.5, ApprovalProbability: 0.75},
		{RequestID: 2, Age: 44, Sex: "F", Education: "Dottorato di ricerca", AmountRequested: 3000, ApprovalProbability: 0.1},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("excel")
	require.NoError(t, err)
	assert.Equal(t, "richieste.xlsx", f.FileName())

	_, err = ParseFormat("pdf")
	assert.ErrorIs(t, err, apperrors.ErrInput)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, records()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "12000.5", rows[1][7])
	assert.Equal(t, "Dottorato di ricerca", rows[2][3])
	assert.Equal(t, "0.1", rows[2][14])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, records()))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, 0.75, out[0]["ProbabilitaFinanziamentoApprovato"])
	assert.Equal(t, "F", out[1]["Sesso"])
}

func TestWriteExcel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatExcel, records()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "M", rows[1][2])
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
