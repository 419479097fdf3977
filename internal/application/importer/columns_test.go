package importer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/importer"
)

func TestParseHeader_Aliases(t *testing.T) {
	cols, err := importer.ParseHeader([]string{"\ufeffCódigo", "Nombre", "EAN", "Categoria"})
	require.NoError(t, err)
	assert.Equal(t, importer.Columns{Code: 0, Description: 1, Barcode: 2, Category: 3}, cols)
}

func TestParseHeader_MissingCode(t *testing.T) {
	_, err := importer.ParseHeader([]string{"description", "barcode"})
	assert.ErrorIs(t, err, importer.ErrMissingCodeColumn)
}

func TestColumns_RowShortRecord(t *testing.T) {
	cols, err := importer.ParseHeader([]string{"category", "code", "description"})
	require.NoError(t, err)

	row := cols.Row(4, []string{" Herramientas ", "HAM-01"})
	assert.Equal(t, importer.ImportRow{Line: 4, Code: "HAM-01", Category: "Herramientas"}, row)
}

func TestBlank(t *testing.T) {
	assert.True(t, importer.Blank([]string{"", "  "}))
	assert.True(t, importer.Blank(nil))
	assert.False(t, importer.Blank([]string{"", "x"}))
}
