package csvsource_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/warehouse-api/internal/application/importer"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/csvsource"
)

type result struct {
	rows []importer.ImportRow
	errs []error
}

func read(t *testing.T, src *csvsource.ProductSource) result {
	t.Helper()
	var res result
	err := src.Each(context.Background(), func(row importer.ImportRow, err error) {
		if err != nil {
			res.errs = append(res.errs, err)
			return
		}
		res.rows = append(res.rows, row)
	})
	require.NoError(t, err)
	return res
}

func TestProductSource_UTF8(t *testing.T) {
	data := []byte("code,description,barcode,category\nHAM-01,Martillo,12345678,Herramientas\n\nDRL-02,Taladro,,\n")

	res := read(t, csvsource.NewBytesSource("p.csv", data, csvsource.Options{}))

	require.Len(t, res.rows, 2)
	assert.Equal(t, importer.ImportRow{Line: 1, Code: "HAM-01", Description: "Martillo", Barcode: "12345678", Category: "Herramientas"}, res.rows[0])
	assert.Equal(t, "DRL-02", res.rows[1].Code)
}

func TestProductSource_Latin1WithSemicolon(t *testing.T) {
	plain := "código;descripción;categoría\nCAF-01;Café molido;Alimentación\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(plain))
	require.NoError(t, err)

	src := csvsource.NewBytesSource("p.csv", encoded, csvsource.Options{Charset: "ISO-8859-1", Comma: ';'})
	res := read(t, src)

	require.Len(t, res.rows, 1)
	assert.Equal(t, "Café molido", res.rows[0].Description)
	assert.Equal(t, "Alimentación", res.rows[0].Category)
}

func TestProductSource_BadQuoteIsRowError(t *testing.T) {
	data := []byte("code,description\nA-1,\"roto\nB-2,bien\n")

	src := csvsource.NewBytesSource("p.csv", data, csvsource.Options{})
	var errs int
	_ = src.Each(context.Background(), func(_ importer.ImportRow, err error) {
		if err != nil {
			errs++
		}
	})
	assert.Positive(t, errs)
}

func TestProductSource_MissingCodeColumn(t *testing.T) {
	src := csvsource.NewBytesSource("p.csv", []byte("description\nx\n"), csvsource.Options{})
	err := src.Each(context.Background(), func(importer.ImportRow, error) {})
	assert.ErrorIs(t, err, importer.ErrMissingCodeColumn)
}

func TestLookup(t *testing.T) {
	enc, err := csvsource.Lookup("")
	require.NoError(t, err)
	assert.Nil(t, enc)

	enc, err = csvsource.Lookup("windows-1252")
	require.NoError(t, err)
	assert.Equal(t, charmap.Windows1252, enc)

	_, err = csvsource.Lookup("klingon")
	assert.Error(t, err)
}
