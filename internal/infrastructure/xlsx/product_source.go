package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/warehouse-api/internal/application/importer"
)

var _ importer.ProductSource = (*ProductSource)(nil)

// ProductSource lee productos de la primera hoja de un .xlsx; la fila 1 es la cabecera.
type ProductSource struct {
	name string
	open func() (io.ReadCloser, error)
}

// NewFileSource abre path en cada Each.
func NewFileSource(path string) *ProductSource {
	return &ProductSource{
		name: "xlsx:" + path,
		open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// NewBytesSource para archivos subidos por HTTP.
func NewBytesSource(name string, data []byte) *ProductSource {
	return &ProductSource{
		name: "xlsx:" + name,
		open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

func (s *ProductSource) Name() string { return s.name }

func (s *ProductSource) Each(ctx context.Context, fn func(row importer.ImportRow, err error)) error {
	rc, err := s.open()
	if err != nil {
		return fmt.Errorf("abrir archivo: %w", err)
	}
	defer func() { _ = rc.Close() }()

	f, err := excelize.OpenReader(rc)
	if err != nil {
		return fmt.Errorf("leer excel (dañado o no es .xlsx): %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("leer hoja %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("la hoja %q está vacía", sheet)
	}
	cols, err := importer.ParseHeader(rows[0])
	if err != nil {
		return err
	}
	for i, record := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return err
		}
		if importer.Blank(record) {
			continue
		}
		fn(cols.Row(i+1, record), nil)
	}
	return nil
}
