// Package csvsource importa productos desde archivos CSV con codificación configurable.
package csvsource

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/jhoicas/warehouse-api/internal/application/importer"
)

var _ importer.ProductSource = (*ProductSource)(nil)

// Options Charset vacío o "UTF-8" no transforma. Comma 0 usa ','.
type Options struct {
	Charset string
	Comma   rune
}

// ProductSource lee un CSV con cabecera (code, description, barcode, category).
type ProductSource struct {
	name string
	open func() (io.ReadCloser, error)
	opts Options
}

func NewFileSource(path string, opts Options) *ProductSource {
	return &ProductSource{
		name: "csv:" + path,
		open: func() (io.ReadCloser, error) { return os.Open(path) },
		opts: opts,
	}
}

func NewBytesSource(name string, data []byte, opts Options) *ProductSource {
	return &ProductSource{
		name: "csv:" + name,
		open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
		opts: opts,
	}
}

func (s *ProductSource) Name() string { return s.name }

// Each una fila con columnas de más o de menos se reporta y la lectura sigue.
func (s *ProductSource) Each(ctx context.Context, fn func(row importer.ImportRow, err error)) error {
	enc, err := Lookup(s.opts.Charset)
	if err != nil {
		return err
	}
	rc, err := s.open()
	if err != nil {
		return fmt.Errorf("abrir archivo: %w", err)
	}
	defer func() { _ = rc.Close() }()

	var in io.Reader = rc
	if enc != nil {
		in = transform.NewReader(rc, enc.NewDecoder())
	}
	r := csv.NewReader(in)
	if s.opts.Comma != 0 {
		r.Comma = s.opts.Comma
	}
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("archivo CSV vacío")
		}
		return fmt.Errorf("leer cabecera: %w", err)
	}
	cols, err := importer.ParseHeader(header)
	if err != nil {
		return err
	}

	for line := 1; ; line++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				fn(importer.ImportRow{Line: line}, err)
				continue
			}
			return fmt.Errorf("leer CSV: %w", err)
		}
		if importer.Blank(record) {
			continue
		}
		fn(cols.Row(line, record), nil)
	}
}

// Lookup resuelve un nombre de charset. nil = UTF-8 (sin transformación).
func Lookup(name string) (encoding.Encoding, error) {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "_", "-")) {
	case "", "UTF-8", "UTF8":
		return nil, nil
	case "ISO-8859-1", "ISO8859-1", "LATIN1", "LATIN-1":
		return charmap.ISO8859_1, nil
	case "WINDOWS-1252", "CP1252":
		return charmap.Windows1252, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("charset no soportado: %q", name)
	}
	return enc, nil
}
