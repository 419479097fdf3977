package importer

import (
	"errors"
	"strings"
)

// ErrMissingCodeColumn la cabecera no trae columna de código.
var ErrMissingCodeColumn = errors.New("la cabecera no contiene la columna code")

// Columns posición de cada campo en una fuente tabular (-1 = ausente).
type Columns struct {
	Code, Description, Barcode, Category int
}

var headerAliases = map[string]string{
	"code": "code", "codigo": "code", "código": "code", "sku": "code",
	"description": "description", "descripcion": "description", "descripción": "description", "name": "description", "nombre": "description",
	"barcode": "barcode", "codigo_barras": "barcode", "código_barras": "barcode", "ean": "barcode",
	"category": "category", "categoria": "category", "categoría": "category",
}

// ParseHeader ubica las columnas por nombre, sin distinguir mayúsculas. Solo code es obligatoria.
func ParseHeader(header []string) (Columns, error) {
	c := Columns{Code: -1, Description: -1, Barcode: -1, Category: -1}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		switch headerAliases[key] {
		case "code":
			c.Code = i
		case "description":
			c.Description = i
		case "barcode":
			c.Barcode = i
		case "category":
			c.Category = i
		}
	}
	if c.Code < 0 {
		return c, ErrMissingCodeColumn
	}
	return c, nil
}

// Row arma la fila a partir de un registro; celdas faltantes quedan vacías.
func (c Columns) Row(line int, record []string) ImportRow {
	return ImportRow{
		Line:        line,
		Code:        cell(record, c.Code),
		Description: cell(record, c.Description),
		Barcode:     cell(record, c.Barcode),
		Category:    cell(record, c.Category),
	}
}

// Blank registro sin ningún valor (filas vacías al final de hojas de cálculo).
func Blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
