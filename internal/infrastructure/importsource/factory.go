// Package importsource elige la fuente de productos según el origen (base externa, .xlsx o .csv).
package importsource

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/warehouse-api/internal/application/importer"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/csvsource"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/postgres"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/xlsx"
)

// Database fuente en otra base PostgreSQL.
func Database(dsn, username, password string) importer.ProductSource {
	return postgres.NewExternalProductSource(dsn, username, password)
}

// Bytes fuente desde un archivo subido. ext en minúsculas con punto.
func Bytes(name, ext string, data []byte, charset string) (importer.ProductSource, error) {
	switch ext {
	case ".xlsx":
		return xlsx.NewBytesSource(name, data), nil
	case ".csv":
		if _, err := csvsource.Lookup(charset); err != nil {
			return nil, err
		}
		return csvsource.NewBytesSource(name, data, csvsource.Options{Charset: charset}), nil
	default:
		return nil, fmt.Errorf("formato no soportado: %s", ext)
	}
}

// File fuente desde un archivo local; el formato sale de la extensión.
func File(path, charset string, comma rune) (importer.ProductSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("archivo de importación: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		return xlsx.NewFileSource(path), nil
	case ".csv", ".txt":
		if _, err := csvsource.Lookup(charset); err != nil {
			return nil, err
		}
		return csvsource.NewFileSource(path, csvsource.Options{Charset: charset, Comma: comma}), nil
	default:
		return nil, fmt.Errorf("formato no soportado: %s", ext)
	}
}
