// Package importer carga productos desde fuentes externas (otra base de datos, Excel o CSV).
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/ports"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/jhoicas/warehouse-api/internal/domain/validation"
)

// DefaultCategory se asigna cuando la fuente no trae categoría.
const DefaultCategory = "General"

// ImportRow fila leída de la fuente. Line es la posición en la fuente (1 = primera fila de datos).
type ImportRow struct {
	Line        int
	Code        string
	Description string
	Barcode     string
	Category    string
}

// ProductSource recorre las filas de una fuente externa.
// Un error de fila se entrega a fn y no detiene la lectura; el error devuelto por Each aborta la importación.
type ProductSource interface {
	Name() string
	Each(ctx context.Context, fn func(row ImportRow, err error)) error
}

// UseCase importa productos: nombre = descripción, precio 0.00, se omiten los códigos existentes.
type UseCase struct {
	products repository.ProductRepository
	sinks    ports.Sinks
	now      func() time.Time
}

func NewUseCase(products repository.ProductRepository, sinks ports.Sinks) *UseCase {
	return &UseCase{products: products, sinks: sinks.WithDefaults(), now: time.Now}
}

// Import recorre la fuente y crea los productos nuevos. Las filas inválidas se reportan en Errors.
func (uc *UseCase) Import(ctx context.Context, source ProductSource) *dto.ImportResultDTO {
	res := &dto.ImportResultDTO{Errors: []string{}}
	log := uc.sinks.Log.With().Str("source", source.Name()).Logger()
	log.Info().Msg("importación iniciada")

	err := source.Each(ctx, func(row ImportRow, rowErr error) {
		if rowErr != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("fila %d: %v", row.Line, rowErr))
			return
		}
		created, err := uc.importRow(ctx, row)
		if err != nil {
			msg := fmt.Sprintf("fila %d (%s): %v", row.Line, row.Code, err)
			res.Errors = append(res.Errors, msg)
			log.Warn().Err(err).Int("line", row.Line).Str("code", row.Code).Msg("fila rechazada")
			return
		}
		if created {
			res.ImportedRecords++
		} else {
			res.SkippedRecords++
		}
	})
	if err != nil {
		log.Error().Err(err).Msg("importación fallida")
		uc.sinks.Audit.LogError(ctx, "IMPORT_PRODUCTS", "fuente "+source.Name(), err)
		uc.sinks.Metrics.RecordError(domain.Kind(err), "import")
		res.Success = false
		res.Message = "importación fallida: " + err.Error()
		return res
	}

	res.Success = true
	res.Message = fmt.Sprintf("importación completada: %d productos importados, %d omitidos", res.ImportedRecords, res.SkippedRecords)
	uc.sinks.Audit.LogAction(ctx, "PRODUCTS_IMPORTED", "Product", "", res.Message)
	log.Info().
		Int("imported", res.ImportedRecords).
		Int("skipped", res.SkippedRecords).
		Int("errors", len(res.Errors)).
		Msg("importación completada")
	return res
}

// importRow devuelve false si el código ya existía.
func (uc *UseCase) importRow(ctx context.Context, row ImportRow) (bool, error) {
	code := strings.TrimSpace(row.Code)
	exists, err := uc.products.ExistsByCode(ctx, code)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	now := uc.now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		Code:        code,
		Name:        strings.TrimSpace(row.Description),
		Description: strings.TrimSpace(row.Description),
		Category:    strings.TrimSpace(row.Category),
		Price:       decimal.Zero,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	if b := strings.TrimSpace(row.Barcode); b != "" {
		p.Barcode = &b
	}
	if err := validation.ValidateProduct(p); err != nil {
		return false, err
	}
	if err := uc.products.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	uc.sinks.Metrics.RecordProductOperation("import")
	return true, nil
}
