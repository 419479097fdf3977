package http

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/importer"
)

// maxImportFileSize límite del archivo subido en /import/file.
const maxImportFileSize = 10 << 20

// ImportSources fábricas de fuentes; se inyectan para no acoplar el handler a la infraestructura.
type ImportSources struct {
	// DefaultDSN se usa cuando la petición no trae dsn.
	DefaultDSN string
	Database   func(dsn, username, password string) importer.ProductSource
	// File recibe la extensión en minúsculas (".xlsx", ".csv").
	File func(name, ext string, data []byte, charset string) (importer.ProductSource, error)
}

// ImportHandler importación de productos (solo ADMIN).
type ImportHandler struct {
	uc      *importer.UseCase
	sources ImportSources
}

// NewImportHandler construye el handler.
func NewImportHandler(uc *importer.UseCase, sources ImportSources) *ImportHandler {
	return &ImportHandler{uc: uc, sources: sources}
}

// Database godoc
// @Summary      Importar productos desde otra base PostgreSQL
// @Tags         import
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportDatabaseRequest  false  "dsn, username, password"
// @Success      200   {object}  dto.ImportResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ImportResultDTO
// @Router       /api/v1/import/postgresql [post]
func (h *ImportHandler) Database(c *fiber.Ctx) error {
	var in dto.ImportDatabaseRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
	}
	dsn := strings.TrimSpace(in.DSN)
	if dsn == "" {
		dsn = h.sources.DefaultDSN
	}
	if dsn == "" || h.sources.Database == nil {
		return badRequest(c, "VALIDATION", "dsn es requerido (o configure IMPORT_SOURCE_DSN)")
	}
	return h.respond(c, h.uc.Import(c.UserContext(), h.sources.Database(dsn, in.Username, in.Password)))
}

// File godoc
// @Summary      Importar productos desde un archivo .xlsx o .csv
// @Tags         import
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        file     formData  file    true   "Archivo con cabecera code, description, barcode, category"
// @Param        charset  formData  string  false  "Codificación del CSV (ej. ISO-8859-1)"
// @Success      200      {object}  dto.ImportResultDTO
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      422      {object}  dto.ImportResultDTO
// @Router       /api/v1/import/file [post]
func (h *ImportHandler) File(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "VALIDATION", "campo file requerido")
	}
	if fh.Size > maxImportFileSize {
		return badRequest(c, "VALIDATION", "archivo demasiado grande (máx. 10 MB)")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".xlsx" && ext != ".csv" {
		return badRequest(c, "VALIDATION", "formato no soportado: use .xlsx o .csv")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}
	if h.sources.File == nil {
		return fiber.ErrNotImplemented
	}
	src, err := h.sources.File(fh.Filename, ext, data, c.FormValue("charset"))
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	return h.respond(c, h.uc.Import(c.UserContext(), src))
}

// respond 200 si la importación terminó (aunque haya filas rechazadas); 422 si se abortó.
func (h *ImportHandler) respond(c *fiber.Ctx, res *dto.ImportResultDTO) error {
	if !res.Success {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(res)
	}
	return c.JSON(res)
}
