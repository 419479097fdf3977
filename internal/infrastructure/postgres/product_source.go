package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/warehouse-api/internal/application/importer"
)

var _ importer.ProductSource = (*ExternalProductSource)(nil)

// ExternalProductSource lee productos de otra base PostgreSQL (tabla products con code, description, barcode, category).
type ExternalProductSource struct {
	dsn      string
	username string
	password string
}

// NewExternalProductSource username/password vacíos conservan los del DSN.
func NewExternalProductSource(dsn, username, password string) *ExternalProductSource {
	return &ExternalProductSource{dsn: dsn, username: username, password: password}
}

func (s *ExternalProductSource) Name() string { return "database" }

// Each abre una conexión propia, recorre las filas y la cierra.
func (s *ExternalProductSource) Each(ctx context.Context, fn func(row importer.ImportRow, err error)) error {
	cfg, err := pgx.ParseConfig(s.dsn)
	if err != nil {
		return fmt.Errorf("parse DSN origen: %w", err)
	}
	if s.username != "" {
		cfg.User = s.username
	}
	if s.password != "" {
		cfg.Password = s.password
	}
	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("conectar a origen: %w", err)
	}
	defer func() { _ = conn.Close(context.Background()) }()

	rows, err := conn.Query(ctx, `
		SELECT COALESCE(code, ''), COALESCE(description, ''), COALESCE(barcode, ''), COALESCE(category, '')
		FROM products ORDER BY code`)
	if err != nil {
		return fmt.Errorf("consultar productos origen: %w", err)
	}
	defer rows.Close()

	line := 0
	for rows.Next() {
		line++
		row := importer.ImportRow{Line: line}
		if err := rows.Scan(&row.Code, &row.Description, &row.Barcode, &row.Category); err != nil {
			fn(row, fmt.Errorf("leer fila: %w", err))
			continue
		}
		fn(row, nil)
	}
	return rows.Err()
}
