package dto

// ImportDatabaseRequest conexión a la base de datos externa de productos.
// Username y Password, si vienen, reemplazan los del DSN.
type ImportDatabaseRequest struct {
	DSN      string `json:"dsn"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// ImportResultDTO resultado de una importación.
type ImportResultDTO struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	ImportedRecords int      `json:"imported_records"`
	SkippedRecords  int      `json:"skipped_records"`
	Errors          []string `json:"errors"`
}
