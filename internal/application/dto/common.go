package dto

// ListMeta metadatos de listados.
type ListMeta struct {
	Total int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP. Details lista todas las violaciones de validación.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}
