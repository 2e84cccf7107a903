package dto

import "time"

// CreateSocioRequest body para POST /api/socios.
type CreateSocioRequest struct {
	TipoDocumento   string `json:"tipo_documento"`
	NumeroDocumento string `json:"numero_documento"`
	RazonSocial     string `json:"razon_social"`
	NombreComercial string `json:"nombre_comercial,omitempty"`
	Direccion       string `json:"direccion,omitempty"`
	Distrito        string `json:"distrito,omitempty"`
	Provincia       string `json:"provincia,omitempty"`
	Departamento    string `json:"departamento,omitempty"`
	Telefono        string `json:"telefono,omitempty"`
	Email           string `json:"email,omitempty"`
}

// SocioResponse socio en respuestas.
type SocioResponse struct {
	ID              string `json:"id"`
	TipoDocumento   string `json:"tipo_documento"`
	NumeroDocumento string `json:"numero_documento"`
	RazonSocial     string `json:"razon_social"`
	NombreComercial string `json:"nombre_comercial,omitempty"`
	Direccion       string `json:"direccion,omitempty"`
	Distrito        string `json:"distrito,omitempty"`
	Provincia       string `json:"provincia,omitempty"`
	Departamento    string `json:"departamento,omitempty"`
	Telefono        string `json:"telefono,omitempty"`
	Email           string `json:"email,omitempty"`
}

// DocumentoResponse metadato de un documento de socio.
type DocumentoResponse struct {
	ID          string    `json:"id"`
	SocioID     string    `json:"socio_id"`
	Tipo        string    `json:"tipo"`
	Nombre      string    `json:"nombre"`
	ContentType string    `json:"content_type"`
	TamanoBytes int64     `json:"tamano_bytes"`
	SubidoPor   string    `json:"subido_por"`
	CreatedAt   time.Time `json:"created_at"`
}
