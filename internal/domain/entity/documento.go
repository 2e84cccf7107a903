package entity

import "time"

// SocioDocumento es la ficha de un documento obligatorio de un socio
// (DNI escaneado, contrato, vigencia de poder...). El binario vive en el
// object storage bajo RutaStorage; aquí solo el metadato.
type SocioDocumento struct {
	ID          string
	SocioID     string
	Tipo        string // dni, contrato, poder, otros
	Nombre      string // nombre del archivo original
	RutaStorage string // {socioID}/docs/{nombre}
	ContentType string
	TamanoBytes int64
	SubidoPor   string
	CreatedAt   time.Time
}
