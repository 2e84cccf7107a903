package entity

import "time"

// Tipos de documento de identidad soportados (catálogo SUNAT 06).
const (
	DocDNI = "1" // DNI: 8 dígitos
	DocRUC = "6" // RUC: 11 dígitos
)

// SocioTitular es un socio titular de la organización: identidad tributaria
// usada como receptor de boletas y como dueño de documentos obligatorios.
// La búsqueda canónica es por número de documento.
type SocioTitular struct {
	ID              string
	TipoDocumento   string // catálogo SUNAT 06: "1" DNI, "6" RUC
	NumeroDocumento string // clave de búsqueda, único
	RazonSocial     string
	NombreComercial string
	Direccion       string
	Distrito        string
	Provincia       string
	Departamento    string
	Telefono        string
	Email           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
