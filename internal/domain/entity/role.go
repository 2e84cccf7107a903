package entity

// Rutas de recurso protegidas: el vocabulario que intercambian el resolver de
// permisos y el gate de acceso. Cada ruta identifica un área funcional.
const (
	RutaRaiz            = "/"
	RutaSocios          = "/people"
	RutaCuentas         = "/accounts"
	RutaEgresos         = "/expenses"
	RutaIngresos        = "/income"
	RutaFacturacion     = "/invoicing"
	RutaDocumentosSocio = "/partner-documents"
	RutaConfiguracion   = "/settings"
)

// Role es un agrupador de capacidades con nombre (ej. "admin", "files").
// Datos de referencia inmutables: este sistema solo los lee.
type Role struct {
	ID     string
	Nombre string
}

// ResourcePermission es un grant: (rol, ruta de recurso, permitido).
// Para un par (rol, ruta) a lo sumo un grant activo es autoritativo.
type ResourcePermission struct {
	RolID     string
	Ruta      string
	Permitido bool
}

// PermissionSet es el conjunto efectivo de rutas accesibles de un actor:
// la unión de las rutas con permitido=true de todos sus roles.
// Un set nil significa "sin resolver": nunca autoriza nada.
type PermissionSet map[string]struct{}

// NewPermissionSet construye un set a partir de rutas.
func NewPermissionSet(rutas ...string) PermissionSet {
	s := make(PermissionSet, len(rutas))
	for _, r := range rutas {
		s[r] = struct{}{}
	}
	return s
}

// Contains indica si la ruta está en el set. Sobre un set nil siempre es false.
func (s PermissionSet) Contains(ruta string) bool {
	if s == nil {
		return false
	}
	_, ok := s[ruta]
	return ok
}

// Rutas devuelve las rutas del set (orden no determinista).
func (s PermissionSet) Rutas() []string {
	out := make([]string, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	return out
}
