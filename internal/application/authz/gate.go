package authz

import "github.com/tu-usuario/tesoreria-api/internal/domain/entity"

// IsAuthorized decide si la ruta está autorizada por el set de permisos.
// Función pura y total: con set nil (sin resolver o resolución fallida)
// siempre es false, sin importar la ruta.
func IsAuthorized(ruta string, permisos entity.PermissionSet) bool {
	return permisos.Contains(ruta)
}

// NavState estado de un intento de navegación protegida.
type NavState int

const (
	// NavUnresolved estado inicial: aún no se consultó la sesión.
	NavUnresolved NavState = iota
	// NavLoading la resolución de permisos está en vuelo; la navegación bloquea.
	NavLoading
	// NavAuthorized terminal: se muestra la vista solicitada.
	NavAuthorized
	// NavDenied terminal: se muestra el aviso de acceso denegado (no un redirect).
	NavDenied
)

func (s NavState) String() string {
	switch s {
	case NavUnresolved:
		return "unresolved"
	case NavLoading:
		return "loading"
	case NavAuthorized:
		return "authorized"
	case NavDenied:
		return "denied"
	}
	return "unknown"
}

// Navigation modela la máquina de estados de un intento de navegación:
// Unresolved → Loading → {Authorized, Denied}. No hay regreso a Loading sin
// un intento nuevo o un evento de autenticación nuevo (es decir, sin crear
// otra Navigation).
type Navigation struct {
	Ruta   string
	estado NavState
}

// NewNavigation crea un intento en estado Unresolved para la ruta.
func NewNavigation(ruta string) *Navigation {
	return &Navigation{Ruta: ruta, estado: NavUnresolved}
}

// Estado devuelve el estado actual.
func (n *Navigation) Estado() NavState { return n.estado }

// Begin pasa a Loading. Solo válido desde Unresolved; en cualquier otro
// estado es un no-op (los estados terminales son definitivos).
func (n *Navigation) Begin() NavState {
	if n.estado == NavUnresolved {
		n.estado = NavLoading
	}
	return n.estado
}

// Complete cierra el intento con el set resuelto: Authorized o Denied.
// Solo válido desde Loading; en estados terminales es un no-op.
func (n *Navigation) Complete(permisos entity.PermissionSet) NavState {
	if n.estado != NavLoading {
		return n.estado
	}
	if IsAuthorized(n.Ruta, permisos) {
		n.estado = NavAuthorized
	} else {
		n.estado = NavDenied
	}
	return n.estado
}
