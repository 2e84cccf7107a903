package entity

import "time"

// Actor es el principal autenticado de la sesión actual. Se crea al iniciar
// sesión, se reemplaza completo en cada sign-in/sign-out y se descarta al
// terminar la sesión.
type Actor struct {
	ID       string
	Email    string
	ExpiraEn time.Time // fin de la ventana de validez de la sesión
}

// Vigente indica si la ventana de validez de la sesión sigue abierta.
func (a Actor) Vigente(ahora time.Time) bool {
	return !a.ExpiraEn.IsZero() && ahora.Before(a.ExpiraEn)
}
