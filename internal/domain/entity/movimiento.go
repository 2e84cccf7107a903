package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento.
const (
	MovIngreso = "ingreso"
	MovEgreso  = "egreso"
)

// Movimiento es una transacción de ingreso o egreso sobre una cuenta.
// Monto siempre positivo; el signo lo da el tipo.
type Movimiento struct {
	ID          string
	CuentaID    string
	Tipo        string // ingreso, egreso
	Categoria   string // cuota, donacion, servicios, mantenimiento, ...
	Monto       decimal.Decimal
	Fecha       time.Time
	Descripcion string
	SocioID     string // opcional: socio asociado (ej. pago de cuota)
	CreadoPor   string // usuario que registró el movimiento
	CreatedAt   time.Time
}
