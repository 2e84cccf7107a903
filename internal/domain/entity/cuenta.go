package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cuenta.
const (
	CuentaBanco = "banco"
	CuentaCaja  = "caja"
)

// Cuenta es una cuenta de banco o caja de la organización. El saldo se
// mantiene junto con los movimientos dentro de una misma transacción.
type Cuenta struct {
	ID        string
	Nombre    string
	Tipo      string // banco, caja
	Moneda    string // PEN, USD
	Saldo     decimal.Decimal
	Estado    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
