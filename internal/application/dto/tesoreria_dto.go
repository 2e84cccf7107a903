package dto

import "github.com/shopspring/decimal"

// CreateCuentaRequest body para POST /api/cuentas.
type CreateCuentaRequest struct {
	Nombre string `json:"nombre"`
	Tipo   string `json:"tipo"` // banco, caja
	Moneda string `json:"moneda"`
}

// CuentaResponse cuenta en respuestas.
type CuentaResponse struct {
	ID     string          `json:"id"`
	Nombre string          `json:"nombre"`
	Tipo   string          `json:"tipo"`
	Moneda string          `json:"moneda"`
	Saldo  decimal.Decimal `json:"saldo"`
	Estado string          `json:"estado"`
}

// RegistrarMovimientoRequest body para POST /api/movimientos.
type RegistrarMovimientoRequest struct {
	CuentaID    string          `json:"cuenta_id"`
	Tipo        string          `json:"tipo"` // ingreso, egreso
	Categoria   string          `json:"categoria"`
	Monto       decimal.Decimal `json:"monto"`
	Fecha       string          `json:"fecha"` // ISO yyyy-mm-dd; vacío = hoy
	Descripcion string          `json:"descripcion,omitempty"`
	SocioID     string          `json:"socio_id,omitempty"`
}

// MovimientoResponse movimiento en respuestas.
type MovimientoResponse struct {
	ID          string          `json:"id"`
	CuentaID    string          `json:"cuenta_id"`
	Tipo        string          `json:"tipo"`
	Categoria   string          `json:"categoria"`
	Monto       decimal.Decimal `json:"monto"`
	Fecha       string          `json:"fecha"`
	Descripcion string          `json:"descripcion,omitempty"`
	SocioID     string          `json:"socio_id,omitempty"`
	CreadoPor   string          `json:"creado_por"`
}

// ResumenCategoriaResponse total por (tipo, categoría) en el reporte.
type ResumenCategoriaResponse struct {
	Tipo      string          `json:"tipo"`
	Categoria string          `json:"categoria"`
	Total     decimal.Decimal `json:"total"`
}

// ReporteCajaResponse reporte de caja del rango consultado.
type ReporteCajaResponse struct {
	Desde         string                     `json:"desde"`
	Hasta         string                     `json:"hasta"`
	TotalIngresos decimal.Decimal            `json:"total_ingresos"`
	TotalEgresos  decimal.Decimal            `json:"total_egresos"`
	Neto          decimal.Decimal            `json:"neto"`
	Resumen       []ResumenCategoriaResponse `json:"resumen"`
	Movimientos   []MovimientoResponse       `json:"movimientos"`
}
