package facturacion

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tesoreria-api/internal/application/dto"
	"github.com/tu-usuario/tesoreria-api/internal/domain"
)

var cien = decimal.NewFromInt(100)

// BaseSinIGV convierte un valor unitario CON IGV incluido a su valor base sin
// IGV, redondeado a 2 decimales:
//
//	base = total / (1 + igv/100)
//
// Es una transformación documentada del modelo, no un redondeo incidental:
// 250.00 al 18% → 211.86.
func BaseSinIGV(precioConIGV, porcentajeIGV decimal.Decimal) decimal.Decimal {
	divisor := decimal.NewFromInt(1).Add(porcentajeIGV.Div(cien))
	return precioConIGV.Div(divisor).Round(2)
}

// validarSolicitud valida la solicitud contra los invariantes del modelo antes
// de cualquier llamada de red. Retorna nil si es válida.
func validarSolicitud(in *dto.EmitirBoletaRequest) *domain.ValidationError {
	v := domain.NewValidationError()

	if in.FechaEmision == "" {
		v.Add("fecha_emision", "es obligatoria")
	} else if _, err := time.Parse("2006-01-02", in.FechaEmision); err != nil {
		v.Add("fecha_emision", "debe ser fecha ISO (yyyy-mm-dd)")
	}
	if in.Moneda == "" {
		v.Add("moneda", "es obligatoria")
	}
	if in.Cliente.NumeroDocumento == "" {
		v.Add("client.numero_documento", "es obligatorio")
	}
	if in.Cliente.RazonSocial == "" {
		v.Add("client.razon_social", "es obligatoria")
	}
	if len(in.Items) == 0 {
		v.Add("detalles", "debe haber al menos una línea")
	}
	for i, item := range in.Items {
		campo := func(c string) string { return fmt.Sprintf("detalles[%d].%s", i, c) }
		if item.Descripcion == "" {
			v.Add(campo("descripcion"), "es obligatoria")
		}
		if !item.Cantidad.GreaterThan(decimal.Zero) {
			v.Add(campo("cantidad"), "debe ser mayor que cero")
		}
		if item.PrecioUnitario.LessThan(decimal.Zero) {
			v.Add(campo("precio_unitario"), "no puede ser negativo")
		}
		if item.PorcentajeIGV.LessThan(decimal.Zero) {
			v.Add(campo("porcentaje_igv"), "no puede ser negativo")
		}
	}

	if v.HasErrors() {
		return v
	}
	return nil
}
