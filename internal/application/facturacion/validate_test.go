package facturacion

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tesoreria-api/internal/application/dto"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Conversión de precio con IGV a valor base
// ──────────────────────────────────────────────────────────────────────────────

func TestBaseSinIGV_CasoDocumentado(t *testing.T) {
	// 250.00 con IGV al 18% → 211.86
	base := BaseSinIGV(dec("250.00"), dec("18"))
	assert.True(t, dec("211.86").Equal(base), "esperaba 211.86, obtuve %s", base)
}

func TestBaseSinIGV_RedondeaADosDecimales(t *testing.T) {
	casos := []struct {
		precio, igv, esperado string
	}{
		{"100.00", "18", "84.75"},
		{"118.00", "18", "100.00"},
		{"59.00", "18", "50.00"},
		{"10.00", "0", "10.00"},
	}
	for _, c := range casos {
		base := BaseSinIGV(dec(c.precio), dec(c.igv))
		assert.True(t, dec(c.esperado).Equal(base),
			"%s al %s%%: esperaba %s, obtuve %s", c.precio, c.igv, c.esperado, base)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de la solicitud
// ──────────────────────────────────────────────────────────────────────────────

func solicitudValida() dto.EmitirBoletaRequest {
	return dto.EmitirBoletaRequest{
		FechaEmision: "2026-08-15",
		Moneda:       "PEN",
		Cliente: dto.ClienteBoleta{
			TipoDocumento:   "1",
			NumeroDocumento: "45678901",
			RazonSocial:     "PEREZ GOMEZ JUAN",
			SocioID:         "socio-1",
		},
		Items: []dto.ItemBoleta{{
			Codigo:         "CUOTA-2026-08",
			Descripcion:    "Cuota ordinaria agosto 2026",
			Unidad:         "NIU",
			Cantidad:       dec("1"),
			PrecioUnitario: dec("250.00"),
			PorcentajeIGV:  dec("18"),
		}},
	}
}

func TestValidarSolicitud_Valida(t *testing.T) {
	in := solicitudValida()
	assert.Nil(t, validarSolicitud(&in))
}

func TestValidarSolicitud_AcumulaCamposFaltantes(t *testing.T) {
	in := dto.EmitirBoletaRequest{}
	verr := validarSolicitud(&in)
	require.NotNil(t, verr)

	assert.Contains(t, verr.Campos, "fecha_emision")
	assert.Contains(t, verr.Campos, "moneda")
	assert.Contains(t, verr.Campos, "client.numero_documento")
	assert.Contains(t, verr.Campos, "client.razon_social")
	assert.Contains(t, verr.Campos, "detalles")
}

func TestValidarSolicitud_FechaNoISO(t *testing.T) {
	in := solicitudValida()
	in.FechaEmision = "15/08/2026"
	verr := validarSolicitud(&in)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Campos, "fecha_emision")
}

func TestValidarSolicitud_LineasInvalidas(t *testing.T) {
	in := solicitudValida()
	in.Items = append(in.Items, dto.ItemBoleta{
		Cantidad:       decimal.Zero,
		PrecioUnitario: dec("-1"),
		PorcentajeIGV:  dec("-18"),
	})
	verr := validarSolicitud(&in)
	require.NotNil(t, verr)

	assert.Contains(t, verr.Campos, "detalles[1].descripcion")
	assert.Contains(t, verr.Campos, "detalles[1].cantidad")
	assert.Contains(t, verr.Campos, "detalles[1].precio_unitario")
	assert.Contains(t, verr.Campos, "detalles[1].porcentaje_igv")
	// La línea válida no genera errores.
	assert.NotContains(t, verr.Campos, "detalles[0].descripcion")
}
