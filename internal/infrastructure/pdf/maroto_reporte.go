// Package pdf implementa la representación impresa del reporte de caja
// usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de Caja  │  Rango de fechas                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Total ingresos / Total egresos / NETO             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA RESUMEN: Tipo | Categoría | Total                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA MOVIMIENTOS: Fecha | Tipo | Categoría | Desc | Monto │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/tesoreria-api/internal/application/tesoreria"
	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
	"github.com/tu-usuario/tesoreria-api/internal/domain/repository"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 160, Green: 30, Blue: 30}
)

var _ tesoreria.ReportePDFGenerator = (*MarotoReporteGenerator)(nil)

// MarotoReporteGenerator implementa tesoreria.ReportePDFGenerator con Maroto v2.
type MarotoReporteGenerator struct{}

// NewMarotoReporteGenerator construye el generador.
func NewMarotoReporteGenerator() *MarotoReporteGenerator { return &MarotoReporteGenerator{} }

// GenerarReporteCaja genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReporteGenerator) GenerarReporteCaja(_ context.Context, reporte *tesoreria.ReporteCaja) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Caja", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(reporte))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalesRow(reporte))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(seccionRow("RESUMEN POR CATEGORÍA"))
	m.AddRows(resumenHeaderRow())
	for _, r := range resumenRows(reporte.Resumen) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(seccionRow("DETALLE DE MOVIMIENTOS"))
	m.AddRows(movimientosHeaderRow())
	for _, r := range movimientoRows(reporte.Movimientos) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y rango de fechas (der).
func headerRow(reporte *tesoreria.ReporteCaja) core.Row {
	rango := reporte.Desde.Format("02/01/2006") + " — " + reporte.Hasta.Format("02/01/2006")
	return row.New(14).Add(
		col.New(7).Add(
			text.New("REPORTE DE CAJA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Tesorería", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Período", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(rango, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
		),
	)
}

// totalesRow: ingresos, egresos y neto del período.
func totalesRow(reporte *tesoreria.ReporteCaja) core.Row {
	netoColor := colorPrimary
	if reporte.Neto.IsNegative() {
		netoColor = colorRed
	}
	bloque := func(titulo, valor string, color *props.Color) core.Col {
		return col.New(4).Add(
			text.New(titulo, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Color: colorGray, Top: 1,
			}),
			text.New(valor, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: color, Top: 7,
			}),
		)
	}
	return row.New(16).Add(
		bloque("TOTAL INGRESOS", "S/ "+reporte.TotalIngresos.StringFixed(2), colorPrimary),
		bloque("TOTAL EGRESOS", "S/ "+reporte.TotalEgresos.StringFixed(2), colorRed),
		bloque("NETO", "S/ "+reporte.Neto.StringFixed(2), netoColor),
	)
}

func seccionRow(titulo string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(titulo, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		})),
	)
}

func resumenHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Tipo", 3, align.Left),
		h("Categoría", 6, align.Left),
		h("Total", 3, align.Right),
	)
}

func resumenRows(resumen []repository.ResumenCategoria) []core.Row {
	result := make([]core.Row, 0, len(resumen))
	for _, r := range resumen {
		result = append(result, row.New(6).Add(
			col.New(3).Add(text.New(r.Tipo, props.Text{Size: 8, Top: 1})),
			col.New(6).Add(text.New(r.Categoria, props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New("S/ "+r.Total.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 1,
			})),
		))
	}
	return result
}

func movimientosHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 1, align.Left),
		h("Categoría", 2, align.Left),
		h("Descripción", 5, align.Left),
		h("Monto", 2, align.Right),
	)
}

func movimientoRows(movs []*entity.Movimiento) []core.Row {
	result := make([]core.Row, 0, len(movs))
	for _, m := range movs {
		monto := "S/ " + m.Monto.StringFixed(2)
		if m.Tipo == entity.MovEgreso {
			monto = "-" + monto
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(m.Fecha.Format("02/01/2006"), props.Text{Size: 8, Top: 1})),
			col.New(1).Add(text.New(m.Tipo, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(m.Categoria, props.Text{Size: 8, Top: 1})),
			col.New(5).Add(text.New(m.Descripcion, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(monto, props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return result
}
