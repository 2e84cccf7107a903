package tesoreria

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tesoreria-api/internal/application/dto"
	"github.com/tu-usuario/tesoreria-api/internal/domain"
	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
	"github.com/tu-usuario/tesoreria-api/internal/domain/repository"
)

// ReporteCaja datos agregados de un rango de fechas, listos para render.
type ReporteCaja struct {
	Desde         time.Time
	Hasta         time.Time
	TotalIngresos decimal.Decimal
	TotalEgresos  decimal.Decimal
	Neto          decimal.Decimal
	Resumen       []repository.ResumenCategoria
	Movimientos   []*entity.Movimiento
}

// ReporteUseCase arma el reporte de caja de un rango y su PDF.
type ReporteUseCase struct {
	movRepo   repository.MovimientoRepository
	generator ReportePDFGenerator
}

// NewReporteUseCase construye el caso de uso.
func NewReporteUseCase(movRepo repository.MovimientoRepository, generator ReportePDFGenerator) *ReporteUseCase {
	return &ReporteUseCase{movRepo: movRepo, generator: generator}
}

// Generar consulta movimientos y resumen por categoría del rango [desde, hasta].
func (uc *ReporteUseCase) Generar(ctx context.Context, desdeStr, hastaStr string) (*ReporteCaja, error) {
	desde, err := time.Parse("2006-01-02", desdeStr)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	hasta, err := time.Parse("2006-01-02", hastaStr)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if hasta.Before(desde) {
		return nil, domain.ErrInvalidInput
	}

	movs, err := uc.movRepo.ListByRango(ctx, "", desde, hasta)
	if err != nil {
		return nil, err
	}
	resumen, err := uc.movRepo.ResumenPorCategoria(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	reporte := &ReporteCaja{Desde: desde, Hasta: hasta, Resumen: resumen, Movimientos: movs}
	for _, m := range movs {
		if m.Tipo == entity.MovIngreso {
			reporte.TotalIngresos = reporte.TotalIngresos.Add(m.Monto)
		} else {
			reporte.TotalEgresos = reporte.TotalEgresos.Add(m.Monto)
		}
	}
	reporte.Neto = reporte.TotalIngresos.Sub(reporte.TotalEgresos)
	return reporte, nil
}

// GenerarPDF arma el reporte y lo renderiza a PDF.
func (uc *ReporteUseCase) GenerarPDF(ctx context.Context, desdeStr, hastaStr string) ([]byte, string, error) {
	reporte, err := uc.Generar(ctx, desdeStr, hastaStr)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerarReporteCaja(ctx, reporte)
	if err != nil {
		return nil, "", err
	}
	nombre := "reporte_caja_" + reporte.Desde.Format("20060102") + "_" + reporte.Hasta.Format("20060102") + ".pdf"
	return pdf, nombre, nil
}

// ToResponse proyecta el reporte al DTO de la API.
func (r *ReporteCaja) ToResponse() *dto.ReporteCajaResponse {
	out := &dto.ReporteCajaResponse{
		Desde:         r.Desde.Format("2006-01-02"),
		Hasta:         r.Hasta.Format("2006-01-02"),
		TotalIngresos: r.TotalIngresos,
		TotalEgresos:  r.TotalEgresos,
		Neto:          r.Neto,
	}
	for _, res := range r.Resumen {
		out.Resumen = append(out.Resumen, dto.ResumenCategoriaResponse{
			Tipo:      res.Tipo,
			Categoria: res.Categoria,
			Total:     res.Total,
		})
	}
	for _, m := range r.Movimientos {
		out.Movimientos = append(out.Movimientos, *toMovimientoResponse(m))
	}
	return out
}
