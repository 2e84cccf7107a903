package tesoreria

import (
	"context"

	"github.com/tu-usuario/tesoreria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los repos
// de cuentas y movimientos. El movimiento y el ajuste de saldo entran o salen
// juntos (atomicidad).
type TxRunner interface {
	RunTesoreria(ctx context.Context, fn func(
		cuentaRepo repository.CuentaRepository,
		movRepo repository.MovimientoRepository,
	) error) error
}

// ReportePDFGenerator puerto de salida para la representación impresa del
// reporte de caja. La implementación concreta usa Maroto.
type ReportePDFGenerator interface {
	GenerarReporteCaja(ctx context.Context, reporte *ReporteCaja) ([]byte, error)
}
