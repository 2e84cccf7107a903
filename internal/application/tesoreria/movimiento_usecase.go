package tesoreria

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tesoreria-api/internal/application/dto"
	"github.com/tu-usuario/tesoreria-api/internal/domain"
	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
	"github.com/tu-usuario/tesoreria-api/internal/domain/repository"
)

// MovimientoUseCase registra ingresos y egresos manteniendo el saldo de la
// cuenta en la misma transacción.
type MovimientoUseCase struct {
	txRunner   TxRunner
	cuentaRepo repository.CuentaRepository
	movRepo    repository.MovimientoRepository
}

// NewMovimientoUseCase construye el caso de uso.
func NewMovimientoUseCase(txRunner TxRunner, cuentaRepo repository.CuentaRepository, movRepo repository.MovimientoRepository) *MovimientoUseCase {
	return &MovimientoUseCase{txRunner: txRunner, cuentaRepo: cuentaRepo, movRepo: movRepo}
}

// Registrar valida y persiste el movimiento, ajustando el saldo de la cuenta.
// Un egreso mayor que el saldo disponible se rechaza con ErrSaldoInsuficiente.
func (uc *MovimientoUseCase) Registrar(ctx context.Context, usuarioID string, in dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error) {
	if in.CuentaID == "" || in.Categoria == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Tipo != entity.MovIngreso && in.Tipo != entity.MovEgreso {
		return nil, domain.ErrInvalidInput
	}
	if !in.Monto.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	fecha := time.Now()
	if in.Fecha != "" {
		parsed, err := time.Parse("2006-01-02", in.Fecha)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		fecha = parsed
	}

	mov := &entity.Movimiento{
		ID:          uuid.New().String(),
		CuentaID:    in.CuentaID,
		Tipo:        in.Tipo,
		Categoria:   in.Categoria,
		Monto:       in.Monto,
		Fecha:       fecha,
		Descripcion: in.Descripcion,
		SocioID:     in.SocioID,
		CreadoPor:   usuarioID,
		CreatedAt:   time.Now(),
	}

	err := uc.txRunner.RunTesoreria(ctx, func(
		cuentaRepo repository.CuentaRepository,
		movRepo repository.MovimientoRepository,
	) error {
		cuenta, err := cuentaRepo.GetByID(ctx, in.CuentaID)
		if err != nil {
			return err
		}
		if cuenta == nil {
			return domain.ErrNotFound
		}
		delta := in.Monto
		if in.Tipo == entity.MovEgreso {
			if cuenta.Saldo.LessThan(in.Monto) {
				return domain.ErrSaldoInsuficiente
			}
			delta = in.Monto.Neg()
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		return cuentaRepo.AjustarSaldo(ctx, in.CuentaID, delta)
	})
	if err != nil {
		return nil, err
	}
	return toMovimientoResponse(mov), nil
}

// ListByCuenta lista movimientos de una cuenta con paginación.
func (uc *MovimientoUseCase) ListByCuenta(ctx context.Context, cuentaID string, limit, offset int) ([]*dto.MovimientoResponse, error) {
	if cuentaID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	movs, err := uc.movRepo.ListByCuenta(ctx, cuentaID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovimientoResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovimientoResponse(m))
	}
	return out, nil
}

// Eliminar borra un movimiento y revierte su efecto en el saldo, en una sola
// transacción.
func (uc *MovimientoUseCase) Eliminar(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunTesoreria(ctx, func(
		cuentaRepo repository.CuentaRepository,
		movRepo repository.MovimientoRepository,
	) error {
		mov, err := movRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		delta := mov.Monto.Neg()
		if mov.Tipo == entity.MovEgreso {
			delta = mov.Monto
		}
		if err := movRepo.Delete(ctx, id); err != nil {
			return err
		}
		return cuentaRepo.AjustarSaldo(ctx, mov.CuentaID, delta)
	})
}

func toMovimientoResponse(m *entity.Movimiento) *dto.MovimientoResponse {
	return &dto.MovimientoResponse{
		ID:          m.ID,
		CuentaID:    m.CuentaID,
		Tipo:        m.Tipo,
		Categoria:   m.Categoria,
		Monto:       m.Monto,
		Fecha:       m.Fecha.Format("2006-01-02"),
		Descripcion: m.Descripcion,
		SocioID:     m.SocioID,
		CreadoPor:   m.CreadoPor,
	}
}
