// Package socios administra el padrón de socios titulares y sus documentos
// obligatorios.
package socios

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/tesoreria-api/internal/application/dto"
	"github.com/tu-usuario/tesoreria-api/internal/domain"
	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
	"github.com/tu-usuario/tesoreria-api/internal/domain/repository"
)

// largos esperados por tipo de documento (catálogo SUNAT 06).
var largoDocumento = map[string]int{
	entity.DocDNI: 8,
	entity.DocRUC: 11,
}

// UseCase casos de uso del padrón de socios.
type UseCase struct {
	repo repository.SocioRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.SocioRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create registra un socio. El número de documento es único en el padrón.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateSocioRequest) (*dto.SocioResponse, error) {
	if err := validarDocumento(in.TipoDocumento, in.NumeroDocumento); err != nil {
		return nil, err
	}
	if in.RazonSocial == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByNumeroDocumento(ctx, in.NumeroDocumento)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	socio := &entity.SocioTitular{
		ID:              uuid.New().String(),
		TipoDocumento:   in.TipoDocumento,
		NumeroDocumento: in.NumeroDocumento,
		RazonSocial:     in.RazonSocial,
		NombreComercial: in.NombreComercial,
		Direccion:       in.Direccion,
		Distrito:        in.Distrito,
		Provincia:       in.Provincia,
		Departamento:    in.Departamento,
		Telefono:        in.Telefono,
		Email:           in.Email,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, socio); err != nil {
		return nil, err
	}
	return toSocioResponse(socio), nil
}

// GetByID obtiene un socio.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.SocioResponse, error) {
	socio, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if socio == nil {
		return nil, domain.ErrNotFound
	}
	return toSocioResponse(socio), nil
}

// List lista el padrón con paginación.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*dto.SocioResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SocioResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSocioResponse(s))
	}
	return out, nil
}

// Update actualiza los datos de contacto y dirección del socio. El documento
// no cambia: es la identidad del registro.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.CreateSocioRequest) (*dto.SocioResponse, error) {
	socio, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if socio == nil {
		return nil, domain.ErrNotFound
	}
	if in.RazonSocial != "" {
		socio.RazonSocial = in.RazonSocial
	}
	socio.NombreComercial = in.NombreComercial
	socio.Direccion = in.Direccion
	socio.Distrito = in.Distrito
	socio.Provincia = in.Provincia
	socio.Departamento = in.Departamento
	socio.Telefono = in.Telefono
	socio.Email = in.Email
	socio.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, socio); err != nil {
		return nil, err
	}
	return toSocioResponse(socio), nil
}

// Delete elimina un socio del padrón.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.repo.Delete(ctx, id)
}

func validarDocumento(tipo, numero string) error {
	largo, ok := largoDocumento[tipo]
	if !ok {
		return domain.ErrInvalidInput
	}
	if len(numero) != largo {
		return domain.ErrInvalidInput
	}
	for _, r := range numero {
		if r < '0' || r > '9' {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func toSocioResponse(s *entity.SocioTitular) *dto.SocioResponse {
	return &dto.SocioResponse{
		ID:              s.ID,
		TipoDocumento:   s.TipoDocumento,
		NumeroDocumento: s.NumeroDocumento,
		RazonSocial:     s.RazonSocial,
		NombreComercial: s.NombreComercial,
		Direccion:       s.Direccion,
		Distrito:        s.Distrito,
		Provincia:       s.Provincia,
		Departamento:    s.Departamento,
		Telefono:        s.Telefono,
		Email:           s.Email,
	}
}
