package facturacion

import (
	"context"

	"github.com/tu-usuario/tesoreria-api/internal/application/dto"
	"github.com/tu-usuario/tesoreria-api/internal/domain"
	"github.com/tu-usuario/tesoreria-api/internal/domain/repository"
)

// longitudMinimaDocumento largo mínimo del documento soportado (DNI: 8 dígitos).
// Entradas más cortas cortocircuitan a "no encontrado" sin tocar la red.
const longitudMinimaDocumento = 8

// LookupUseCase resuelve un receptor de boleta por número de documento, para
// prellenar los datos del cliente antes de emitir. Solo lectura.
type LookupUseCase struct {
	socios repository.SocioRepository
}

// NewLookupUseCase construye el caso de uso.
func NewLookupUseCase(socios repository.SocioRepository) *LookupUseCase {
	return &LookupUseCase{socios: socios}
}

// FindByDocument busca el socio por número de documento.
//
//   - (cliente, nil) si existe.
//   - (nil, nil) si no existe, o si el número tiene menos de 8 caracteres
//     (precondición: no vale la pena un round-trip por una entrada incompleta).
//   - (nil, *domain.LookupError) si la consulta al backend falló — distinto de
//     "no encontrado", que es un resultado normal.
func (uc *LookupUseCase) FindByDocument(ctx context.Context, numeroDoc string) (*dto.ClienteBoleta, error) {
	if len(numeroDoc) < longitudMinimaDocumento {
		return nil, nil
	}
	socio, err := uc.socios.GetByNumeroDocumento(ctx, numeroDoc)
	if err != nil {
		return nil, &domain.LookupError{Operacion: "socio por documento", Err: err}
	}
	if socio == nil {
		return nil, nil
	}
	return &dto.ClienteBoleta{
		TipoDocumento:   socio.TipoDocumento,
		NumeroDocumento: socio.NumeroDocumento,
		RazonSocial:     socio.RazonSocial,
		NombreComercial: socio.NombreComercial,
		Direccion:       socio.Direccion,
		Distrito:        socio.Distrito,
		Provincia:       socio.Provincia,
		Departamento:    socio.Departamento,
		Telefono:        socio.Telefono,
		Email:           socio.Email,
		SocioID:         socio.ID,
	}, nil
}
