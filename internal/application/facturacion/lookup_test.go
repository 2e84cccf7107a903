package facturacion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tesoreria-api/internal/domain"
	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mock de repositorio de socios
// ──────────────────────────────────────────────────────────────────────────────

type mockSocioRepo struct {
	porDocumento map[string]*entity.SocioTitular
	err          error
	getCalls     int
}

func (m *mockSocioRepo) Create(ctx context.Context, socio *entity.SocioTitular) error { return nil }
func (m *mockSocioRepo) GetByID(ctx context.Context, id string) (*entity.SocioTitular, error) {
	return nil, nil
}
func (m *mockSocioRepo) GetByNumeroDocumento(ctx context.Context, numeroDoc string) (*entity.SocioTitular, error) {
	m.getCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.porDocumento[numeroDoc], nil
}
func (m *mockSocioRepo) List(ctx context.Context, limit, offset int) ([]*entity.SocioTitular, error) {
	return nil, nil
}
func (m *mockSocioRepo) Update(ctx context.Context, socio *entity.SocioTitular) error { return nil }
func (m *mockSocioRepo) Delete(ctx context.Context, id string) error                  { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestFindByDocument_DocumentoCortoNoConsulta(t *testing.T) {
	repo := &mockSocioRepo{}
	uc := NewLookupUseCase(repo)

	for _, doc := range []string{"", "1", "1234567"} {
		cliente, err := uc.FindByDocument(context.Background(), doc)
		assert.NoError(t, err)
		assert.Nil(t, cliente)
	}
	assert.Equal(t, 0, repo.getCalls, "un documento incompleto no vale un round-trip")
}

func TestFindByDocument_Encontrado(t *testing.T) {
	repo := &mockSocioRepo{porDocumento: map[string]*entity.SocioTitular{
		"45678901": {
			ID:              "socio-1",
			TipoDocumento:   "1",
			NumeroDocumento: "45678901",
			RazonSocial:     "PEREZ GOMEZ JUAN",
			Direccion:       "AV. AREQUIPA 1234",
			Distrito:        "LINCE",
			Provincia:       "LIMA",
			Departamento:    "LIMA",
			Email:           "jperez@test.pe",
		},
	}}
	uc := NewLookupUseCase(repo)

	cliente, err := uc.FindByDocument(context.Background(), "45678901")
	require.NoError(t, err)
	require.NotNil(t, cliente)

	assert.Equal(t, "socio-1", cliente.SocioID)
	assert.Equal(t, "1", cliente.TipoDocumento)
	assert.Equal(t, "45678901", cliente.NumeroDocumento)
	assert.Equal(t, "PEREZ GOMEZ JUAN", cliente.RazonSocial)
	assert.Equal(t, "LINCE", cliente.Distrito)
	assert.Equal(t, 1, repo.getCalls)
}

func TestFindByDocument_NoEncontradoEsResultadoNormal(t *testing.T) {
	repo := &mockSocioRepo{}
	uc := NewLookupUseCase(repo)

	cliente, err := uc.FindByDocument(context.Background(), "99999999")
	assert.NoError(t, err)
	assert.Nil(t, cliente)
}

func TestFindByDocument_FalloDeConsultaEsLookupError(t *testing.T) {
	causa := errors.New("conexión rechazada")
	repo := &mockSocioRepo{err: causa}
	uc := NewLookupUseCase(repo)

	cliente, err := uc.FindByDocument(context.Background(), "45678901")
	assert.Nil(t, cliente)

	var lerr *domain.LookupError
	require.ErrorAs(t, err, &lerr)
	assert.ErrorIs(t, err, causa)
}
