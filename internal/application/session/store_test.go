package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tesoreria-api/internal/application/authz"
	"github.com/tu-usuario/tesoreria-api/internal/application/session"
	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
	"github.com/tu-usuario/tesoreria-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mock de Resolver con contador de llamadas y bloqueo opcional
// ──────────────────────────────────────────────────────────────────────────────

type mockResolver struct {
	mu       sync.Mutex
	calls    int
	perActor map[string]*authz.Resolution
	err      error
	// block, si no es nil, detiene Resolve hasta que se cierre (para probar
	// resoluciones en vuelo y descartes por obsolescencia).
	block chan struct{}
}

func (m *mockResolver) Resolve(ctx context.Context, actorID string) (*authz.Resolution, error) {
	m.mu.Lock()
	m.calls++
	block := m.block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	if res, ok := m.perActor[actorID]; ok {
		return res, nil
	}
	return &authz.Resolution{ActorID: actorID, Permisos: entity.NewPermissionSet()}, nil
}

func (m *mockResolver) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func actor(id string) *entity.Actor {
	return &entity.Actor{ID: id, Email: id + "@test.pe", ExpiraEn: time.Now().Add(time.Hour)}
}

func esperar(t *testing.T, store *session.Store) session.Snapshot {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	snap, err := store.Espera(ctx)
	require.NoError(t, err)
	return snap
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestSignedIn_ResuelvePermisosDelActor(t *testing.T) {
	resolver := &mockResolver{perActor: map[string]*authz.Resolution{
		"u1": {
			ActorID:  "u1",
			Roles:    []entity.Role{{ID: "r1", Nombre: "tesorero"}},
			Permisos: entity.NewPermissionSet(entity.RutaRaiz, entity.RutaCuentas),
		},
	}}
	store := session.NewStore(resolver, testLogger())

	store.OnAuthEvent(context.Background(), session.Event{Kind: session.SignedIn, Actor: actor("u1")})
	snap := esperar(t, store)

	assert.Equal(t, "u1", snap.Actor.ID)
	assert.True(t, snap.Permisos.Contains(entity.RutaCuentas))
	assert.False(t, snap.Cargando)
	assert.NoError(t, snap.Err)
}

func TestMismoActor_NoReResuelve(t *testing.T) {
	resolver := &mockResolver{}
	store := session.NewStore(resolver, testLogger())
	ctx := context.Background()

	store.OnAuthEvent(ctx, session.Event{Kind: session.SignedIn, Actor: actor("u1")})
	esperar(t, store)
	require.Equal(t, 1, resolver.callCount())

	// Refresh de token y re-sign-in del mismo actor: cero round-trips extra.
	store.OnAuthEvent(ctx, session.Event{Kind: session.TokenRefreshed, Actor: actor("u1")})
	store.OnAuthEvent(ctx, session.Event{Kind: session.SignedIn, Actor: actor("u1")})
	snap := esperar(t, store)

	assert.Equal(t, 1, resolver.callCount(), "el mismo actor no dispara re-resolución")
	assert.Equal(t, "u1", snap.Actor.ID)
}

func TestTokenRefreshed_ActualizaVentanaDeValidez(t *testing.T) {
	resolver := &mockResolver{}
	store := session.NewStore(resolver, testLogger())
	ctx := context.Background()

	store.OnAuthEvent(ctx, session.Event{Kind: session.SignedIn, Actor: actor("u1")})
	esperar(t, store)

	nuevo := actor("u1")
	nuevo.ExpiraEn = time.Now().Add(48 * time.Hour)
	store.OnAuthEvent(ctx, session.Event{Kind: session.TokenRefreshed, Actor: nuevo})

	snap := store.Current()
	assert.Equal(t, nuevo.ExpiraEn, snap.Actor.ExpiraEn)
	assert.Equal(t, 1, resolver.callCount())
}

func TestActorDistinto_ReResuelve(t *testing.T) {
	resolver := &mockResolver{perActor: map[string]*authz.Resolution{
		"u1": {ActorID: "u1", Permisos: entity.NewPermissionSet(entity.RutaRaiz, entity.RutaCuentas)},
		"u2": {ActorID: "u2", Permisos: entity.NewPermissionSet(entity.RutaRaiz, entity.RutaConfiguracion)},
	}}
	store := session.NewStore(resolver, testLogger())
	ctx := context.Background()

	store.OnAuthEvent(ctx, session.Event{Kind: session.SignedIn, Actor: actor("u1")})
	esperar(t, store)
	store.OnAuthEvent(ctx, session.Event{Kind: session.SignedIn, Actor: actor("u2")})
	snap := esperar(t, store)

	assert.Equal(t, 2, resolver.callCount())
	assert.Equal(t, "u2", snap.Actor.ID)
	assert.True(t, snap.Permisos.Contains(entity.RutaConfiguracion))
	assert.False(t, snap.Permisos.Contains(entity.RutaCuentas), "los permisos del actor anterior no sobreviven")
}

func TestSignedOut_LimpiaTodo(t *testing.T) {
	resolver := &mockResolver{}
	store := session.NewStore(resolver, testLogger())
	ctx := context.Background()

	store.OnAuthEvent(ctx, session.Event{Kind: session.SignedIn, Actor: actor("u1")})
	esperar(t, store)
	store.OnAuthEvent(ctx, session.Event{Kind: session.SignedOut})

	snap := store.Current()
	assert.Nil(t, snap.Actor)
	assert.Nil(t, snap.Permisos)
	assert.False(t, snap.Cargando)
}

func TestResolucionFallida_EsFailClosed(t *testing.T) {
	resolver := &mockResolver{err: errors.New("padrón inaccesible")}
	store := session.NewStore(resolver, testLogger())

	store.OnAuthEvent(context.Background(), session.Event{Kind: session.SignedIn, Actor: actor("u1")})
	snap := esperar(t, store)

	assert.NotNil(t, snap.Actor, "la sesión sigue autenticada")
	assert.Nil(t, snap.Permisos, "sin set resuelto nada se autoriza")
	assert.Error(t, snap.Err)
	assert.False(t, authz.IsAuthorized(entity.RutaCuentas, snap.Permisos))
}

func TestResolucionObsoleta_SeDescarta(t *testing.T) {
	// u1 queda bloqueado resolviendo; mientras tanto entra u2. El resultado
	// tardío de u1 no debe pisar el estado de u2.
	block := make(chan struct{})
	resolver := &mockResolver{
		block: block,
		perActor: map[string]*authz.Resolution{
			"u1": {ActorID: "u1", Permisos: entity.NewPermissionSet(entity.RutaRaiz, entity.RutaCuentas)},
			"u2": {ActorID: "u2", Permisos: entity.NewPermissionSet(entity.RutaRaiz, entity.RutaSocios)},
		},
	}
	store := session.NewStore(resolver, testLogger())
	ctx := context.Background()

	store.OnAuthEvent(ctx, session.Event{Kind: session.SignedIn, Actor: actor("u1")})
	store.OnAuthEvent(ctx, session.Event{Kind: session.SignedIn, Actor: actor("u2")})
	close(block)
	snap := esperar(t, store)

	assert.Equal(t, "u2", snap.Actor.ID)
	assert.True(t, snap.Permisos.Contains(entity.RutaSocios))
	assert.False(t, snap.Permisos.Contains(entity.RutaCuentas), "el resultado obsoleto de u1 se descarta")
}

func TestSnapshotAtomico_ActorYPermisosDelMismoInstante(t *testing.T) {
	// Cada snapshot observado debe ser consistente: si hay permisos, son los
	// del actor del snapshot, nunca los de otro.
	resolver := &mockResolver{perActor: map[string]*authz.Resolution{
		"u1": {ActorID: "u1", Permisos: entity.NewPermissionSet(entity.RutaRaiz, entity.RutaCuentas)},
		"u2": {ActorID: "u2", Permisos: entity.NewPermissionSet(entity.RutaRaiz, entity.RutaSocios)},
	}}
	store := session.NewStore(resolver, testLogger())
	ctx := context.Background()

	var mu sync.Mutex
	var inconsistencias []string
	unsub := store.Subscribe(func(snap session.Snapshot) {
		if snap.Actor == nil || snap.Cargando || snap.Permisos == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if snap.Actor.ID == "u1" && snap.Permisos.Contains(entity.RutaSocios) {
			inconsistencias = append(inconsistencias, "u1 con permisos de u2")
		}
		if snap.Actor.ID == "u2" && snap.Permisos.Contains(entity.RutaCuentas) {
			inconsistencias = append(inconsistencias, "u2 con permisos de u1")
		}
	})
	defer unsub()

	store.OnAuthEvent(ctx, session.Event{Kind: session.SignedIn, Actor: actor("u1")})
	esperar(t, store)
	store.OnAuthEvent(ctx, session.Event{Kind: session.SignedIn, Actor: actor("u2")})
	esperar(t, store)

	mu.Lock()
	defer mu.Unlock()
	assert.Empty(t, inconsistencias)
}

func TestEspera_RespetaContexto(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	resolver := &mockResolver{block: block}
	store := session.NewStore(resolver, testLogger())

	store.OnAuthEvent(context.Background(), session.Event{Kind: session.SignedIn, Actor: actor("u1")})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := store.Espera(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// ──────────────────────────────────────────────────────────────────────────────
// Manager
// ──────────────────────────────────────────────────────────────────────────────

func TestManager_SesionPorActor(t *testing.T) {
	resolver := &mockResolver{}
	mgr := session.NewManager(resolver, testLogger())
	ctx := context.Background()

	mgr.Handle(ctx, session.Event{Kind: session.SignedIn, Actor: actor("u1")})
	snap, err := mgr.Snapshot(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", snap.Actor.ID)

	// Actor sin sesión: snapshot vacío, no error.
	vacio, err := mgr.Snapshot(ctx, "u9")
	require.NoError(t, err)
	assert.Nil(t, vacio.Actor)
}

func TestManager_SignedOutDesmontaLaSesion(t *testing.T) {
	resolver := &mockResolver{}
	mgr := session.NewManager(resolver, testLogger())
	ctx := context.Background()

	mgr.Handle(ctx, session.Event{Kind: session.SignedIn, Actor: actor("u1")})
	_, err := mgr.Snapshot(ctx, "u1")
	require.NoError(t, err)

	mgr.Handle(ctx, session.Event{Kind: session.SignedOut, Actor: actor("u1")})
	assert.Nil(t, mgr.Get("u1"))
}
