package session

import (
	"context"
	"sync"

	"github.com/tu-usuario/tesoreria-api/pkg/logger"
)

// Manager registra un Store por actor con sesión abierta. Es la proyección
// servidor del estado de sesión: los handlers de auth le empujan eventos y el
// middleware de permisos le consulta snapshots. Un mismo actor con varias
// sesiones comparte Store (y por tanto una sola resolución de permisos).
type Manager struct {
	mu       sync.Mutex
	stores   map[string]*Store
	resolver Resolver
	log      *logger.Logger
}

// NewManager construye el registro de sesiones.
func NewManager(resolver Resolver, log *logger.Logger) *Manager {
	return &Manager{
		stores:   make(map[string]*Store),
		resolver: resolver,
		log:      log,
	}
}

// Handle despacha el evento al Store del actor. En signed-in crea el Store si
// no existe; en signed-out lo desmonta (teardown de la sesión).
func (m *Manager) Handle(ctx context.Context, ev Event) {
	switch ev.Kind {
	case SignedOut:
		if ev.Actor == nil {
			return
		}
		m.mu.Lock()
		store, ok := m.stores[ev.Actor.ID]
		delete(m.stores, ev.Actor.ID)
		m.mu.Unlock()
		if ok {
			store.OnAuthEvent(ctx, ev)
		}

	case SignedIn, TokenRefreshed:
		if ev.Actor == nil {
			return
		}
		m.mu.Lock()
		store, ok := m.stores[ev.Actor.ID]
		if !ok {
			store = NewStore(m.resolver, m.log)
			m.stores[ev.Actor.ID] = store
		}
		m.mu.Unlock()
		store.OnAuthEvent(ctx, ev)
	}
}

// Get devuelve el Store del actor, o nil si no tiene sesión abierta.
func (m *Manager) Get(actorID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stores[actorID]
}

// Snapshot espera a que la resolución del actor termine y devuelve su
// snapshot. (Snapshot{}, nil) si el actor no tiene sesión abierta.
func (m *Manager) Snapshot(ctx context.Context, actorID string) (Snapshot, error) {
	store := m.Get(actorID)
	if store == nil {
		return Snapshot{}, nil
	}
	return store.Espera(ctx)
}
