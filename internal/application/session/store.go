// Package session mantiene el estado de sesión del actor autenticado y su
// autorización derivada. El Store reemplaza el singleton implícito de sesión:
// se inicializa explícitamente, se inyecta en quien lo necesita y se
// desmonta al cerrar sesión.
package session

import (
	"context"
	"sync"

	"github.com/tu-usuario/tesoreria-api/internal/application/authz"
	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
	"github.com/tu-usuario/tesoreria-api/pkg/logger"
)

// EventKind tipo de evento de autenticación empujado por el proveedor.
type EventKind string

const (
	SignedIn       EventKind = "signed-in"
	SignedOut      EventKind = "signed-out"
	TokenRefreshed EventKind = "token-refreshed"
)

// Event evento de autenticación: clase, actor y validez de sesión.
type Event struct {
	Kind  EventKind
	Actor *entity.Actor // nil en signed-out
}

// Snapshot estado observable de la sesión en un instante. Actor y permisos
// viajan siempre juntos: jamás se observa un actor con un set desfasado.
type Snapshot struct {
	Actor    *entity.Actor
	Roles    []entity.Role
	Permisos entity.PermissionSet // nil mientras carga o tras un fallo (fail-closed)
	Cargando bool                 // resolución en vuelo: la navegación protegida debe bloquear
	Err      error                // último fallo de resolución, reportable al usuario
}

// Resolver es el contrato mínimo que el Store necesita para derivar permisos.
// Lo implementa *authz.Resolver; la interfaz permite mocks en tests.
type Resolver interface {
	Resolve(ctx context.Context, actorID string) (*authz.Resolution, error)
}

// Store estado de sesión de UN actor. Todo cambio pasa por una única función
// de transición (swap) bajo mutex: los campos nunca se escriben por separado.
type Store struct {
	mu       sync.Mutex
	snap     Snapshot
	resolver Resolver
	log      *logger.Logger

	// cancelResolve cancela la resolución en vuelo cuando un evento posterior
	// la vuelve obsoleta, en lugar de solo ignorar su resultado.
	cancelResolve context.CancelFunc
	// resolveDone se cierra al terminar (o descartar) la resolución en vuelo.
	resolveDone chan struct{}

	subs    map[int]func(Snapshot)
	nextSub int
}

// NewStore construye un Store vacío (sin actor).
func NewStore(resolver Resolver, log *logger.Logger) *Store {
	return &Store{
		resolver: resolver,
		log:      log.Modulo("session"),
		subs:     make(map[int]func(Snapshot)),
	}
}

// Current devuelve el snapshot actual. La ausencia de actor es un estado
// terminal válido, no un error.
func (s *Store) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Subscribe registra un observador de cambios de snapshot y devuelve el
// handle para darse de baja. El handle debe llamarse en el teardown del
// consumidor para liberar la suscripción.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// OnAuthEvent consume un evento del proveedor de autenticación.
//
//   - signed-in con actor DISTINTO al actual: re-resolución completa de
//     roles/permisos, etiquetada con el ID del actor destino.
//   - signed-in / token-refreshed con el MISMO actor: se actualiza solo el
//     registro del actor (ventana de validez); los permisos NO se vuelven a
//     consultar — un refresh de token rutinario no cuesta round-trips.
//   - signed-out: se limpia actor y permisos por completo y se cancela
//     cualquier resolución en vuelo.
func (s *Store) OnAuthEvent(ctx context.Context, ev Event) {
	switch ev.Kind {
	case SignedOut:
		s.transition(func(snap *Snapshot) {
			*snap = Snapshot{}
		}, true)

	case SignedIn, TokenRefreshed:
		if ev.Actor == nil {
			return
		}
		s.mu.Lock()
		mismoActor := s.snap.Actor != nil && s.snap.Actor.ID == ev.Actor.ID
		s.mu.Unlock()

		if mismoActor {
			// Revalidación de sesión: solo el registro del actor.
			s.transition(func(snap *Snapshot) {
				snap.Actor = ev.Actor
			}, false)
			return
		}
		s.beginResolution(ctx, ev.Actor)
	}
}

// Espera bloquea hasta que no haya resolución en vuelo y devuelve el snapshot
// resultante. Es la primitiva con la que la navegación protegida "bloquea, no
// deniega en silencio" mientras carga.
func (s *Store) Espera(ctx context.Context) (Snapshot, error) {
	for {
		s.mu.Lock()
		done := s.resolveDone
		cargando := s.snap.Cargando
		snap := s.snap
		s.mu.Unlock()

		if !cargando || done == nil {
			return snap, nil
		}
		select {
		case <-done:
			// siguiente vuelta relee el snapshot (pudo encadenarse otra resolución)
		case <-ctx.Done():
			return Snapshot{}, ctx.Err()
		}
	}
}

// beginResolution arranca la resolución para el actor, cancelando la anterior.
// El resultado se descarta si al completarse el actor actual ya no es el
// etiquetado (protección contra resultados obsoletos fuera de orden).
func (s *Store) beginResolution(ctx context.Context, actor *entity.Actor) {
	resolveCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	s.mu.Lock()
	if s.cancelResolve != nil {
		s.cancelResolve()
	}
	s.cancelResolve = cancel
	s.resolveDone = done
	// Actor nuevo y estado de carga entran juntos, atómicamente: nadie observa
	// al actor nuevo con los permisos del anterior.
	s.snap = Snapshot{Actor: actor, Cargando: true}
	s.mu.Unlock()
	s.notify()

	tag := actor.ID
	go func() {
		defer close(done)
		res, err := s.resolver.Resolve(resolveCtx, tag)

		s.mu.Lock()
		if s.resolveDone != done || s.snap.Actor == nil || s.snap.Actor.ID != tag {
			// El actor cambió (o esta resolución fue reemplazada) mientras
			// resolvíamos: resultado obsoleto, no debe pisar estado más nuevo.
			s.mu.Unlock()
			s.log.Debug().Str("actor", tag).Msg("resolución obsoleta descartada")
			return
		}
		if err != nil {
			// Fail-closed: roles vacíos, set ausente, error reportable.
			s.snap.Roles = nil
			s.snap.Permisos = nil
			s.snap.Cargando = false
			s.snap.Err = err
			s.mu.Unlock()
			s.notify()
			s.log.Error().Err(err).Str("actor", tag).Msg("resolución de permisos fallida")
			return
		}
		s.snap.Roles = res.Roles
		s.snap.Permisos = res.Permisos
		s.snap.Cargando = false
		s.snap.Err = nil
		s.mu.Unlock()
		s.notify()
	}()
}

// transition aplica un cambio atómico al snapshot y notifica.
// cancelInflight además cancela la resolución en vuelo (sign-out).
func (s *Store) transition(fn func(*Snapshot), cancelInflight bool) {
	s.mu.Lock()
	if cancelInflight && s.cancelResolve != nil {
		s.cancelResolve()
		s.cancelResolve = nil
		s.resolveDone = nil
	}
	fn(&s.snap)
	s.mu.Unlock()
	s.notify()
}

func (s *Store) notify() {
	s.mu.Lock()
	snap := s.snap
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}
