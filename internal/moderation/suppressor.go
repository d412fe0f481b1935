package moderation

import (
	"sync"
	"time"
)

// Default TTLs de supresión. El lote usa un TTL extendido porque bajo carga
// el eco del gateway puede llegar bastante después de la mutación.
const (
	DefaultSuppressionTTL = 15 * time.Second
	BatchSuppressionTTL   = 120 * time.Second
)

type suppression struct {
	guildID   string
	kind      EventKind
	userID    string
	expiresAt time.Time
}

// Suppressor es el libro de acciones propias pendientes de eco: cuando el bot
// ejecuta una mutación que volverá como evento del gateway, registra aquí una
// entrada; el siguiente evento que coincida se atribuye al bot y se consume
// sin crear caso automático.
//
// Estructura en memoria, sin persistencia. La expiración es perezosa: se
// evalúa en cada consulta, no hay barrido en segundo plano. Puede haber
// varias entradas vivas para el mismo (kind, userID); un evento consume
// exactamente una, cualquiera, porque son intercambiables.
type Suppressor struct {
	mu      sync.Mutex
	entries []suppression
	// now es inyectable para las pruebas de expiración.
	now func() time.Time
}

// NewSuppressor crea un ledger vacío.
func NewSuppressor() *Suppressor {
	return &Suppressor{now: time.Now}
}

// Register anota una acción propia que va a generar eco. Debe llamarse antes
// de emitir la mutación: el eco puede llegar antes que la respuesta HTTP.
func (s *Suppressor) Register(guildID string, kind EventKind, userID string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultSuppressionTTL
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, suppression{
		guildID:   guildID,
		kind:      kind,
		userID:    userID,
		expiresAt: s.now().Add(ttl),
	})
}

// IsSuppressed indica si existe una entrada viva para (kind, userID).
func (s *Suppressor) IsSuppressed(guildID string, kind EventKind, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked()
	for _, e := range s.entries {
		if e.guildID == guildID && e.kind == kind && e.userID == userID {
			return true
		}
	}
	return false
}

// Consume elimina una entrada viva que coincida. Es idempotente: consumir
// sin entrada presente no hace nada.
func (s *Suppressor) Consume(guildID string, kind EventKind, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked()
	for i, e := range s.entries {
		if e.guildID == guildID && e.kind == kind && e.userID == userID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len devuelve el número de entradas vivas.
func (s *Suppressor) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked()
	return len(s.entries)
}

// expireLocked descarta las entradas vencidas. Una entrada deja de estar
// viva exactamente en expiresAt: un evento que llega en ese instante se trata
// como evento automático nuevo.
func (s *Suppressor) expireLocked() {
	now := s.now()
	live := s.entries[:0]
	for _, e := range s.entries {
		if now.Before(e.expiresAt) {
			live = append(live, e)
		}
	}
	s.entries = live
}
