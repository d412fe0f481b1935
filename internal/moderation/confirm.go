package moderation

import (
	"strings"
	"sync"
	"time"
)

// ConfirmResult es la resolución de una confirmación pendiente.
type ConfirmResult struct {
	Reason    string
	Cancelled bool
}

// ConfirmRegistry correlaciona una petición de confirmación con la respuesta
// que llega por el flujo normal de eventos de mensaje, en lugar de bloquear
// al manejador del comando sobre el gateway. Cada token se identifica por
// (channelID, requesterID); la resolución o el timeout lo retiran.
type ConfirmRegistry struct {
	mu      sync.Mutex
	pending map[string]chan ConfirmResult
}

// NewConfirmRegistry crea un registro vacío.
func NewConfirmRegistry() *ConfirmRegistry {
	return &ConfirmRegistry{pending: make(map[string]chan ConfirmResult)}
}

func confirmKey(channelID, requesterID string) string {
	return channelID + ":" + requesterID
}

// Wait registra el token y espera la respuesta del operador con un timeout
// acotado. Un timeout devuelve ErrConfirmationTimeout; una respuesta
// "cancelar" devuelve ErrCancelled. En ambos casos el que llama debe abortar
// sin ejecutar mutación alguna.
func (r *ConfirmRegistry) Wait(channelID, requesterID string, timeout time.Duration) (string, error) {
	key := confirmKey(channelID, requesterID)
	ch := make(chan ConfirmResult, 1)

	r.mu.Lock()
	// Un token previo del mismo operador en el mismo canal queda huérfano;
	// su Wait verá el timeout.
	r.pending[key] = ch
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		if r.pending[key] == ch {
			delete(r.pending, key)
		}
		r.mu.Unlock()
	}()

	select {
	case res := <-ch:
		if res.Cancelled {
			return "", ErrCancelled
		}
		return res.Reason, nil
	case <-time.After(timeout):
		return "", ErrConfirmationTimeout
	}
}

// Resolve entrega la respuesta de un operador si hay un token pendiente para
// (channelID, authorID). Devuelve true si el mensaje consumió un token; el
// manejador de mensajes lo usa para saber si debe tratar el mensaje como
// respuesta de confirmación.
func (r *ConfirmRegistry) Resolve(channelID, authorID, content string) bool {
	key := confirmKey(channelID, authorID)

	r.mu.Lock()
	ch, ok := r.pending[key]
	if ok {
		delete(r.pending, key)
	}
	r.mu.Unlock()
	if !ok {
		return false
	}

	content = strings.TrimSpace(content)
	res := ConfirmResult{Reason: content}
	if strings.EqualFold(content, "cancelar") || strings.EqualFold(content, "cancel") {
		res = ConfirmResult{Cancelled: true}
	}
	ch <- res
	return true
}

// PendingCount devuelve cuántos tokens siguen sin resolver.
func (r *ConfirmRegistry) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
