package moderation

import (
	"fmt"
	"time"

	"github.com/CastorStudios/CentinelaGo/pkg/logger"
)

// DefaultAuditWindow acota qué tan vieja puede ser una entrada de auditoría
// para atribuirse a un evento recién observado. La auditoría de la plataforma
// se llena de forma asíncrona y puede tardar; fuera de esta ventana una
// entrada se considera ruido de otra acción.
const DefaultAuditWindow = 3 * time.Minute

// Correlator recupera, con un único intento best-effort, el moderador que
// ejecutó una acción observada externamente.
type Correlator struct {
	source AuditSource
	window time.Duration
	now    func() time.Time
}

// NewCorrelator crea un correlator sobre una fuente de auditoría.
func NewCorrelator(source AuditSource) *Correlator {
	return &Correlator{source: source, window: DefaultAuditWindow, now: time.Now}
}

// Correlate busca la entrada más reciente cuyo tipo de acción y objetivo
// coincidan, dentro de la ventana de recencia. Devuelve nil si no hay
// coincidencia o si la consulta falla: la ausencia significa "actor
// desconocido", nunca "nadie actuó", y jamás se propaga como error duro.
func (c *Correlator) Correlate(guildID string, kind EventKind, subjectUserID string) *AuditMatch {
	entries, err := c.source.RecentEntries(guildID, kind)
	if err != nil {
		logger.Debug(fmt.Sprintf("Auditoría no disponible para %s/%s: %v", guildID, kind, err), "Correlator")
		return nil
	}

	cutoff := c.now().Add(-c.window)
	var best *AuditEntry
	for i := range entries {
		e := &entries[i]
		if e.Kind != kind || e.TargetID != subjectUserID {
			continue
		}
		if e.CreatedAt.Before(cutoff) {
			continue
		}
		if best == nil || e.CreatedAt.After(best.CreatedAt) {
			best = e
		}
	}
	if best == nil {
		return nil
	}
	return &AuditMatch{ModeratorID: best.ModeratorID, EntryID: best.ID, Reason: best.Reason}
}
