package moderation

import (
	"fmt"
	"time"

	"github.com/CastorStudios/CentinelaGo/pkg/logger"
	"github.com/CastorStudios/CentinelaGo/pkg/models"
	"github.com/google/uuid"
)

const (
	// MassbanCap es el máximo de objetivos por lote.
	MassbanCap = 100
	// MassbanConfirmTimeout acota la espera de la razón del operador.
	MassbanConfirmTimeout = 60 * time.Second
)

// MassbanRequest describe un baneo en lote pendiente de confirmación.
type MassbanRequest struct {
	GuildID     string
	ChannelID   string
	RequesterID string
	TargetIDs   []string
	DeleteDays  int
}

// RunMassban ejecuta un baneo en lote.
//
// La autoridad se comprueba para todos los objetivos antes de tocar ninguno:
// un solo objetivo no permitido aborta el lote completo sin mutaciones. La
// razón llega como mensaje de seguimiento del operador en el mismo canal;
// "cancelar" o el timeout abortan igualmente sin mutar. Cada baneo es
// independiente y best-effort: el fallo de uno no detiene a los demás.
func (e *Engine) RunMassban(req MassbanRequest) (*BatchOutcome, Outcome) {
	targets := dedupe(req.TargetIDs)
	if len(targets) > MassbanCap {
		return nil, Outcome{Status: StatusCancelled, Err: ErrTooManyTargets}
	}
	if len(targets) == 0 {
		return nil, Outcome{Status: StatusCancelled, Err: fmt.Errorf("sin objetivos")}
	}

	for _, t := range targets {
		allowed, err := e.authority.CanActOn(req.GuildID, req.RequesterID, t)
		if err != nil || !allowed {
			out := denied()
			out.Err = fmt.Errorf("%w: objetivo %s", ErrAuthorityDenied, t)
			return nil, out
		}
	}

	prompt := fmt.Sprintf(
		"⚠️ Vas a banear a **%d** usuario(s). Responde en este canal con la razón del baneo, o escribe `cancelar` para abortar. Tienes 60 segundos.",
		len(targets),
	)
	if err := e.actions.SendChannel(req.ChannelID, prompt); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo enviar el aviso de confirmación: %v", err), "Massban")
	}

	reason, err := e.confirms.Wait(req.ChannelID, req.RequesterID, MassbanConfirmTimeout)
	if err != nil {
		return nil, Outcome{Status: StatusCancelled, Err: err}
	}

	batch := &BatchOutcome{
		BatchID:   uuid.New().String(),
		Requested: len(targets),
	}
	for _, t := range targets {
		e.suppressor.Register(req.GuildID, EventBan, t, BatchSuppressionTTL)
		e.activity.IgnoreNext(req.GuildID, EventBan, t, BatchSuppressionTTL)
		e.activity.IgnoreNext(req.GuildID, EventMemberLeave, t, BatchSuppressionTTL)

		if err := e.actions.Ban(req.GuildID, t, reason, req.DeleteDays); err != nil {
			logger.Warn(fmt.Sprintf("Massban: el baneo de %s falló: %v", t, err), "Massban")
			batch.Failed = append(batch.Failed, t)
			continue
		}
		batch.Succeeded = append(batch.Succeeded, t)

		c := &models.Case{
			GuildID:     req.GuildID,
			Type:        models.CaseBan,
			UserID:      t,
			ModeratorID: req.RequesterID,
			Reason:      reason,
			CreatedAt:   time.Now(),
			BatchID:     batch.BatchID,
		}
		created, err := e.cases.CreateCase(c)
		if err != nil {
			logger.Error(fmt.Sprintf("Massban: baneado %s pero el caso no se registró: %v", t, err), "Massban")
			continue
		}
		e.fireCaseHooks(created)
	}

	// Un único registro resumen, y sólo si algo se baneó de verdad.
	if len(batch.Succeeded) > 0 {
		e.activity.Record(req.GuildID, ActivityEntry{
			Kind:        EventBan,
			ModeratorID: req.RequesterID,
			Reason:      reason,
			Count:       len(batch.Succeeded),
		})
	}

	return batch, Outcome{Status: StatusSuccess}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
