// Package mod - shared rendering and parsing helpers for /mod subcommands
package mod

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/CastorStudios/CentinelaGo/internal/moderation"
	"github.com/CastorStudios/CentinelaGo/pkg/discord"
)

// maxMuteDuration es el máximo que admite el timeout nativo de Discord.
const maxMuteDuration = 28 * 24 * time.Hour

// replyOutcome convierte el desenlace del motor en la respuesta al operador.
// notifyRelevant indica si la acción intentó notificar al usuario (las
// acciones punitivas); para el resto el aviso de notificación se omite.
func replyOutcome(ctx *discord.CommandContext, out moderation.Outcome, success string, notifyRelevant bool) error {
	switch out.Status {
	case moderation.StatusDenied:
		return ctx.ReplyEphemeral("⛔ No puedes actuar sobre ese usuario: su rol es igual o superior al tuyo.")
	case moderation.StatusMutationFailed:
		if errors.Is(out.Err, moderation.ErrNoLiveMute) {
			return ctx.ReplyEphemeral("❌ Ese usuario no está silenciado.")
		}
		return ctx.ReplyEphemeral("❌ La acción no pudo completarse. Revisa los permisos del bot.")
	case moderation.StatusCancelled:
		return ctx.ReplyEphemeral("🚫 Operación cancelada.")
	}

	msg := success
	if out.Case != nil {
		msg += fmt.Sprintf(" (Caso #%d)", out.Case.CaseNumber)
	}
	if notifyRelevant && !out.Notified {
		msg += "\n⚠️ No se pudo notificar al usuario."
	}
	if out.Case == nil && out.Err != nil {
		msg += "\n⚠️ El caso no pudo registrarse en la base de datos."
	}
	return ctx.Reply(msg)
}

// parseDuration acepta duraciones estilo "30m", "2h", "7d". Devuelve cero
// para la cadena vacía (permanente).
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, nil
	}

	// Los días no existen en time.ParseDuration.
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil || days <= 0 {
			return 0, fmt.Errorf("duración inválida: %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("duración inválida: %q", s)
	}
	return d, nil
}

// parseUserIDs extrae IDs de usuario de una lista separada por espacios,
// aceptando menciones (<@123>, <@!123>) e IDs crudos.
func parseUserIDs(raw string) []string {
	fields := strings.Fields(raw)
	ids := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimPrefix(f, "<@")
		f = strings.TrimPrefix(f, "!")
		f = strings.TrimSuffix(f, ">")
		if f == "" {
			continue
		}
		if _, err := strconv.ParseUint(f, 10, 64); err != nil {
			continue
		}
		ids = append(ids, f)
	}
	return ids
}
