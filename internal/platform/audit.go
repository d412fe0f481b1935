package platform

import (
	"fmt"

	"github.com/CastorStudios/CentinelaGo/internal/moderation"
	"github.com/bwmarrin/discordgo"
)

// auditFetchLimit acota cuántas entradas se piden por consulta. La ventana de
// recencia del correlator descarta el resto de todos modos.
const auditFetchLimit = 25

// DiscordAuditSource lee el registro de auditoría del guild.
type DiscordAuditSource struct {
	session *discordgo.Session
}

// NewDiscordAuditSource crea el adaptador sobre una sesión abierta.
func NewDiscordAuditSource(session *discordgo.Session) *DiscordAuditSource {
	return &DiscordAuditSource{session: session}
}

func auditAction(kind moderation.EventKind) (discordgo.AuditLogAction, bool) {
	switch kind {
	case moderation.EventBan:
		return discordgo.AuditLogActionMemberBanAdd, true
	case moderation.EventUnban:
		return discordgo.AuditLogActionMemberBanRemove, true
	case moderation.EventKick:
		return discordgo.AuditLogActionMemberKick, true
	}
	return 0, false
}

// RecentEntries devuelve las entradas más recientes del tipo pedido. La marca
// temporal de cada entrada se extrae de su snowflake.
func (s *DiscordAuditSource) RecentEntries(guildID string, kind moderation.EventKind) ([]moderation.AuditEntry, error) {
	action, ok := auditAction(kind)
	if !ok {
		return nil, fmt.Errorf("sin acción de auditoría para %q", kind)
	}

	log, err := s.session.GuildAuditLog(guildID, "", "", int(action), auditFetchLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]moderation.AuditEntry, 0, len(log.AuditLogEntries))
	for _, e := range log.AuditLogEntries {
		createdAt, err := discordgo.SnowflakeTimestamp(e.ID)
		if err != nil {
			continue
		}
		entries = append(entries, moderation.AuditEntry{
			ID:          e.ID,
			Kind:        kind,
			ModeratorID: e.UserID,
			TargetID:    e.TargetID,
			Reason:      e.Reason,
			CreatedAt:   createdAt,
		})
	}
	return entries, nil
}
