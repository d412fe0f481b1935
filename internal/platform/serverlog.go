package platform

import (
	"fmt"
	"time"

	"github.com/CastorStudios/CentinelaGo/internal/moderation"
	"github.com/CastorStudios/CentinelaGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

var activityColors = map[moderation.EventKind]int{
	moderation.EventBan:   0xE74C3C,
	moderation.EventUnban: 0x2ECC71,
	moderation.EventKick:  0xE67E22,
	"warn":                0xF1C40F,
	"mute":                0x95A5A6,
	"unmute":              0x2ECC71,
	"softban":             0xE67E22,
	moderation.EventMemberJoin:  0x3498DB,
	moderation.EventMemberLeave: 0x7F8C8D,
}

var activityTitles = map[moderation.EventKind]string{
	moderation.EventBan:   "🔨 Usuario baneado",
	moderation.EventUnban: "🔓 Usuario desbaneado",
	moderation.EventKick:  "👢 Usuario expulsado",
	"warn":                "⚠️ Usuario advertido",
	"mute":                "🔇 Usuario silenciado",
	"unmute":              "🔊 Silencio retirado",
	"note":                "📝 Nota añadida",
	"softban":             "🔨 Softban aplicado",
	moderation.EventMemberJoin:  "📥 Usuario entró al servidor",
	moderation.EventMemberLeave: "📤 Usuario salió del servidor",
}

// ServerLog publica la actividad de moderación en el canal de log del
// servidor. Mantiene su propio libro de supresiones, paralelo al del núcleo:
// el log también observa eventos crudos del gateway y no debe duplicar las
// acciones que el propio bot ejecutó por comando.
type ServerLog struct {
	session *discordgo.Session
	guilds  moderation.ConfigSource
	ledger  *moderation.Suppressor
}

var serverLogInstance *ServerLog

// NewServerLog crea el log de actividad.
func NewServerLog(session *discordgo.Session, guilds moderation.ConfigSource) *ServerLog {
	return &ServerLog{
		session: session,
		guilds:  guilds,
		ledger:  moderation.NewSuppressor(),
	}
}

// InitServerLog crea el log de actividad global.
func InitServerLog(session *discordgo.Session, guilds moderation.ConfigSource) *ServerLog {
	serverLogInstance = NewServerLog(session, guilds)
	return serverLogInstance
}

// GetServerLog devuelve el log global (nil si no se inicializó).
func GetServerLog() *ServerLog {
	return serverLogInstance
}

// IgnoreNext marca que el siguiente evento crudo de este tipo sobre este
// usuario es una acción propia y no debe loguearse por el camino del gateway.
func (l *ServerLog) IgnoreNext(guildID string, kind moderation.EventKind, userID string, ttl time.Duration) {
	l.ledger.Register(guildID, kind, userID, ttl)
}

// Record publica una entrada de actividad ya reconciliada (camino del núcleo).
func (l *ServerLog) Record(guildID string, entry moderation.ActivityEntry) {
	cfg := l.guilds.ModConfig(guildID)
	if cfg == nil || cfg.LogChannelID == "" {
		return
	}

	title := activityTitles[entry.Kind]
	if title == "" {
		title = "Acción de moderación"
	}
	if entry.Count > 0 {
		title = fmt.Sprintf("🔨 Baneo masivo: %d usuarios", entry.Count)
	}

	embed := &discordgo.MessageEmbed{
		Title:     title,
		Color:     activityColors[entry.Kind],
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if entry.UserID != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Usuario", Value: fmt.Sprintf("<@%s> (`%s`)", entry.UserID, entry.UserID), Inline: true,
		})
	}
	moderator := "Desconocido"
	if entry.ModeratorID != "" {
		moderator = fmt.Sprintf("<@%s>", entry.ModeratorID)
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "Moderador", Value: moderator, Inline: true,
	})
	if entry.Reason != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Razón", Value: entry.Reason,
		})
	}
	if entry.CaseNumber > 0 {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Caso #%d", entry.CaseNumber)}
	}

	if _, err := l.session.ChannelMessageSendEmbed(cfg.LogChannelID, embed); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo publicar en el log de %s: %v", guildID, err), "ServerLog")
	}
}

// LogGatewayEvent publica un evento crudo del gateway que no pasó por el
// núcleo (p. ej. salidas de miembros). Consume primero el libro de acciones
// propias; si el evento era nuestro, se descarta en silencio.
func (l *ServerLog) LogGatewayEvent(guildID string, kind moderation.EventKind, userID string) {
	if l.ledger.Consume(guildID, kind, userID) {
		return
	}
	l.Record(guildID, moderation.ActivityEntry{Kind: kind, UserID: userID})
}
