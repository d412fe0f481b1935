package models

// GuildModConfig es la configuración de moderación por servidor.
// Colección "guild_configs": _id = guildId.
type GuildModConfig struct {
	GuildID           string            `bson:"_id" json:"guildId"`
	NotifyDM          bool              `bson:"notifyDm" json:"notifyDm"`
	NotifyChannel     bool              `bson:"notifyChannel" json:"notifyChannel"`
	FallbackChannelID string            `bson:"fallbackChannelId,omitempty" json:"fallbackChannelId,omitempty"`
	LogChannelID      string            `bson:"logChannelId,omitempty" json:"logChannelId,omitempty"`
	Templates         map[string]string `bson:"templates,omitempty" json:"templates,omitempty"`
}

// DefaultTemplates son las plantillas de notificación usadas cuando el
// servidor no ha configurado las suyas. Los marcadores {server}, {reason},
// {duration} y {moderator} se sustituyen al enviar; los no reconocidos se
// dejan tal cual.
var DefaultTemplates = map[string]string{
	string(CaseWarn):    "⚠️ Has sido advertido en **{server}**.\n**Razón:** {reason}",
	string(CaseMute):    "🔇 Has sido silenciado en **{server}** por {duration}.\n**Razón:** {reason}",
	string(CaseKick):    "👢 Has sido expulsado de **{server}**.\n**Razón:** {reason}",
	string(CaseBan):     "🔨 Has sido baneado de **{server}**.\n**Razón:** {reason}",
	string(CaseSoftban): "🔨 Has sido expulsado de **{server}** (softban).\n**Razón:** {reason}",
}

// TemplateFor devuelve la plantilla configurada para una acción, o la
// plantilla por defecto si el servidor no definió una.
func (c *GuildModConfig) TemplateFor(t CaseType) string {
	if c != nil && c.Templates != nil {
		if tpl, ok := c.Templates[string(t)]; ok && tpl != "" {
			return tpl
		}
	}
	return DefaultTemplates[string(t)]
}
