// Package moderation implementa el núcleo de reconciliación de acciones de
// moderación: convierte eventos del gateway y comandos de operador en un
// historial de casos por usuario, evitando que los ecos de las acciones del
// propio bot se registren dos veces.
//
// El paquete no conoce discordgo ni mongo: consume las interfaces de
// colaborador definidas aquí, implementadas por internal/platform y
// pkg/database.
package moderation

import (
	"time"

	"github.com/CastorStudios/CentinelaGo/pkg/models"
)

// EventKind clasifica un evento de moderación observado externamente.
type EventKind string

const (
	EventBan        EventKind = "ban"
	EventUnban      EventKind = "unban"
	EventKick       EventKind = "kick"
	EventMemberJoin EventKind = "member_join"
	// EventMemberLeave sólo existe para el feed crudo del log de actividad;
	// el núcleo nunca crea casos con él.
	EventMemberLeave EventKind = "member_leave"
)

// ModerationEvent es un evento del gateway ya normalizado. Es efímero: se
// consume una vez y no se persiste.
type ModerationEvent struct {
	GuildID    string
	UserID     string
	Kind       EventKind
	ObservedAt time.Time
}

// AuditEntry es una entrada cruda del registro de auditoría de la plataforma.
type AuditEntry struct {
	ID          string
	Kind        EventKind
	ModeratorID string
	TargetID    string
	Reason      string
	CreatedAt   time.Time
}

// AuditMatch es el resultado de correlacionar un evento con la auditoría.
type AuditMatch struct {
	ModeratorID string
	EntryID     string
	Reason      string
}

// ActivityEntry es el payload que el núcleo entrega al registro de actividad
// del servidor.
type ActivityEntry struct {
	Kind        EventKind
	UserID      string
	ModeratorID string
	Reason      string
	CaseNumber  int64
	// Count sólo se usa en el resumen de acciones en lote.
	Count int
}

// CaseStore es el almacén de casos (colaborador externo).
type CaseStore interface {
	// CreateCase asigna el número de caso y persiste el documento.
	CreateCase(c *models.Case) (*models.Case, error)
	AddNote(guildID string, caseNumber int64, note models.CaseNote) error
	FindByCaseNumber(guildID string, caseNumber int64) (*models.Case, error)
	FindByUser(guildID, userID string) ([]*models.Case, error)
}

// MuteStore es el almacén del estado de silenciados (colaborador externo).
// FindLiveMute nunca devuelve un mute expirado.
type MuteStore interface {
	FindLiveMute(guildID, userID string) (*models.MuteState, error)
	UpsertMute(guildID, userID string, caseNumber int64, expiresAt *time.Time) error
	ClearMute(guildID, userID string) error
}

// AuditSource entrega las entradas recientes de auditoría de un tipo de
// acción. La búsqueda es un único intento best-effort; el que llama trata un
// error igual que una lista vacía.
type AuditSource interface {
	RecentEntries(guildID string, kind EventKind) ([]AuditEntry, error)
}

// ActivityLog es el registro estructurado de actividad del servidor
// (colaborador externo). IgnoreNext registra una supresión paralela a la del
// núcleo para que el log de eventos no duplique acciones propias.
type ActivityLog interface {
	IgnoreNext(guildID string, kind EventKind, userID string, ttl time.Duration)
	Record(guildID string, entry ActivityEntry)
}

// Actions es la superficie de mutación de la plataforma. Todas las llamadas
// son best-effort, no transaccionales.
type Actions interface {
	Ban(guildID, userID, reason string, deleteDays int) error
	Unban(guildID, userID string) error
	Kick(guildID, userID, reason string) error
	// Timeout aplica o retira (until == nil) el silencio nativo.
	Timeout(guildID, userID string, until *time.Time) error
	SendDirect(userID, content string) error
	SendChannel(channelID, content string) error
	GuildName(guildID string) string
}

// Authority valida que un actor pueda actuar sobre un objetivo (jerarquía de
// roles). Un objetivo que no es miembro del servidor siempre es accionable.
type Authority interface {
	CanActOn(guildID, actorID, targetID string) (bool, error)
}

// ConfigSource resuelve la configuración de moderación de un servidor.
type ConfigSource interface {
	ModConfig(guildID string) *models.GuildModConfig
}
