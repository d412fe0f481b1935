package models

import "time"

// MuteState es el estado vivo de un usuario silenciado. Existe como máximo un
// documento por (guildId, userId); se elimina al quitar el silencio o, de
// forma perezosa, cuando una lectura lo encuentra expirado.
// Colección "mutes".
type MuteState struct {
	GuildID    string     `bson:"guildId" json:"guildId"`
	UserID     string     `bson:"userId" json:"userId"`
	CaseNumber int64      `bson:"caseNumber" json:"caseNumber"`
	ExpiresAt  *time.Time `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
}

// Expired indica si el mute ya venció. Un mute sin expiresAt es permanente.
func (m *MuteState) Expired(now time.Time) bool {
	return m.ExpiresAt != nil && !now.Before(*m.ExpiresAt)
}
