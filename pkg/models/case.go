package models

import "time"

// CaseType identifica la acción que originó un caso.
type CaseType string

const (
	CaseTypeNote CaseType = "note"
	CaseWarn     CaseType = "warn"
	CaseMute     CaseType = "mute"
	CaseUnmute   CaseType = "unmute"
	CaseKick     CaseType = "kick"
	CaseBan      CaseType = "ban"
	CaseUnban    CaseType = "unban"
	CaseSoftban  CaseType = "softban"
)

// CaseNote es una anotación añadida a un caso existente.
type CaseNote struct {
	ID        string    `bson:"id" json:"id"`
	Body      string    `bson:"body" json:"body"`
	AuthorID  string    `bson:"authorId" json:"authorId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Case es un registro de moderación por usuario. Los casos son inmutables una
// vez creados, salvo por la lista de notas (append-only).
// Colección "cases": guildId + caseNumber es único.
type Case struct {
	GuildID     string     `bson:"guildId" json:"guildId"`
	CaseNumber  int64      `bson:"caseNumber" json:"caseNumber"`
	Type        CaseType   `bson:"type" json:"type"`
	UserID      string     `bson:"userId" json:"userId"`
	ModeratorID string     `bson:"moderatorId,omitempty" json:"moderatorId,omitempty"`
	Reason      string     `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	Automatic   bool       `bson:"automatic" json:"automatic"`
	BatchID     string     `bson:"batchId,omitempty" json:"batchId,omitempty"`
	RefCase     int64      `bson:"refCase,omitempty" json:"refCase,omitempty"`
	Notes       []CaseNote `bson:"notes,omitempty" json:"notes,omitempty"`
}

// CaseCounter lleva el número de caso incremental por servidor.
// Colección "case_counters": _id = guildId.
type CaseCounter struct {
	GuildID string `bson:"_id"`
	Seq     int64  `bson:"seq"`
}
