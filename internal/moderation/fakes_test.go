package moderation

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/CastorStudios/CentinelaGo/pkg/models"
)

// In-memory fakes for the collaborator interfaces. Shared by the engine,
// massban and correlator tests.

type fakeCaseStore struct {
	mu        sync.Mutex
	seq       int64
	cases     map[string]*models.Case // key guildID:caseNumber
	createErr error
}

func newFakeCaseStore() *fakeCaseStore {
	return &fakeCaseStore{cases: make(map[string]*models.Case)}
}

func (s *fakeCaseStore) CreateCase(c *models.Case) (*models.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.seq++
	cp := *c
	cp.CaseNumber = s.seq
	s.cases[fmt.Sprintf("%s:%d", cp.GuildID, cp.CaseNumber)] = &cp
	return &cp, nil
}

func (s *fakeCaseStore) AddNote(guildID string, caseNumber int64, note models.CaseNote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cases[fmt.Sprintf("%s:%d", guildID, caseNumber)]
	if !ok {
		return errors.New("caso no encontrado")
	}
	c.Notes = append(c.Notes, note)
	return nil
}

func (s *fakeCaseStore) FindByCaseNumber(guildID string, caseNumber int64) (*models.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cases[fmt.Sprintf("%s:%d", guildID, caseNumber)]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (s *fakeCaseStore) FindByUser(guildID, userID string) ([]*models.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Case
	for _, c := range s.cases {
		if c.GuildID == guildID && c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCaseStore) all() []*models.Case {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Case, 0, len(s.cases))
	for _, c := range s.cases {
		out = append(out, c)
	}
	return out
}

type fakeMuteStore struct {
	mu    sync.Mutex
	mutes map[string]*models.MuteState
}

func newFakeMuteStore() *fakeMuteStore {
	return &fakeMuteStore{mutes: make(map[string]*models.MuteState)}
}

func (s *fakeMuteStore) FindLiveMute(guildID, userID string) (*models.MuteState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.mutes[guildID+":"+userID]
	if !ok || m.Expired(time.Now()) {
		return nil, nil
	}
	return m, nil
}

func (s *fakeMuteStore) UpsertMute(guildID, userID string, caseNumber int64, expiresAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mutes[guildID+":"+userID] = &models.MuteState{
		GuildID:    guildID,
		UserID:     userID,
		CaseNumber: caseNumber,
		ExpiresAt:  expiresAt,
	}
	return nil
}

func (s *fakeMuteStore) ClearMute(guildID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.mutes, guildID+":"+userID)
	return nil
}

type actionCall struct {
	op     string
	userID string
}

type fakeActions struct {
	mu       sync.Mutex
	calls    []actionCall
	banErr   map[string]error // per target
	kickErr  error
	timeErr  error
	unbanErr error
	dmErr    error
	chanErr  error
	sent     []string // channel messages
	dms      []string
}

func newFakeActions() *fakeActions {
	return &fakeActions{banErr: make(map[string]error)}
}

func (a *fakeActions) record(op, userID string) {
	a.mu.Lock()
	a.calls = append(a.calls, actionCall{op: op, userID: userID})
	a.mu.Unlock()
}

func (a *fakeActions) Ban(guildID, userID, reason string, deleteDays int) error {
	a.record("ban", userID)
	return a.banErr[userID]
}

func (a *fakeActions) Unban(guildID, userID string) error {
	a.record("unban", userID)
	return a.unbanErr
}

func (a *fakeActions) Kick(guildID, userID, reason string) error {
	a.record("kick", userID)
	return a.kickErr
}

func (a *fakeActions) Timeout(guildID, userID string, until *time.Time) error {
	a.record("timeout", userID)
	return a.timeErr
}

func (a *fakeActions) SendDirect(userID, content string) error {
	a.record("dm", userID)
	if a.dmErr != nil {
		return a.dmErr
	}
	a.mu.Lock()
	a.dms = append(a.dms, content)
	a.mu.Unlock()
	return nil
}

func (a *fakeActions) SendChannel(channelID, content string) error {
	a.record("channel", channelID)
	if a.chanErr != nil {
		return a.chanErr
	}
	a.mu.Lock()
	a.sent = append(a.sent, content)
	a.mu.Unlock()
	return nil
}

func (a *fakeActions) GuildName(guildID string) string { return "Testland" }

func (a *fakeActions) countOp(op string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, c := range a.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

type fakeAuthority struct {
	deny map[string]bool // target -> denied
	err  error
}

func (a *fakeAuthority) CanActOn(guildID, actorID, targetID string) (bool, error) {
	if a.err != nil {
		return false, a.err
	}
	return !a.deny[targetID], nil
}

type fakeAuditSource struct {
	entries []AuditEntry
	err     error
}

func (a *fakeAuditSource) RecentEntries(guildID string, kind EventKind) ([]AuditEntry, error) {
	return a.entries, a.err
}

type fakeActivityLog struct {
	mu      sync.Mutex
	ignored []string
	records []ActivityEntry
}

func (l *fakeActivityLog) IgnoreNext(guildID string, kind EventKind, userID string, ttl time.Duration) {
	l.mu.Lock()
	l.ignored = append(l.ignored, string(kind)+":"+userID)
	l.mu.Unlock()
}

func (l *fakeActivityLog) Record(guildID string, entry ActivityEntry) {
	l.mu.Lock()
	l.records = append(l.records, entry)
	l.mu.Unlock()
}

type fakeConfigSource struct {
	cfg *models.GuildModConfig
}

func (s *fakeConfigSource) ModConfig(guildID string) *models.GuildModConfig {
	if s.cfg != nil {
		return s.cfg
	}
	return &models.GuildModConfig{GuildID: guildID, NotifyDM: true}
}

type testEngine struct {
	engine    *Engine
	cases     *fakeCaseStore
	mutes     *fakeMuteStore
	audit     *fakeAuditSource
	activity  *fakeActivityLog
	actions   *fakeActions
	authority *fakeAuthority
	guilds    *fakeConfigSource
}

func newTestEngine() *testEngine {
	te := &testEngine{
		cases:     newFakeCaseStore(),
		mutes:     newFakeMuteStore(),
		audit:     &fakeAuditSource{},
		activity:  &fakeActivityLog{},
		actions:   newFakeActions(),
		authority: &fakeAuthority{deny: make(map[string]bool)},
		guilds:    &fakeConfigSource{},
	}
	te.engine = New(Config{
		Cases:     te.cases,
		Mutes:     te.mutes,
		Audit:     te.audit,
		Activity:  te.activity,
		Actions:   te.actions,
		Authority: te.authority,
		Guilds:    te.guilds,
	})
	return te
}
