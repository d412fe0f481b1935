package moderation

import (
	"fmt"
	"sync"
	"time"

	"github.com/CastorStudios/CentinelaGo/pkg/logger"
	"github.com/CastorStudios/CentinelaGo/pkg/models"
	"github.com/google/uuid"
)

// Config son los colaboradores que el motor consume.
type Config struct {
	Cases     CaseStore
	Mutes     MuteStore
	Audit     AuditSource
	Activity  ActivityLog
	Actions   Actions
	Authority Authority
	Guilds    ConfigSource
}

// Engine es el orquestador de casos: decide, para cada evento o comando, si
// crear un caso nuevo, adjuntarse a un caso abierto o descartar el evento
// como eco de una acción propia.
type Engine struct {
	cases     CaseStore
	mutes     MuteStore
	activity  ActivityLog
	actions   Actions
	authority Authority
	guilds    ConfigSource

	suppressor *Suppressor
	correlator *Correlator
	notifier   *Notifier
	confirms   *ConfirmRegistry

	// subjects serializa las operaciones sobre un mismo (guild, user) para
	// que la comprobación caso-abierto/crear sea atómica bajo interleaving.
	subjects sync.Map // string -> *sync.Mutex

	hookMu sync.RWMutex
	onCase []func(*models.Case)
}

var (
	engine *Engine
	once   sync.Once
)

// Init inicializa el motor global.
func Init(cfg Config) *Engine {
	once.Do(func() {
		engine = New(cfg)
	})
	return engine
}

// Get devuelve el motor global.
func Get() *Engine {
	return engine
}

// New crea un motor con sus componentes internos.
func New(cfg Config) *Engine {
	return &Engine{
		cases:      cfg.Cases,
		mutes:      cfg.Mutes,
		activity:   cfg.Activity,
		actions:    cfg.Actions,
		authority:  cfg.Authority,
		guilds:     cfg.Guilds,
		suppressor: NewSuppressor(),
		correlator: NewCorrelator(cfg.Audit),
		notifier:   NewNotifier(cfg.Actions),
		confirms:   NewConfirmRegistry(),
	}
}

// OnCaseCreated registra un hook que se dispara con cada caso persistido
// (feed web, MQTT).
func (e *Engine) OnCaseCreated(fn func(*models.Case)) {
	e.hookMu.Lock()
	e.onCase = append(e.onCase, fn)
	e.hookMu.Unlock()
}

func (e *Engine) fireCaseHooks(c *models.Case) {
	e.hookMu.RLock()
	hooks := e.onCase
	e.hookMu.RUnlock()
	for _, fn := range hooks {
		fn(c)
	}
}

// ResolveConfirmation entrega un mensaje entrante al registro de
// confirmaciones pendientes. Lo llama el manejador de MessageCreate.
func (e *Engine) ResolveConfirmation(channelID, authorID, content string) bool {
	return e.confirms.Resolve(channelID, authorID, content)
}

func (e *Engine) subjectLock(guildID, userID string) *sync.Mutex {
	v, _ := e.subjects.LoadOrStore(guildID+":"+userID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func caseTypeForEvent(kind EventKind) models.CaseType {
	switch kind {
	case EventBan:
		return models.CaseBan
	case EventUnban:
		return models.CaseUnban
	case EventKick:
		return models.CaseKick
	}
	return models.CaseTypeNote
}

// HandleEvent procesa un evento del gateway ya normalizado.
//
// Si el evento es el eco de una acción propia, consume la supresión y lo
// descarta: el camino del comando ya creó (o va a crear) el caso. Si no,
// correlaciona con la auditoría y crea un caso automático; la ausencia de
// coincidencia nunca bloquea la creación, sólo deja el moderador ausente.
func (e *Engine) HandleEvent(ev ModerationEvent) (*models.Case, error) {
	if ev.Kind == EventMemberJoin {
		return nil, e.handleMemberJoin(ev)
	}

	if e.suppressor.Consume(ev.GuildID, ev.Kind, ev.UserID) {
		logger.Debug(fmt.Sprintf("Eco propio descartado: %s sobre %s", ev.Kind, ev.UserID), "Moderation")
		return nil, nil
	}

	match := e.correlator.Correlate(ev.GuildID, ev.Kind, ev.UserID)

	// Un member-remove sin entrada de kick en la auditoría es una salida
	// voluntaria, no una expulsión.
	if ev.Kind == EventKick && match == nil {
		return nil, nil
	}

	c := &models.Case{
		GuildID:   ev.GuildID,
		Type:      caseTypeForEvent(ev.Kind),
		UserID:    ev.UserID,
		CreatedAt: time.Now(),
		Automatic: true,
	}
	if match != nil {
		c.ModeratorID = match.ModeratorID
		c.Reason = match.Reason
	}

	lock := e.subjectLock(ev.GuildID, ev.UserID)
	lock.Lock()
	defer lock.Unlock()

	created, err := e.cases.CreateCase(c)
	if err != nil {
		return nil, err
	}
	e.activity.Record(ev.GuildID, ActivityEntry{
		Kind:        ev.Kind,
		UserID:      ev.UserID,
		ModeratorID: created.ModeratorID,
		Reason:      created.Reason,
		CaseNumber:  created.CaseNumber,
	})
	e.fireCaseHooks(created)
	return created, nil
}

// handleMemberJoin re-aplica el silencio si el usuario que entra tiene un
// MuteState vivo (evasión de mute saliendo y volviendo al servidor).
func (e *Engine) handleMemberJoin(ev ModerationEvent) error {
	lock := e.subjectLock(ev.GuildID, ev.UserID)
	lock.Lock()
	defer lock.Unlock()

	mute, err := e.mutes.FindLiveMute(ev.GuildID, ev.UserID)
	if err != nil || mute == nil {
		return err
	}

	until := mute.ExpiresAt
	if until == nil {
		// El timeout nativo exige una fecha; el máximo de la plataforma son
		// 28 días y el estado vivo lo re-aplicará en la siguiente entrada.
		t := time.Now().Add(28 * 24 * time.Hour)
		until = &t
	}
	if err := e.actions.Timeout(ev.GuildID, ev.UserID, until); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo re-aplicar el mute a %s: %v", ev.UserID, err), "Moderation")
		return nil
	}
	note := models.CaseNote{
		ID:        uuid.New().String(),
		Body:      "El usuario volvió a entrar al servidor; silencio re-aplicado.",
		CreatedAt: time.Now(),
	}
	if err := e.cases.AddNote(ev.GuildID, mute.CaseNumber, note); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo anotar el caso #%d: %v", mute.CaseNumber, err), "Moderation")
	}
	return nil
}

func isPunitive(t models.CaseType) bool {
	switch t {
	case models.CaseWarn, models.CaseMute, models.CaseKick, models.CaseBan, models.CaseSoftban:
		return true
	}
	return false
}

// notifyBeforeMutation indica si la notificación debe preceder a la
// mutación: una vez expulsado o baneado, el DM puede ya no ser posible.
func notifyBeforeMutation(t models.CaseType) bool {
	switch t {
	case models.CaseKick, models.CaseBan, models.CaseSoftban:
		return true
	}
	return false
}

// RunCommand ejecuta una acción invocada por un operador y devuelve uno de
// los desenlaces terminales: éxito (con o sin notificación), denegado,
// mutación fallida.
func (e *Engine) RunCommand(req CommandRequest) Outcome {
	allowed, err := e.authority.CanActOn(req.GuildID, req.ModeratorID, req.UserID)
	if err != nil {
		// Sin veredicto de autoridad no se actúa.
		logger.Warn(fmt.Sprintf("Comprobación de autoridad fallida (%s -> %s): %v", req.ModeratorID, req.UserID, err), "Moderation")
		return denied()
	}
	if !allowed {
		return denied()
	}

	lock := e.subjectLock(req.GuildID, req.UserID)
	lock.Lock()
	defer lock.Unlock()

	cfg := e.guilds.ModConfig(req.GuildID)
	notified := false
	message := ""
	if isPunitive(req.Action) {
		message = RenderTemplate(cfg.TemplateFor(req.Action), TemplateVars{
			Server:    e.actions.GuildName(req.GuildID),
			Reason:    req.Reason,
			Duration:  req.Duration,
			Moderator: req.ModeratorID,
		})
	}

	if isPunitive(req.Action) && notifyBeforeMutation(req.Action) {
		notified = e.notifier.Notify(req.UserID, cfg.FallbackChannelID, message, cfg.NotifyDM, cfg.NotifyChannel)
	}

	outcome, attached := e.mutate(req)
	if outcome != nil {
		return *outcome
	}

	if isPunitive(req.Action) && !notifyBeforeMutation(req.Action) {
		notified = e.notifier.Notify(req.UserID, cfg.FallbackChannelID, message, cfg.NotifyDM, cfg.NotifyChannel)
	}

	// Re-mute: el caso abierto ya existe, sólo se anotó.
	if attached != nil {
		e.activity.Record(req.GuildID, ActivityEntry{
			Kind:        EventKind(req.Action),
			UserID:      req.UserID,
			ModeratorID: req.ModeratorID,
			Reason:      req.Reason,
			CaseNumber:  attached.CaseNumber,
		})
		return Outcome{Status: StatusSuccess, Notified: notified, Case: attached}
	}

	c := &models.Case{
		GuildID:     req.GuildID,
		Type:        req.Action,
		UserID:      req.UserID,
		ModeratorID: req.ModeratorID,
		Reason:      req.Reason,
		CreatedAt:   time.Now(),
	}
	if req.Action == models.CaseUnmute {
		if prev, _ := e.mutes.FindLiveMute(req.GuildID, req.UserID); prev != nil {
			c.RefCase = prev.CaseNumber
		}
	}

	created, err := e.cases.CreateCase(c)
	if err != nil {
		// La mutación ya ocurrió; la pérdida del caso es la inconsistencia
		// aceptada, se reporta al operador sin deshacer nada.
		logger.Error(fmt.Sprintf("Mutación aplicada pero el caso no se registró: %v", err), "Moderation")
		return Outcome{Status: StatusSuccess, Notified: notified, Err: err}
	}

	if req.Action == models.CaseMute {
		var expires *time.Time
		if req.Duration > 0 {
			t := time.Now().Add(req.Duration)
			expires = &t
		}
		if err := e.mutes.UpsertMute(req.GuildID, req.UserID, created.CaseNumber, expires); err != nil {
			logger.Error(fmt.Sprintf("No se pudo guardar el MuteState de %s: %v", req.UserID, err), "Moderation")
		}
	}
	if req.Action == models.CaseUnmute {
		if err := e.mutes.ClearMute(req.GuildID, req.UserID); err != nil {
			logger.Error(fmt.Sprintf("No se pudo limpiar el MuteState de %s: %v", req.UserID, err), "Moderation")
		}
	}

	e.activity.Record(req.GuildID, ActivityEntry{
		Kind:        EventKind(req.Action),
		UserID:      req.UserID,
		ModeratorID: req.ModeratorID,
		Reason:      req.Reason,
		CaseNumber:  created.CaseNumber,
	})
	e.fireCaseHooks(created)
	return Outcome{Status: StatusSuccess, Notified: notified, Case: created}
}

// mutate emite la mutación de plataforma para un comando. Devuelve un
// Outcome terminal si la operación no debe continuar, o el caso abierto al
// que la acción se adjuntó (re-mute) en lugar de crear uno nuevo.
//
// La supresión propia y la del log de actividad se registran inmediatamente
// antes de emitir la mutación: el eco puede llegar antes que la respuesta.
func (e *Engine) mutate(req CommandRequest) (*Outcome, *models.Case) {
	switch req.Action {
	case models.CaseWarn, models.CaseTypeNote:
		// Sin mutación de plataforma.
		return nil, nil

	case models.CaseMute:
		existing, err := e.mutes.FindLiveMute(req.GuildID, req.UserID)
		if err != nil {
			logger.Warn(fmt.Sprintf("MuteStore ilegible para %s, se asume sin mute: %v", req.UserID, err), "Moderation")
		}
		var until *time.Time
		if req.Duration > 0 {
			t := time.Now().Add(req.Duration)
			until = &t
		} else {
			t := time.Now().Add(28 * 24 * time.Hour)
			until = &t
		}
		if err := e.actions.Timeout(req.GuildID, req.UserID, until); err != nil {
			out := mutationFailed(err)
			return &out, nil
		}
		if existing != nil {
			// Re-mute: nunca un segundo caso Mute abierto para el mismo
			// usuario; se anota el existente y se extiende el estado.
			if req.Reason != "" {
				note := models.CaseNote{
					ID:        uuid.New().String(),
					Body:      "Re-mute: " + req.Reason,
					AuthorID:  req.ModeratorID,
					CreatedAt: time.Now(),
				}
				if err := e.cases.AddNote(req.GuildID, existing.CaseNumber, note); err != nil {
					logger.Warn(fmt.Sprintf("No se pudo anotar el caso #%d: %v", existing.CaseNumber, err), "Moderation")
				}
			}
			var expires *time.Time
			if req.Duration > 0 {
				t := time.Now().Add(req.Duration)
				expires = &t
			}
			if err := e.mutes.UpsertMute(req.GuildID, req.UserID, existing.CaseNumber, expires); err != nil {
				logger.Error(fmt.Sprintf("No se pudo extender el MuteState de %s: %v", req.UserID, err), "Moderation")
			}
			c, err := e.cases.FindByCaseNumber(req.GuildID, existing.CaseNumber)
			if err != nil || c == nil {
				c = &models.Case{GuildID: req.GuildID, CaseNumber: existing.CaseNumber, Type: models.CaseMute, UserID: req.UserID}
			}
			return nil, c
		}
		return nil, nil

	case models.CaseUnmute:
		existing, err := e.mutes.FindLiveMute(req.GuildID, req.UserID)
		if err == nil && existing == nil {
			out := Outcome{Status: StatusMutationFailed, Err: ErrNoLiveMute}
			return &out, nil
		}
		if err := e.actions.Timeout(req.GuildID, req.UserID, nil); err != nil {
			out := mutationFailed(err)
			return &out, nil
		}
		return nil, nil

	case models.CaseKick:
		e.suppressor.Register(req.GuildID, EventKick, req.UserID, DefaultSuppressionTTL)
		e.activity.IgnoreNext(req.GuildID, EventKick, req.UserID, DefaultSuppressionTTL)
		// La expulsión también dispara un member-remove en el feed crudo.
		e.activity.IgnoreNext(req.GuildID, EventMemberLeave, req.UserID, DefaultSuppressionTTL)
		if err := e.actions.Kick(req.GuildID, req.UserID, req.Reason); err != nil {
			out := mutationFailed(err)
			return &out, nil
		}
		return nil, nil

	case models.CaseBan:
		e.suppressor.Register(req.GuildID, EventBan, req.UserID, DefaultSuppressionTTL)
		e.activity.IgnoreNext(req.GuildID, EventBan, req.UserID, DefaultSuppressionTTL)
		e.activity.IgnoreNext(req.GuildID, EventMemberLeave, req.UserID, DefaultSuppressionTTL)
		if err := e.actions.Ban(req.GuildID, req.UserID, req.Reason, req.DeleteDays); err != nil {
			out := mutationFailed(err)
			return &out, nil
		}
		return nil, nil

	case models.CaseUnban:
		e.suppressor.Register(req.GuildID, EventUnban, req.UserID, DefaultSuppressionTTL)
		e.activity.IgnoreNext(req.GuildID, EventUnban, req.UserID, DefaultSuppressionTTL)
		if err := e.actions.Unban(req.GuildID, req.UserID); err != nil {
			out := mutationFailed(err)
			return &out, nil
		}
		return nil, nil

	case models.CaseSoftban:
		// El softban genera dos ecos: el ban y el unban inmediato.
		e.suppressor.Register(req.GuildID, EventBan, req.UserID, DefaultSuppressionTTL)
		e.suppressor.Register(req.GuildID, EventUnban, req.UserID, DefaultSuppressionTTL)
		e.activity.IgnoreNext(req.GuildID, EventBan, req.UserID, DefaultSuppressionTTL)
		e.activity.IgnoreNext(req.GuildID, EventUnban, req.UserID, DefaultSuppressionTTL)
		e.activity.IgnoreNext(req.GuildID, EventMemberLeave, req.UserID, DefaultSuppressionTTL)
		days := req.DeleteDays
		if days <= 0 {
			days = 1
		}
		if err := e.actions.Ban(req.GuildID, req.UserID, req.Reason, days); err != nil {
			out := mutationFailed(err)
			return &out, nil
		}
		if err := e.actions.Unban(req.GuildID, req.UserID); err != nil {
			// El usuario quedó baneado; se registra el caso igualmente y el
			// operador ve el error en el log.
			logger.Error(fmt.Sprintf("Softban: el unban de %s falló: %v", req.UserID, err), "Moderation")
		}
		return nil, nil
	}

	out := Outcome{Status: StatusMutationFailed, Err: fmt.Errorf("acción desconocida: %s", req.Action)}
	return &out, nil
}

// AddCaseNote añade una anotación a un caso existente.
func (e *Engine) AddCaseNote(guildID string, caseNumber int64, authorID, body string) error {
	return e.cases.AddNote(guildID, caseNumber, models.CaseNote{
		ID:        uuid.New().String(),
		Body:      body,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	})
}
