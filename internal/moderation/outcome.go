package moderation

import (
	"errors"
	"time"

	"github.com/CastorStudios/CentinelaGo/pkg/models"
)

var (
	ErrAuthorityDenied     = errors.New("el actor no tiene autoridad sobre el objetivo")
	ErrMutationFailed      = errors.New("la plataforma rechazó la mutación")
	ErrConfirmationTimeout = errors.New("la confirmación expiró sin respuesta")
	ErrCancelled           = errors.New("operación cancelada por el operador")
	ErrTooManyTargets      = errors.New("demasiados objetivos para una acción en lote")
	ErrNoLiveMute          = errors.New("el usuario no está silenciado")
)

// Status es el desenlace terminal de un comando de moderación.
type Status int

const (
	StatusSuccess Status = iota
	StatusDenied
	StatusMutationFailed
	StatusCancelled
)

// Outcome es lo que el núcleo devuelve a la capa de comandos: suficiente
// estructura para renderizar la respuesta al operador, sin formatearla aquí.
type Outcome struct {
	Status Status
	// Notified indica si el usuario afectado recibió la notificación.
	// Sólo significativo con StatusSuccess en acciones punitivas.
	Notified bool
	Case     *models.Case
	Err      error
}

func denied() Outcome {
	return Outcome{Status: StatusDenied, Err: ErrAuthorityDenied}
}

func mutationFailed(err error) Outcome {
	return Outcome{Status: StatusMutationFailed, Err: errors.Join(ErrMutationFailed, err)}
}

// CommandRequest es una acción invocada por un operador.
type CommandRequest struct {
	GuildID     string
	ModeratorID string
	UserID      string
	Action      models.CaseType
	Reason      string
	// Duration aplica a mute; cero significa permanente.
	Duration time.Duration
	// DeleteDays aplica a ban y softban.
	DeleteDays int
}

// BatchOutcome es el resultado particionado de una acción en lote.
type BatchOutcome struct {
	BatchID   string
	Requested int
	Succeeded []string
	Failed    []string
}
