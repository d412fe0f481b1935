package moderation

import (
	"strings"
	"time"
)

// TemplateVars son los valores disponibles para las plantillas de
// notificación de un servidor.
type TemplateVars struct {
	Server    string
	Reason    string
	Duration  time.Duration
	Moderator string
}

// RenderTemplate sustituye los marcadores reconocidos ({server}, {reason},
// {duration}, {moderator}) en la plantilla. Los marcadores no reconocidos se
// dejan tal cual, sin error.
func RenderTemplate(tpl string, vars TemplateVars) string {
	duration := "indefinido"
	if vars.Duration > 0 {
		duration = vars.Duration.String()
	}
	reason := vars.Reason
	if reason == "" {
		reason = "Sin razón especificada"
	}
	r := strings.NewReplacer(
		"{server}", vars.Server,
		"{reason}", reason,
		"{duration}", duration,
		"{moderator}", vars.Moderator,
	)
	return r.Replace(tpl)
}

// Notifier intenta informar al usuario afectado antes o después de una
// acción punitiva. Todo fallo de transporte se absorbe aquí: este protocolo
// nunca lanza errores más allá de su frontera.
type Notifier struct {
	actions Actions
}

// NewNotifier crea un notifier sobre la superficie de mutación.
func NewNotifier(actions Actions) *Notifier {
	return &Notifier{actions: actions}
}

// Notify entrega el mensaje por DM y/o por el canal de respaldo.
//
// Con ambos canales deshabilitados el resultado es true por definición: no
// haber exigido notificación no es un fallo. Ambos canales se intentan de
// forma independiente (el respaldo no depende de que el DM falle); delivered
// es true si cualquiera de los dos llegó.
func (n *Notifier) Notify(userID, fallbackChannelID, message string, useDirect, useChannelFallback bool) bool {
	if !useDirect && !useChannelFallback {
		return true
	}

	delivered := false
	if useDirect {
		if err := n.actions.SendDirect(userID, message); err == nil {
			delivered = true
		}
	}
	if useChannelFallback && fallbackChannelID != "" {
		if err := n.actions.SendChannel(fallbackChannelID, message); err == nil {
			delivered = true
		}
	}
	return delivered
}
