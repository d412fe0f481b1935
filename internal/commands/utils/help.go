package utils

import (
	"github.com/CastorStudios/CentinelaGo/pkg/discord"
	"github.com/CastorStudios/CentinelaGo/pkg/errors"
)

// createHelpCommand creates the /utils help subcommand
func createHelpCommand() *discord.Command {
	return discord.NewCommand(
		"help",
		"Muestra información de ayuda",
		"utils",
		helpHandler,
	)
}

// helpHandler handles the /utils help command
func helpHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		ctx.Reply(
			"📖 **Ayuda de Centinela**\n\n" +
				"**Comandos disponibles:**\n" +
				"• `/utils ping` - Comprueba la latencia\n" +
				"• `/utils status` - Estado del bot\n" +
				"• `/utils stats` - Estadísticas del bot\n" +
				"• `/mod warn <usuario> <razón>` - Advierte a un usuario\n" +
				"• `/mod mute <usuario> <duración> <razón>` - Silencia a un usuario\n" +
				"• `/mod unmute <usuario>` - Quita el silencio a un usuario\n" +
				"• `/mod kick <usuario> <razón>` - Expulsa a un usuario\n" +
				"• `/mod ban <usuario> <razón>` - Banea a un usuario\n" +
				"• `/mod unban <id>` - Desbanea a un usuario\n" +
				"• `/mod softban <usuario> <razón>` - Banea y desbanea para limpiar mensajes\n" +
				"• `/mod massban <usuarios> <razón>` - Banea a varios usuarios a la vez\n" +
				"• `/mod note <texto>` - Añade una nota a un caso o usuario\n" +
				"• `/mod caso <número>` - Consulta un caso\n" +
				"• `/mod historial <usuario>` - Historial de moderación\n" +
				"• `/mod config` - Configuración de moderación del servidor",
		)
	}()
	return nil
}
