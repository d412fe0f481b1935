// Package mod provides moderation commands organized as subcommands under /mod
// Each command is in its own file for better organization
package mod

import (
	"github.com/CastorStudios/CentinelaGo/pkg/discord"
)

// RegisterModCommands registers all moderation commands as /mod subcommands
func RegisterModCommands(client *discord.ExtendedClient) {
	// Create individual subcommands (each can be in its own file)
	warnCmd := createWarnCommand()
	muteCmd := createMuteCommand()
	unmuteCmd := createUnmuteCommand()
	kickCmd := createKickCommand()
	banCmd := createBanCommand()
	unbanCmd := createUnbanCommand()
	softbanCmd := createSoftbanCommand()
	massbanCmd := createMassbanCommand()
	noteCmd := createNoteCommand()
	casoCmd := createCasoCommand()
	historialCmd := createHistorialCommand()
	configCmd := createConfigCommand()

	// Build the /mod command group with all subcommands
	modGroup := client.CommandHandler.BuildCommandGroup(
		"mod",
		"Comandos de moderación",
		warnCmd,
		muteCmd,
		unmuteCmd,
		kickCmd,
		banCmd,
		unbanCmd,
		softbanCmd,
		massbanCmd,
		noteCmd,
		casoCmd,
		historialCmd,
		configCmd,
	)

	// Register the command group
	client.CommandHandler.AddGlobalCommand(modGroup)
}
