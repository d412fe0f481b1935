// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (utils, mod, dev)
package commands

import (
	"github.com/CastorStudios/CentinelaGo/internal/commands/dev"
	"github.com/CastorStudios/CentinelaGo/internal/commands/mod"
	"github.com/CastorStudios/CentinelaGo/internal/commands/utils"
	"github.com/CastorStudios/CentinelaGo/pkg/discord"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	// Utility commands (/utils ping, /utils status, ...)
	utils.RegisterUtilsCommands(client)

	// Moderation commands (/mod warn, /mod mute, /mod ban, /mod massban, ...)
	mod.RegisterModCommands(client)

	// Dev-only commands (/dev eval, /dev blacklist ...), registered in the
	// dev guild
	dev.Register(client)
}
