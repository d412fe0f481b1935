// Package mod - /mod kick command
package mod

import (
	"fmt"

	"github.com/CastorStudios/CentinelaGo/internal/moderation"
	"github.com/CastorStudios/CentinelaGo/pkg/discord"
	"github.com/CastorStudios/CentinelaGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createKickCommand creates the /mod kick subcommand
func createKickCommand() *discord.Command {
	return discord.NewCommand(
		"kick",
		"Expulsa a un usuario del servidor",
		"mod",
		kickHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a expulsar",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón de la expulsión",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionKickMembers).
		WithBotPermissions(discordgo.PermissionKickMembers).
		RequiresDatabase()
}

// kickHandler handles the /mod kick command
func kickHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	out := moderation.Get().RunCommand(moderation.CommandRequest{
		GuildID:     ctx.Interaction.GuildID,
		ModeratorID: ctx.User().ID,
		UserID:      user.ID,
		Action:      models.CaseKick,
		Reason:      ctx.GetStringOption("razon"),
	})

	return replyOutcome(ctx, out, fmt.Sprintf("👢 **%s** ha sido expulsado.", user.Username), true)
}
