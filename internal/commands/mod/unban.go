// Package mod - /mod unban command
package mod

import (
	"fmt"

	"github.com/CastorStudios/CentinelaGo/internal/moderation"
	"github.com/CastorStudios/CentinelaGo/pkg/discord"
	"github.com/CastorStudios/CentinelaGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createUnbanCommand creates the /mod unban subcommand. El objetivo ya no es
// miembro, así que se recibe por ID en lugar de mención.
func createUnbanCommand() *discord.Command {
	return discord.NewCommand(
		"unban",
		"Retira el ban de un usuario",
		"mod",
		unbanHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "id",
			Description: "ID del usuario baneado",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionBanMembers).
		WithBotPermissions(discordgo.PermissionBanMembers).
		RequiresDatabase()
}

// unbanHandler handles the /mod unban command
func unbanHandler(ctx *discord.CommandContext) error {
	ids := parseUserIDs(ctx.GetStringOption("id"))
	if len(ids) != 1 {
		return ctx.ReplyEphemeral("❌ Debes indicar un ID de usuario válido.")
	}

	out := moderation.Get().RunCommand(moderation.CommandRequest{
		GuildID:     ctx.Interaction.GuildID,
		ModeratorID: ctx.User().ID,
		UserID:      ids[0],
		Action:      models.CaseUnban,
		Reason:      ctx.GetStringOption("razon"),
	})

	return replyOutcome(ctx, out, fmt.Sprintf("🔓 El usuario `%s` ha sido desbaneado.", ids[0]), false)
}
