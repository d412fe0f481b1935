// Package mod - /mod softban command
package mod

import (
	"fmt"

	"github.com/CastorStudios/CentinelaGo/internal/moderation"
	"github.com/CastorStudios/CentinelaGo/pkg/discord"
	"github.com/CastorStudios/CentinelaGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createSoftbanCommand creates the /mod softban subcommand. Un softban banea
// y desbanea inmediatamente: expulsa al usuario borrando sus mensajes
// recientes sin dejarlo baneado.
func createSoftbanCommand() *discord.Command {
	return discord.NewCommand(
		"softban",
		"Expulsa a un usuario borrando sus mensajes recientes",
		"mod",
		softbanHandler,
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
			Description: "Razón del softban",
			Required:    false,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "dias",
			Description: "Días de mensajes a eliminar (1-7)",
			Required:    false,
			MinValue:    func() *float64 { v := 1.0; return &v }(),
			MaxValue:    7,
		},
	).WithUserPermissions(discordgo.PermissionBanMembers).
		WithBotPermissions(discordgo.PermissionBanMembers).
		RequiresDatabase()
}

// softbanHandler handles the /mod softban command
func softbanHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	out := moderation.Get().RunCommand(moderation.CommandRequest{
		GuildID:     ctx.Interaction.GuildID,
		ModeratorID: ctx.User().ID,
		UserID:      user.ID,
		Action:      models.CaseSoftban,
		Reason:      ctx.GetStringOption("razon"),
		DeleteDays:  int(ctx.GetIntOption("dias")),
	})

	return replyOutcome(ctx, out, fmt.Sprintf("🔨 **%s** ha recibido un softban.", user.Username), true)
}
