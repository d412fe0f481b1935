// Package mod - /mod mute command
package mod

import (
	"fmt"

	"github.com/CastorStudios/CentinelaGo/internal/moderation"
	"github.com/CastorStudios/CentinelaGo/pkg/discord"
	"github.com/CastorStudios/CentinelaGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createMuteCommand creates the /mod mute subcommand
func createMuteCommand() *discord.Command {
	return discord.NewCommand(
		"mute",
		"Silencia a un usuario",
		"mod",
		muteHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a silenciar",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "duracion",
			Description: "Duración del silencio (ej: 30m, 2h, 7d; vacío = permanente)",
			Required:    false,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón del silencio",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithBotPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// muteHandler handles the /mod mute command. Si el usuario ya está
// silenciado, el motor extiende el silencio y anota el caso abierto en lugar
// de crear uno nuevo.
func muteHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	duration, err := parseDuration(ctx.GetStringOption("duracion"))
	if err != nil {
		return ctx.ReplyEphemeral("❌ Duración inválida. Usa formatos como `30m`, `2h` o `7d`.")
	}
	if duration > maxMuteDuration {
		return ctx.ReplyEphemeral("❌ La duración máxima de un silencio es de 28 días.")
	}

	out := moderation.Get().RunCommand(moderation.CommandRequest{
		GuildID:     ctx.Interaction.GuildID,
		ModeratorID: ctx.User().ID,
		UserID:      user.ID,
		Action:      models.CaseMute,
		Reason:      ctx.GetStringOption("razon"),
		Duration:    duration,
	})

	label := "permanentemente"
	if duration > 0 {
		label = "por " + duration.String()
	}
	return replyOutcome(ctx, out, fmt.Sprintf("🔇 **%s** ha sido silenciado %s.", user.Username, label), true)
}
