// Package mod - /mod historial command
package mod

import (
	"fmt"
	"strings"

	"github.com/CastorStudios/CentinelaGo/pkg/database"
	"github.com/CastorStudios/CentinelaGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

const historialPageSize = 10

// createHistorialCommand creates the /mod historial subcommand
func createHistorialCommand() *discord.Command {
	return discord.NewCommand(
		"historial",
		"Muestra el historial de moderación de un usuario",
		"mod",
		historialHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a consultar",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// historialHandler handles the /mod historial command
func historialHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	cases, err := database.GlobalCaseService.FindByUser(ctx.Interaction.GuildID, user.ID)
	if err != nil {
		return ctx.ReplyEphemeral("❌ No se pudo consultar la base de datos.")
	}
	if len(cases) == 0 {
		return ctx.Reply(fmt.Sprintf("✅ **%s** no tiene casos de moderación.", user.Username))
	}

	var b strings.Builder
	shown := cases
	if len(shown) > historialPageSize {
		shown = shown[:historialPageSize]
	}
	for _, c := range shown {
		label := caseTypeLabels[c.Type]
		if label == "" {
			label = string(c.Type)
		}
		reason := c.Reason
		if reason == "" {
			reason = "Sin razón"
		}
		fmt.Fprintf(&b, "`#%d` %s — %s (%s)\n", c.CaseNumber, label, reason, c.CreatedAt.Format("02/01/2006"))
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Historial de %s", user.Username),
		Description: b.String(),
		Color:       0x5865F2,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d caso(s) en total", len(cases)),
		},
	}
	return ctx.ReplyEmbed(embed)
}
