// Package mod - /mod caso command
package mod

import (
	"fmt"
	"strings"
	"time"

	"github.com/CastorStudios/CentinelaGo/pkg/database"
	"github.com/CastorStudios/CentinelaGo/pkg/discord"
	"github.com/CastorStudios/CentinelaGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

var caseTypeLabels = map[models.CaseType]string{
	models.CaseTypeNote: "📝 Nota",
	models.CaseWarn:     "⚠️ Advertencia",
	models.CaseMute:     "🔇 Silencio",
	models.CaseUnmute:   "🔊 Fin de silencio",
	models.CaseKick:     "👢 Expulsión",
	models.CaseBan:      "🔨 Ban",
	models.CaseUnban:    "🔓 Unban",
	models.CaseSoftban:  "🔨 Softban",
}

// createCasoCommand creates the /mod caso subcommand
func createCasoCommand() *discord.Command {
	return discord.NewCommand(
		"caso",
		"Muestra el detalle de un caso de moderación",
		"mod",
		casoHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "numero",
			Description: "Número de caso",
			Required:    true,
			MinValue:    func() *float64 { v := 1.0; return &v }(),
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// casoHandler handles the /mod caso command
func casoHandler(ctx *discord.CommandContext) error {
	number := ctx.GetIntOption("numero")

	c, err := database.GlobalCaseService.FindByCaseNumber(ctx.Interaction.GuildID, number)
	if err != nil {
		return ctx.ReplyEphemeral("❌ No se pudo consultar la base de datos.")
	}
	if c == nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ No existe el caso #%d.", number))
	}

	return ctx.ReplyEmbed(caseEmbed(c))
}

func caseEmbed(c *models.Case) *discordgo.MessageEmbed {
	label := caseTypeLabels[c.Type]
	if label == "" {
		label = string(c.Type)
	}

	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("Caso #%d — %s", c.CaseNumber, label),
		Color:     0x5865F2,
		Timestamp: c.CreatedAt.Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Usuario", Value: fmt.Sprintf("<@%s> (`%s`)", c.UserID, c.UserID), Inline: true},
		},
	}

	moderator := "Desconocido"
	if c.ModeratorID != "" {
		moderator = fmt.Sprintf("<@%s>", c.ModeratorID)
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "Moderador", Value: moderator, Inline: true,
	})

	if c.Reason != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Razón", Value: c.Reason})
	}
	if c.Automatic {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Origen", Value: "Detectado automáticamente", Inline: true,
		})
	}
	if c.RefCase > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Referencia", Value: fmt.Sprintf("Caso #%d", c.RefCase), Inline: true,
		})
	}
	if c.BatchID != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Lote " + c.BatchID}
	}

	if len(c.Notes) > 0 {
		var b strings.Builder
		for _, n := range c.Notes {
			fmt.Fprintf(&b, "• %s — <@%s> (%s)\n", n.Body, n.AuthorID, n.CreatedAt.Format("02/01/2006 15:04"))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Notas", Value: b.String()})
	}

	return embed
}
