// Package mod - /mod note command
package mod

import (
	"errors"
	"fmt"

	"github.com/CastorStudios/CentinelaGo/internal/moderation"
	"github.com/CastorStudios/CentinelaGo/pkg/database"
	"github.com/CastorStudios/CentinelaGo/pkg/discord"
	"github.com/CastorStudios/CentinelaGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createNoteCommand creates the /mod note subcommand. Con "caso" la nota se
// adjunta a un caso existente; sin él se abre un caso de tipo nota.
func createNoteCommand() *discord.Command {
	return discord.NewCommand(
		"note",
		"Añade una nota sobre un usuario o a un caso existente",
		"mod",
		noteHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "texto",
			Description: "Contenido de la nota",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario sobre el que anotar (abre un caso nuevo)",
			Required:    false,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "caso",
			Description: "Número de caso al que adjuntar la nota",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// noteHandler handles the /mod note command
func noteHandler(ctx *discord.CommandContext) error {
	body := ctx.GetStringOption("texto")
	caseNumber := ctx.GetIntOption("caso")
	user := ctx.GetUserOption("usuario")

	if caseNumber > 0 {
		err := moderation.Get().AddCaseNote(ctx.Interaction.GuildID, caseNumber, ctx.User().ID, body)
		if err != nil {
			if errors.Is(err, database.ErrCaseNotFound) {
				return ctx.ReplyEphemeral(fmt.Sprintf("❌ No existe el caso #%d.", caseNumber))
			}
			return ctx.ReplyEphemeral("❌ No se pudo guardar la nota.")
		}
		return ctx.Reply(fmt.Sprintf("📝 Nota añadida al caso #%d.", caseNumber))
	}

	if user == nil {
		return ctx.ReplyEphemeral("❌ Indica un usuario o un número de caso.")
	}

	out := moderation.Get().RunCommand(moderation.CommandRequest{
		GuildID:     ctx.Interaction.GuildID,
		ModeratorID: ctx.User().ID,
		UserID:      user.ID,
		Action:      models.CaseTypeNote,
		Reason:      body,
	})

	return replyOutcome(ctx, out, fmt.Sprintf("📝 Nota registrada sobre **%s**.", user.Username), false)
}
