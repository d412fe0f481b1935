// Package mod - /mod massban command
package mod

import (
	"errors"
	"fmt"
	"strings"

	"github.com/CastorStudios/CentinelaGo/internal/moderation"
	"github.com/CastorStudios/CentinelaGo/pkg/discord"
	boterrors "github.com/CastorStudios/CentinelaGo/pkg/errors"
	"github.com/bwmarrin/discordgo"
)

// createMassbanCommand creates the /mod massban subcommand
func createMassbanCommand() *discord.Command {
	return discord.NewCommand(
		"massban",
		"Banea a varios usuarios a la vez (máx. 100)",
		"mod",
		massbanHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "usuarios",
			Description: "IDs o menciones separados por espacios",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "dias",
			Description: "Días de mensajes a eliminar (0-7)",
			Required:    false,
			MinValue:    func() *float64 { v := 0.0; return &v }(),
			MaxValue:    7,
		},
	).WithUserPermissions(discordgo.PermissionBanMembers).
		WithBotPermissions(discordgo.PermissionBanMembers).
		RequiresDatabase()
}

// massbanHandler handles the /mod massban command. La razón del lote llega
// como mensaje de seguimiento del operador en el canal, así que la
// interacción se difiere y el lote corre en su propia goroutine.
func massbanHandler(ctx *discord.CommandContext) error {
	targets := parseUserIDs(ctx.GetStringOption("usuarios"))
	if len(targets) == 0 {
		return ctx.ReplyEphemeral("❌ No se encontró ningún ID de usuario válido.")
	}
	if len(targets) > moderation.MassbanCap {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Máximo %d usuarios por lote.", moderation.MassbanCap))
	}

	if err := ctx.Defer(); err != nil {
		return err
	}

	req := moderation.MassbanRequest{
		GuildID:     ctx.Interaction.GuildID,
		ChannelID:   ctx.Interaction.ChannelID,
		RequesterID: ctx.User().ID,
		TargetIDs:   targets,
		DeleteDays:  int(ctx.GetIntOption("dias")),
	}

	go func() {
		defer boterrors.RecoverMiddleware()()

		batch, out := moderation.Get().RunMassban(req)
		_ = ctx.EditReply(renderMassbanResult(batch, out))
	}()

	return nil
}

func renderMassbanResult(batch *moderation.BatchOutcome, out moderation.Outcome) string {
	switch out.Status {
	case moderation.StatusDenied:
		return "⛔ Lote abortado: no tienes autoridad sobre todos los objetivos. Ningún usuario fue baneado."
	case moderation.StatusCancelled:
		if errors.Is(out.Err, moderation.ErrConfirmationTimeout) {
			return "🚫 Lote cancelado: no se recibió la razón a tiempo."
		}
		return "🚫 Lote cancelado."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔨 Baneo masivo completado: **%d/%d** usuarios baneados.", len(batch.Succeeded), batch.Requested)
	if len(batch.Failed) > 0 {
		fmt.Fprintf(&b, "\n⚠️ Fallaron: `%s`", strings.Join(batch.Failed, "`, `"))
	}
	return b.String()
}
