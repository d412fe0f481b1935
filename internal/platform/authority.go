package platform

import (
	"github.com/bwmarrin/discordgo"
)

// RoleAuthority valida la jerarquía de roles del guild: un actor sólo puede
// actuar sobre objetivos con un rol máximo inferior al suyo.
type RoleAuthority struct {
	session *discordgo.Session
}

// NewRoleAuthority crea el adaptador sobre una sesión abierta.
func NewRoleAuthority(session *discordgo.Session) *RoleAuthority {
	return &RoleAuthority{session: session}
}

// CanActOn aplica las reglas de jerarquía:
//   - el dueño del servidor puede actuar sobre cualquiera,
//   - nadie puede actuar sobre el dueño,
//   - un objetivo que no es miembro (p. ej. un unban) siempre es accionable,
//   - en el resto de casos decide la posición del rol más alto.
func (a *RoleAuthority) CanActOn(guildID, actorID, targetID string) (bool, error) {
	guild, err := a.guild(guildID)
	if err != nil {
		return false, err
	}

	if targetID == guild.OwnerID {
		return false, nil
	}
	if actorID == guild.OwnerID {
		return true, nil
	}

	target, err := a.member(guildID, targetID)
	if err != nil || target == nil {
		// Fuera del servidor no hay jerarquía que respetar.
		return true, nil
	}

	actor, err := a.member(guildID, actorID)
	if err != nil || actor == nil {
		return false, err
	}

	return highestRolePosition(guild, actor) > highestRolePosition(guild, target), nil
}

func (a *RoleAuthority) guild(guildID string) (*discordgo.Guild, error) {
	if g, err := a.session.State.Guild(guildID); err == nil {
		return g, nil
	}
	return a.session.Guild(guildID)
}

func (a *RoleAuthority) member(guildID, userID string) (*discordgo.Member, error) {
	if m, err := a.session.State.Member(guildID, userID); err == nil {
		return m, nil
	}
	m, err := a.session.GuildMember(guildID, userID)
	if err != nil {
		// 10007 Unknown Member: el usuario no está en el servidor.
		if restErr, ok := err.(*discordgo.RESTError); ok && restErr.Message != nil &&
			restErr.Message.Code == discordgo.ErrCodeUnknownMember {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func highestRolePosition(guild *discordgo.Guild, member *discordgo.Member) int {
	highest := 0
	for _, roleID := range member.Roles {
		for _, role := range guild.Roles {
			if role.ID == roleID && role.Position > highest {
				highest = role.Position
			}
		}
	}
	return highest
}
