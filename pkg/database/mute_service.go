package database

import (
	"errors"
	"time"

	"github.com/CastorStudios/CentinelaGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
)

var ErrMuteManagerNotInitialized = errors.New("mute data manager not initialized")

// MuteService mantiene el estado vivo de silenciados sobre el DataManager
// cacheado: el documento se lee en cada comprobación de re-mute y en cada
// entrada de miembro, y la caché lo sirve sin tocar la DB.
type MuteService struct{}

// NewMuteService crea el servicio de mutes.
func NewMuteService() *MuteService {
	return &MuteService{}
}

// FindLiveMute devuelve el mute vivo de un usuario, o nil. La expiración es
// perezosa: un documento vencido se elimina aquí y se reporta como ausente.
func (s *MuteService) FindLiveMute(guildID, userID string) (*models.MuteState, error) {
	if GlobalMuteDM == nil {
		return nil, ErrMuteManagerNotInitialized
	}

	m, err := GlobalMuteDM.Get(bson.M{"guildId": guildID, "userId": userID})
	if err != nil || m == nil {
		return nil, err
	}
	if m.Expired(time.Now()) {
		_ = GlobalMuteDM.Delete(bson.M{"guildId": guildID, "userId": userID})
		return nil, nil
	}
	return m, nil
}

// UpsertMute crea o extiende el estado de silencio de un usuario.
func (s *MuteService) UpsertMute(guildID, userID string, caseNumber int64, expiresAt *time.Time) error {
	if GlobalMuteDM == nil {
		return ErrMuteManagerNotInitialized
	}

	state := models.MuteState{
		GuildID:    guildID,
		UserID:     userID,
		CaseNumber: caseNumber,
		ExpiresAt:  expiresAt,
	}
	_, err := GlobalMuteDM.Set(bson.M{"guildId": guildID, "userId": userID}, state)
	return err
}

// ClearMute elimina el estado de silencio de un usuario.
func (s *MuteService) ClearMute(guildID, userID string) error {
	if GlobalMuteDM == nil {
		return ErrMuteManagerNotInitialized
	}
	return GlobalMuteDM.Delete(bson.M{"guildId": guildID, "userId": userID})
}
