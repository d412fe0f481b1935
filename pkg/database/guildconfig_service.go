package database

import (
	"errors"

	"github.com/CastorStudios/CentinelaGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
)

var ErrGuildConfigManagerNotInitialized = errors.New("guild config data manager not initialized")

// GuildConfigService resuelve la configuración de moderación por servidor.
// Un servidor sin documento usa la configuración por defecto: notificación
// por DM activada, sin canal de respaldo ni canal de log.
type GuildConfigService struct{}

// NewGuildConfigService crea el servicio de configuración.
func NewGuildConfigService() *GuildConfigService {
	return &GuildConfigService{}
}

// DefaultModConfig es la configuración de un servidor sin documento propio.
func DefaultModConfig(guildID string) *models.GuildModConfig {
	return &models.GuildModConfig{
		GuildID:  guildID,
		NotifyDM: true,
	}
}

// ModConfig nunca devuelve nil: un servidor sin configurar recibe los valores
// por defecto.
func (s *GuildConfigService) ModConfig(guildID string) *models.GuildModConfig {
	if GlobalGuildConfigDM == nil {
		return DefaultModConfig(guildID)
	}
	cfg, err := GlobalGuildConfigDM.Get(bson.M{"_id": guildID})
	if err != nil || cfg == nil {
		return DefaultModConfig(guildID)
	}
	return cfg
}

// SaveModConfig persiste la configuración completa del servidor.
func (s *GuildConfigService) SaveModConfig(cfg *models.GuildModConfig) error {
	if GlobalGuildConfigDM == nil {
		return ErrGuildConfigManagerNotInitialized
	}
	_, err := GlobalGuildConfigDM.Set(bson.M{"_id": cfg.GuildID}, cfg)
	return err
}

// SetTemplate guarda la plantilla de notificación de una acción. Una cadena
// vacía vuelve a la plantilla por defecto.
func (s *GuildConfigService) SetTemplate(guildID string, action models.CaseType, tpl string) error {
	cfg := s.ModConfig(guildID)
	if cfg.Templates == nil {
		cfg.Templates = make(map[string]string)
	}
	if tpl == "" {
		delete(cfg.Templates, string(action))
	} else {
		cfg.Templates[string(action)] = tpl
	}
	return s.SaveModConfig(cfg)
}
