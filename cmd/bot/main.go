// Package main is the entry point for the Centinela application.
// It initializes all systems and starts the Discord bot.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/CastorStudios/CentinelaGo/internal/commands"
	"github.com/CastorStudios/CentinelaGo/internal/events"
	"github.com/CastorStudios/CentinelaGo/internal/moderation"
	"github.com/CastorStudios/CentinelaGo/internal/platform"
	"github.com/CastorStudios/CentinelaGo/pkg/config"
	"github.com/CastorStudios/CentinelaGo/pkg/database"
	"github.com/CastorStudios/CentinelaGo/pkg/discord"
	"github.com/CastorStudios/CentinelaGo/pkg/errors"
	"github.com/CastorStudios/CentinelaGo/pkg/logger"
	"github.com/CastorStudios/CentinelaGo/pkg/models"
	"github.com/CastorStudios/CentinelaGo/pkg/mqtt"
	"github.com/CastorStudios/CentinelaGo/pkg/web"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("Iniciando Centinela...", "Main")
	logger.Info(fmt.Sprintf("Directorio de trabajo: %s", getCurrentDir()), "Main")

	// Initialize error handler
	var discordClient *discord.ExtendedClient
	errors.Init(cfg.ErrorWebhook, func() {
		if discordClient != nil {
			err := discordClient.Stop()
			if err != nil {
				return
			}
		}
	})

	// Initialize database
	db, err := database.Init(cfg.MongoDBURL, cfg.DBName)
	if err != nil {
		logger.Error(fmt.Sprintf("Error connecting to database: %v", err), "Main")
		logger.Debug(fmt.Sprintf("Error connecting to database: %v", cfg.MongoDBURL), "Main")
		// Continue without database- it will attempt to reconnect
	}
	defer func() {
		if db != nil {
			err := db.Disconnect()
			if err != nil {
				return
			}
		}
	}()

	// Initialize global DataManagers
	if db != nil {
		database.InitGlobalDataManagers(db)

		// Initialize blacklist cache at startup and start auto-refresh
		if err := database.InitBlacklistCache(); err != nil {
			logger.Warn(fmt.Sprintf("Error inicializando caché de blacklist: %v", err), "Main")
		}
		database.StartBlacklistCacheRefresh()
		defer database.StopBlacklistCacheRefresh()
	}

	// Initialize MQTT
	mqttClientID := "centinela"
	if !cfg.IsProd() {
		mqttClientID = "centinela_canary"
	}

	mqttClient := mqtt.Init(
		cfg.MQTTHost,
		cfg.MQTTPort,
		cfg.MQTTUser,
		cfg.MQTTPassword,
		mqttClientID,
	)
	defer mqttClient.Destroy()

	// Initialize web server
	webServer := web.Init(cfg.LogsWebServerHook)
	web.SetupAPIRoutes(webServer)
	webServer.StartAsync(cfg.Port)

	// Initialize Discord client
	discordClient, err = discord.Init(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}

	// Wire the moderation engine: platform adapters over discordgo plus the
	// mongo-backed stores
	guilds := database.NewGuildConfigService()
	serverLog := platform.InitServerLog(discordClient.Session, guilds)
	engine := moderation.Init(moderation.Config{
		Cases:     database.GlobalCaseService,
		Mutes:     database.NewMuteService(),
		Audit:     platform.NewDiscordAuditSource(discordClient.Session),
		Activity:  serverLog,
		Actions:   platform.NewDiscordActions(discordClient.Session),
		Authority: platform.NewRoleAuthority(discordClient.Session),
		Guilds:    guilds,
	})

	// Every persisted case goes out to the live feed and the broker
	engine.OnCaseCreated(func(c *models.Case) {
		web.BroadcastCase(c)
		if mq := mqtt.Get(); mq != nil && mq.IsConnected() {
			if err := mq.Publish(mqtt.CaseTopic, c); err != nil {
				logger.Warn(fmt.Sprintf("Error publicando caso #%d en MQTT: %v", c.CaseNumber, err), "Main")
			}
		}
	})

	// Register commands using the commands package
	commands.RegisterAll(discordClient)

	// Register events using the events package
	events.RegisterAll(discordClient)

	// Start the bot
	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		os.Exit(1)
	}
	defer func(discordClient *discord.ExtendedClient) {
		err := discordClient.Stop()
		if err != nil {

		}
	}(discordClient)

	logger.Success("Centinela iniciado correctamente!", "Main")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Apagando Centinela...", "Main")
}

// getCurrentDir returns the current working directory
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
