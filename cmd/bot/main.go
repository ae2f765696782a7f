// Package main is the entry point for the ChunkHost VPS application.
// It initializes all systems and starts the Discord bot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ChunkHostStudios/ChunkHostGo/internal/commands"
	"github.com/ChunkHostStudios/ChunkHostGo/internal/events"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/config"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/engine"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/errors"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/logger"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/mqtt"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/notify"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/runtime"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/store"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/web"
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

	logger.System("Iniciando ChunkHost VPS...", "Main")
	logger.Info(fmt.Sprintf("Directorio de trabajo: %s", getCurrentDir()), "Main")

	// Initialize error handler
	var discordClient *discord.ExtendedClient
	var sweeper *engine.Sweeper
	errors.Init(cfg.ErrorWebhook, func() {
		if sweeper != nil {
			sweeper.Stop()
		}
		if discordClient != nil {
			if err := discordClient.Stop(); err != nil {
				return
			}
		}
	})

	// Initialize the persistent store
	s, err := store.Init(cfg.DataDir)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error abriendo el almacén de datos: %v", err), "Main")
		os.Exit(1)
	}

	// Initialize the container runtime
	adapter, err := runtime.NewDockerAdapter()
	if err != nil {
		logger.Critical(fmt.Sprintf("Error conectando con Docker: %v", err), "Main")
		os.Exit(1)
	}

	// Activity hub: persists events and fans them out to the sinks
	hub := notify.NewHub(s)

	// Engine components
	ledger := engine.NewLedger(s, hub)
	access := engine.NewAccessPolicy(s, cfg.MainAdminIDs, hub)
	tracker := engine.NewInviteTracker(s, ledger, hub)
	registry := engine.NewRegistry(s, adapter, ledger, access, cfg, hub)
	giveaways := engine.NewGiveaways(s, registry, access, hub)

	// Background sweeps: expiry suspension and giveaway resolution
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper = engine.NewSweeper(registry, giveaways, cfg.ExpirySweepInterval, cfg.GiveawaySweepInterval)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	// Initialize MQTT (optional)
	if cfg.MQTTHost != "" {
		mqttClientID := "chunkhost"
		if !cfg.IsProd() {
			mqttClientID = "chunkhost_canary"
		}

		mqttClient := mqtt.Init(
			cfg.MQTTHost,
			cfg.MQTTPort,
			cfg.MQTTUser,
			cfg.MQTTPassword,
			mqttClientID,
		)
		defer mqttClient.Destroy()

		hub.Subscribe(notify.NewMQTTSink(mqttClient))
	}

	// Initialize web server
	webServer := web.Init(cfg.LogsWebhook, "")
	web.SetupAPIRoutes(webServer, web.APIDeps{
		Registry: registry,
		Hub:      hub,
	})
	hub.Subscribe(web.Feed())
	webServer.StartAsync(cfg.Port)

	// Initialize Discord client
	discordClient, err = discord.Init(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}
	discordClient.Access = access

	// Publish activity to the configured log channel and DM the actors
	hub.Subscribe(notify.NewDiscordSink(discordClient.Session, access.LogChannel))

	// Register commands using the commands package
	commands.RegisterAll(discordClient, commands.Deps{
		Registry:  registry,
		Ledger:    ledger,
		Access:    access,
		Tracker:   tracker,
		Giveaways: giveaways,
		Hub:       hub,
		Config:    cfg,
	})

	// Register events using the events package
	events.RegisterAll(discordClient, tracker)

	// Start the bot
	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		os.Exit(1)
	}
	defer func(discordClient *discord.ExtendedClient) {
		if err := discordClient.Stop(); err != nil {
			return
		}
	}(discordClient)

	logger.Success("ChunkHost VPS iniciado correctamente!", "Main")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Apagando ChunkHost VPS...", "Main")
}

// getCurrentDir returns the current working directory
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
