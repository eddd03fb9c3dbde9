package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tennis-score-service/config"
	"tennis-score-service/database"
	"tennis-score-service/logger"
	"tennis-score-service/scoreboard"
	"tennis-score-service/services"
	"tennis-score-service/tennisapi"
	"tennis-score-service/web"
)

func main() {
	logger.Println("Starting Tennis Score Service...")

	cfg := config.Load()

	// Preference persistence is optional; without a database the theme
	// preference lives in memory only.
	var prefs *services.PreferenceStore
	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			logger.Fatalf("Failed to migrate database: %v", err)
		}
		prefs = services.NewPreferenceStore(db)
		logger.Println("Database connected and migrated")
	} else {
		prefs = services.NewPreferenceStore(nil)
		logger.Println("No DATABASE_URL set, theme preference is in-memory only")
	}

	wsHub := web.NewHub()
	go wsHub.Run()

	api := tennisapi.NewClient(cfg.APIBaseURL)
	channel := tennisapi.NewLiveChannel(cfg.WSURL)

	feed := services.NewFeedManager(api, channel, wsHub)
	if err := feed.Start(); err != nil {
		logger.Fatalf("Failed to start feed: %v", err)
	}

	// Optional alternative ingest paths.
	var amqpSource *services.AMQPSource
	if cfg.AMQPURL != "" {
		amqpSource = services.NewAMQPSource(cfg.AMQPURL, cfg.AMQPQueue, feed)
		if err := amqpSource.Start(); err != nil {
			logger.Errorf("AMQP source disabled: %v", err)
			amqpSource = nil
		}
	}

	var mqttFeed *tennisapi.MQTTFeed
	if cfg.MQTTBroker != "" {
		mqttFeed = tennisapi.NewMQTTFeed(cfg.MQTTBroker)
		if err := mqttFeed.Connect(); err != nil {
			logger.Errorf("MQTT feed disabled: %v", err)
			mqttFeed = nil
		} else {
			for _, m := range feed.Collection().Bucket(scoreboard.FilterLive) {
				if err := mqttFeed.SubscribeMatch(m.MatchID, feed.ApplyDelta); err != nil {
					logger.Errorf("Failed to subscribe MQTT topic for match %s: %v", m.MatchID, err)
				}
			}
		}
	}

	server := web.NewServer(cfg, feed, prefs, api, wsHub)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Web server error: %v", err)
		}
	}()

	logger.Printf("Web server started on port %s", cfg.Port)
	logger.Println("Service is running. Press Ctrl+C to stop.")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Println("Shutting down service...")

	if mqttFeed != nil {
		mqttFeed.Disconnect()
	}
	if amqpSource != nil {
		amqpSource.Stop()
	}
	feed.Stop()
	server.Stop()

	logger.Println("Service stopped")
}
