// @title PracticeTime Admin API
// @version 1.0
// @description Backend for the PracticeTime admin dashboard: question bank,
// @description question sets and student assignments.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"log"

	"practicetime_backend/internal/app"
	"practicetime_backend/internal/config"
	"practicetime_backend/pkg/configwatcher"
	"practicetime_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		if c, ok := newCfg.(*config.Config); ok {
			application.ReloadConfig(c)
		}
	})

	application.Run()
}
