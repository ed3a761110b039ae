package main

import (
	"context"

	"taxidispatch/config"
	"taxidispatch/pkg/logger"
	"taxidispatch/storage/postgres"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)
	pg, err := postgres.New(context.Background(), cfg, log)
	if err != nil {
		panic(err)
	}
	defer pg.Close()

	// Clears every trip record, client and driver and restarts the id sequences.
	if err := pg.Truncate(context.Background()); err != nil {
		log.Error("Failed to truncate tables", logger.Error(err))
		return
	}
	log.Info("Successfully truncated servicio, reserva, cliente and conductor tables.")
}
