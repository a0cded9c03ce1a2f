package main

import (
	"context"
	"fintrack/internal/app/deps"
	"fintrack/internal/app/services"
	"fintrack/internal/core/domain/logging"
	prunepasswordresettokens "fintrack/internal/core/services/prune_password_reset_tokens"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	log := deps.Logger
	defer shutdownDeps()

	services := services.InitServices(deps)

	ticker := time.NewTicker(deps.Config.PasswordResetPruningPeriod)
	defer ticker.Stop()

	stopCh, closeCh := createChannel()
	defer closeCh()

	log.Info(
		context.Background(),
		"Starting periodic password reset token pruner.",
		logging.Entry("periodMinutes", deps.Config.PasswordResetPruningPeriod.Minutes()),
	)

loop:
	for {
		select {
		case <-stopCh:
			log.Info(context.Background(), "Stopping periodic password reset token pruner.")
			break loop
		case <-ticker.C:
			log.Info(context.Background(), "Launching password reset token pruning service.")
			_, err := services.PrunePasswordResetTokens.Run(context.Background(), prunepasswordresettokens.Input{})
			if err != nil {
				log.Error(context.Background(), "Pruning service returned an error.", logging.Entry("err", err))
			}
		}
	}
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
