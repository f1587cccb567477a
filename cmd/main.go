// Command teller runs the action server behind the conversational banking
// assistant. The dialogue engine posts tracker state to /webhook; teller
// validates slots, executes confirmed transactions, and returns the slot
// events and messages that drive the conversation.
//
// Usage:
//
//	teller --config config.yaml
//	teller --demo   (interactive terminal console, no engine needed)
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tellerbot/teller/config"
	"github.com/tellerbot/teller/internal"
	"github.com/tellerbot/teller/internal/profile"
	"github.com/tellerbot/teller/internal/setup"
	"github.com/tellerbot/teller/internal/storage/auditlog"
	"github.com/tellerbot/teller/internal/web"
)

func main() {
	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	registry := internal.BuildRegistry(cfg, logger, profile.NewMock())

	if cfg.Demo {
		if err := setup.RunConsole(registry); err != nil {
			log.Fatal(err)
		}
		return
	}

	audit, err := auditlog.NewWALStore(cfg.AuditDir)
	if err != nil {
		logger.Fatal("open audit log", zap.Error(err))
	}
	defer audit.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := web.NewServer(cfg.Addr, registry, audit, logger)
	logger.Info("starting action server", zap.String("addr", cfg.Addr))
	if err := server.Start(ctx); err != nil {
		logger.Fatal("action server stopped", zap.Error(err))
	}
}
