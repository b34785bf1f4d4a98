package main

import (
	"bookswap/app/client/bookstore"
	"bookswap/app/config"
	"bookswap/app/server"
	"bookswap/app/service/agent"
	"bookswap/app/service/analytics"
	"bookswap/app/service/conversation"
	"bookswap/app/service/engine"
	"bookswap/app/service/entity"
	"bookswap/app/service/feedback"
	"bookswap/app/service/intent"
	"bookswap/app/service/responder"
	"bookswap/app/util/mylog"
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, bookstore.NewClient)
	do.Provide(di, func(i *do.Injector) (responder.BookSearch, error) {
		return do.MustInvoke[*bookstore.Client](i), nil
	})
	do.Provide(di, func(i *do.Injector) (responder.UserDirectory, error) {
		return do.MustInvoke[*bookstore.Client](i), nil
	})
	do.Provide(di, intent.New)
	do.Provide(di, entity.New)
	do.Provide(di, conversation.New)
	do.Provide(di, responder.New)
	do.Provide(di, analytics.New)
	do.Provide(di, feedback.New)
	do.Provide(di, engine.New)
	do.Provide(di, server.New)
	do.Provide(di, agent.New)

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	go do.MustInvoke[*conversation.Service](di).Run(appCtx)

	if cfg.MCP.Enabled {
		if err := do.MustInvoke[*agent.Service](di).Run(appCtx); err != nil {
			log.Fatalf("mcp server failed: %v", err)
		}
		return
	}

	go func() {
		if err := do.MustInvoke[*server.Service](di).Run(appCtx); err != nil {
			slog.Error("HTTP server stopped", "error", err)
			cancel()
		}
	}()

	<-appCtx.Done()
}
