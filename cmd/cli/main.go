package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/shopsphere/internal/buildinfo"
	"github.com/dmitrijs2005/shopsphere/internal/client/cli"
	"github.com/dmitrijs2005/shopsphere/internal/client/config"
	"github.com/dmitrijs2005/shopsphere/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	go func() {
		<-ctx.Done()
		// a second signal kills the process while stdin is still blocked
		stop()
	}()

	app.Run(ctx)
}
