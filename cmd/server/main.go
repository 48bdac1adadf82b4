package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"justicemango/internal/serverapp"
)

const defaultConfigPath = "configs/game.yml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to the game config (YAML)")
	envFile := flag.String("env-file", ".env", "optional dotenv file loaded before the config")
	flag.Parse()

	logger := log.Default()
	if err := serverapp.LoadEnvFile(*envFile, logger); err != nil {
		log.Fatalf("env: %v", err)
	}

	// the default path may be absent; an explicit one must exist
	cfg, err := serverapp.LoadConfig(*configPath, *configPath == defaultConfigPath, logger)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	app, err := serverapp.New(serverapp.Options{Config: cfg, Logger: logger})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = app.Serve(ctx)
	stop()
	if err != nil {
		log.Fatal(err)
	}
}
