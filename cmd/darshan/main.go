package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rohit-Goswami064/Divine-Darshan/client"
	"github.com/Rohit-Goswami064/Divine-Darshan/config"
	"github.com/Rohit-Goswami064/Divine-Darshan/internal/cli"
	"github.com/Rohit-Goswami064/Divine-Darshan/logging"
)

func main() {
	configFile := flag.String("config", "", "path to a darshan.yaml config file")
	debug := flag.Bool("debug", false, "log requests and print raw JSON")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configFile, *debug, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, client.ErrorMessage(err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, configFile string, debug bool, args []string) error {
	var opts []config.LoadOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	if debug {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}

	app, err := cli.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Run(ctx, args)
}
