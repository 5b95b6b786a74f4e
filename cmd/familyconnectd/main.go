package main

import (
	"context"
	"log"
	"net"
	"strconv"

	"github.com/joho/godotenv"

	"familyconnect/internal/app"
	"familyconnect/pkg/config"
	"familyconnect/pkg/logger"
	"familyconnect/pkg/shutdown"
)

// build metadata - set via ldflags during build/release
var version = "dev"

func main() {
	_ = godotenv.Load(".env")

	flags := config.ParseCommandFlags()
	cfgPath := config.ResolveConfigPath(flags)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// flags win over env and file
	if flags.Set["addr"] {
		if host, port, err := net.SplitHostPort(flags.Addr); err == nil {
			cfg.Server.Address = host
			if pi, err := strconv.Atoi(port); err == nil {
				cfg.Server.Port = pi
			}
		} else {
			cfg.Server.Address = flags.Addr
		}
	}
	if flags.Set["db"] {
		cfg.Server.DBPath = flags.DB
	}

	logger.InitWithLevel(cfg.Logging.Level)

	source := "defaults"
	switch {
	case len(flags.Set) > 0:
		source = "flags"
	case cfgPath != "":
		source = "config"
	}

	a, err := app.New(cfg, source, version)
	if err != nil {
		shutdown.Abort("startup", err, cfg.Server.DBPath)
	}

	ctx, cancel := shutdown.SetupSignalHandler(context.Background())
	defer cancel()

	if err := a.Run(ctx); err != nil {
		shutdown.Abort("serve", err, cfg.Server.DBPath)
	}
}
