package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/buildinfo"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/cli"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/config"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewText(os.Stderr, slog.LevelWarn)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
