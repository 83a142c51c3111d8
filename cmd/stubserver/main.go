package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/logging"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/stubserver"
)

func main() {

	cfg := stubserver.LoadConfig()
	logger := logging.NewText(os.Stdout, slog.LevelInfo)

	srv := stubserver.NewServer(cfg, logger)

	logger.Info(context.Background(), "stub backend listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.Router()); err != nil {
		log.Fatalf("%v", err)
	}
}
