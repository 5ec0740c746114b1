package main

import (
	"log/slog"
	"os"

	"keycalc/internal/app"
)

func main() {
	cfg, err := app.LoadCfg()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	if err := app.New(cfg).Run(); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}
