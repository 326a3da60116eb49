package observability

import (
	"io"
	"log/slog"
	"os"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/config"
)

// SetupLogger configures a JSON slog logger on stdout tagged with service and env.
func SetupLogger(cfg config.Config) *slog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.Level()})
	return slog.New(h).With(
		slog.String("service", cfg.OTELServiceName),
		slog.String("env", cfg.AppEnv),
	)
}
