package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"sessiond/internal/ar"
	"sessiond/internal/capture"
	"sessiond/internal/config"
	"sessiond/internal/engine"
	"sessiond/internal/httpapi"
	"sessiond/internal/pose"
	"sessiond/internal/session"
)

func main() {
	// Flags with environment variable defaults. The addr flag defaults to
	// empty so an unset flag does not shadow a config-file addr.
	addr := flag.String("addr", os.Getenv("SESSIOND_ADDR"), "HTTP listen address, e.g. :8080")
	configPath := flag.String("config", "", "Optional config file (.yaml/.json/.toml)")
	device := flag.String("device", "", "Camera device (e.g. /dev/video0)")
	settleMS := flag.Int("settle-ms", 0, "Post-teardown settle delay in ms (0=default, -1=off)")
	demo := flag.Bool("demo", false, "Run pose engines on the synthetic detector (no model needed)")
	corsOrigins := flag.String("cors-origins", "", "Comma-separated allowed CORS origins (empty disables CORS)")
	logLevel := flag.String("log-level", "", "Log level: debug|info|warn|error")
	flag.Parse()

	var cfg config.Config
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			lg := zerolog.New(os.Stderr)
			lg.Fatal().Err(err).Str("path", *configPath).Msg("failed to load config")
		}
	}
	// Flags override the config file.
	cfg.Addr = resolveAddr(*addr, cfg.Addr)
	if *device != "" {
		cfg.Capture.Device = *device
	}
	if *settleMS != 0 {
		cfg.SettleDelayMS = *settleMS
	}
	if *demo {
		cfg.Pose.Demo = true
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *corsOrigins != "" {
		cfg.CORS.Enabled = true
		cfg.CORS.Origins = splitCSV(*corsOrigins)
	}

	logger := newLogger(cfg.LogLevel)
	httpapi.SetLogger(logger)

	reg := engine.NewRegistry()
	pose.Register(reg, pose.Options{
		MoveNetModel:   cfg.Pose.MoveNetModel,
		BlazePoseModel: cfg.Pose.BlazePoseModel,
		Demo:           cfg.Pose.Demo,
	})
	ar.Register(reg, ar.Options{})

	pub := session.NewFanout(64)
	coord := session.NewWithConfig(session.Config{
		Registry: reg,
		Deps: engine.Deps{
			Capture: capture.DefaultOpener(),
			CaptureConfig: capture.Config{
				Device: cfg.Capture.Device,
				Width:  cfg.Capture.Width,
				Height: cfg.Capture.Height,
				FPS:    cfg.Capture.FPS,
			},
			Log: logger,
		},
		Publisher:    pub,
		Logger:       logger,
		SettleDelay:  time.Duration(cfg.SettleDelayMS) * time.Millisecond,
		StartTimeout: time.Duration(cfg.StartTimeoutMS) * time.Millisecond,
	})

	if cfg.CORS.Enabled {
		httpapi.SetCORSOptions(true, cfg.CORS.Origins, cfg.CORS.Methods, cfg.CORS.Headers)
	}

	baseCtx, cancelBase := context.WithCancel(context.Background())
	httpapi.SetBaseContext(baseCtx)

	mux := httpapi.NewMux(coord, pub)
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		logger.Info().Str("addr", cfg.Addr).Bool("demo", cfg.Pose.Demo).Msg("sessiond listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn().Err(err).Msg("graceful shutdown error")
	}
	if err := coord.Close(ctx); err != nil {
		logger.Warn().Err(err).Msg("session teardown error")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if level != "" {
		if parsed, err := zerolog.ParseLevel(level); err == nil {
			lvl = parsed
		}
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

// resolveAddr picks the listen address: explicit flag or SESSIOND_ADDR
// first, then the config file, then the built-in default.
func resolveAddr(flagVal, fileVal string) string {
	if flagVal != "" {
		return flagVal
	}
	if fileVal != "" {
		return fileVal
	}
	return ":8080"
}

// splitCSV splits a comma-separated flag value, trimming blanks.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
