package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fmarker/extractor/internal/config"
	"github.com/fmarker/extractor/internal/logging"
	intOtel "github.com/fmarker/extractor/internal/otel"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	CurrentExtractorVersion string = "0.1.0"
	BuildDate               string = "unknown"

	ExtensionName string = "waymark_extractor"
)

// ConfigDirEnv overrides the directory the config file is read from
const ConfigDirEnv = "WAYMARK_CONFIG_DIR"

// global variables
var (
	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// DBLogger is used by the database and InfluxDB helpers
	DBLogger zerolog.Logger

	// OTelProvider handles OpenTelemetry
	OTelProvider *intOtel.Provider

	LogFilePath string
	LogFile     *os.File

	SessionStartTime time.Time = time.Now()
)

// configDir returns the directory holding the config file.
func configDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// setup loads config and initializes logging and OTel.
func setup() {
	SlogManager = logging.NewSlogManager()
	SlogManager.Setup(nil, config.GetString("logLevel"), nil)
	Logger = SlogManager.Logger()

	// load config
	if err := config.Load(configDir()); err != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	} else {
		Logger.Debug("Loaded config", "file", viper.ConfigFileUsed())
	}

	var err error
	LogFile, LogFilePath, err = logging.OpenLogFile(config.GetString("logsDir"), ExtensionName, SessionStartTime)
	if err != nil {
		Logger.Error("Failed to create/open log file!", "error", err, "path", LogFilePath)
		LogFile = nil
	}

	var logWriter io.Writer
	if LogFile != nil {
		logWriter = LogFile
	}

	// Initialize OTel provider if enabled (after log file is created)
	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		OTelProvider, err = intOtel.New(intOtel.Config{
			Enabled:      otelCfg.Enabled,
			ServiceName:  otelCfg.ServiceName,
			BatchTimeout: otelCfg.BatchTimeout,
			LogWriter:    logWriter,
			Endpoint:     otelCfg.Endpoint,
			Insecure:     otelCfg.Insecure,
		})
		if err != nil {
			Logger.Error("Failed to initialize OTel provider", "error", err)
			OTelProvider = nil
		} else {
			Logger.Info("OTel provider initialized", "file", LogFilePath, "endpoint", otelCfg.Endpoint)
		}
	}

	// Re-setup logging with file output and optional OTel
	var otelLogProvider *sdklog.LoggerProvider
	if OTelProvider != nil {
		otelLogProvider = OTelProvider.LoggerProvider()
	}
	SlogManager.Setup(logWriter, config.GetString("logLevel"), otelLogProvider)
	Logger = SlogManager.Logger()

	DBLogger = newDBLogger(config.GetString("logLevel"), logWriter)
}

// newDBLogger builds the zerolog logger used by the database helpers.
func newDBLogger(level string, file io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if file != nil {
		w = file
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("component", "storage").Logger()
}

// shutdown flushes logs and closes the log file.
func shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := SlogManager.Flush(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to flush logs: %v\n", err)
	}
	if OTelProvider != nil {
		if err := OTelProvider.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to shut down OTel provider: %v\n", err)
		}
	}
	if LogFile != nil {
		_ = LogFile.Close()
	}
}

func main() {
	cmd, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if cmd.Name == commandVersion {
		fmt.Printf("%s %s (built %s)\n", ExtensionName, CurrentExtractorVersion, BuildDate)
		return
	}

	setup()
	if cmd.Name == commandShow {
		err = runShow(cmd.RunID, os.Stdout)
	} else {
		err = runExtract(cmd.Path, os.Stdout)
	}
	shutdown()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", ExtensionName, err)
		os.Exit(1)
	}
}
