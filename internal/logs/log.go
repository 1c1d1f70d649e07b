// Package logs builds the zap logger used by the command line tool.
package logs

import (
	"io"
	"strings"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls log level and the optional rotated log file.
type Config struct {
	Level      string `yaml:"level" json:"level" toml:"level" help:"Log level (debug, info, warn, error)." default:"info"`
	File       string `yaml:"file" json:"file" toml:"file" help:"Also write JSON logs to this file, rotated by size." type:"path"`
	MaxSize    int    `yaml:"maxSize" json:"maxSize" toml:"maxSize" help:"Rotate the log file after this many megabytes." default:"10"`
	MaxBackups int    `yaml:"maxBackups" json:"maxBackups" toml:"maxBackups" help:"Rotated log files to keep." default:"3"`
	MaxAge     int    `yaml:"maxAge" json:"maxAge" toml:"maxAge" help:"Days to keep rotated log files." default:"28"`
	Compress   bool   `yaml:"compress" json:"compress" toml:"compress" help:"Gzip rotated log files."`
	Dev        bool   `yaml:"dev" json:"dev" toml:"dev" help:"Development logging with stack traces on warnings."`
	NoColor    bool   `yaml:"noColor" json:"noColor" toml:"noColor" help:"Disable colored console levels."`
}

// New builds a logger writing human readable lines to console and, when
// cfg.File is set, JSON lines to a rotated file.
func New(appName string, cfg Config, console io.Writer) *zap.Logger {
	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		lvl = zapcore.InfoLevel
	}
	atomicLevel := zap.NewAtomicLevelAt(lvl)

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	consoleCfg := encoderCfg
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if cfg.NoColor {
		consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	consoleCore := zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(zapcore.AddSync(console)), atomicLevel)

	core := consoleCore
	if cfg.File != "" {
		// JSON to the file keeps ANSI colors out of it
		fileCfg := encoderCfg
		fileCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    max(1, cfg.MaxSize),
			MaxBackups: max(0, cfg.MaxBackups),
			MaxAge:     max(0, cfg.MaxAge),
			Compress:   cfg.Compress,
		}
		core = zapcore.NewTee(
			consoleCore,
			zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(fileWriter), atomicLevel),
		)
	}

	opts := []zap.Option{zap.AddCaller()}
	if cfg.Dev {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	}
	return zap.New(core, opts...).Named(appName)
}

// WithRun tags every entry of l with the run correlation id.
func WithRun(l *zap.Logger, runID string) *zap.Logger {
	return l.With(zap.String("run_id", runID))
}
