// Package audit keeps an append-only trail of destructive operations.
// Local directory removal and remote repository deletion are
// irreversible, so each one is recorded before it runs.
package audit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type (
	Options struct {
		Path       string
		MaxSizeMB  int
		MaxBackups int
	}

	Recorder struct {
		logger *zap.Logger
	}
)

const (
	OpRemoveLocalDirectory   = "remove-local-directory"
	OpDeleteRemoteRepository = "delete-remote-repository"
)

// NewRecorder opens the audit log, creating parent directories as
// needed. Entries are JSON lines rotated by size.
func NewRecorder(opts Options) (*Recorder, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("audit log path is required")
	}

	err := os.MkdirAll(filepath.Dir(opts.Path), 0750)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit log directory: %s", err.Error())
	}

	writer := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(writer),
		zapcore.InfoLevel,
	)

	return &Recorder{logger: zap.New(core)}, nil
}

// NewNop returns a recorder that discards entries.
func NewNop() *Recorder {
	return &Recorder{logger: zap.NewNop()}
}

// Destroy records an irreversible operation about to run against target.
func (r *Recorder) Destroy(op, target string) {
	r.logger.Info("destructive operation",
		zap.String("id", ulid.Make().String()),
		zap.String("op", op),
		zap.String("target", target),
	)
}

func (r *Recorder) Close() error {
	return r.logger.Sync()
}
