package logger

import (
	"fmt"
	"strings"

	"mod-sync/core/errdefs"
	"mod-sync/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger from cfg. Level and format are case-insensitive; an
// empty level means info and an unknown one is rejected.
func New(cfg *Config) (*zap.Logger, error) {
	level := strings.ToLower(strings.TrimSpace(cfg.Level))
	if level == "" {
		level = "info"
	}

	var zc zap.Config
	if level == "debug" {
		zc = zap.NewDevelopmentConfig()
	} else {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown log level %q", errdefs.ErrValidation, cfg.Level)
		}
		zc = zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "json":
		zc.Encoding = "json"
	default:
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zc.DisableStacktrace = true
	}

	zc.EncoderConfig.LevelKey = "level"
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.MessageKey = "message"

	return zc.Build()
}

// WithRayID returns l tagged with the request's ray_id, or l itself when the
// rayid middleware has not run.
func WithRayID(l *zap.Logger, c *fiber.Ctx) *zap.Logger {
	if id, ok := c.Locals(rayid.LocalsKey).(string); ok && id != "" {
		return l.With(zap.String("ray_id", id))
	}
	return l
}
