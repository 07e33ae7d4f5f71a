package logger

import (
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var root zerolog.Logger

func init() {
	Init("info")
}

// Init configures the process-wide logger. Accepted levels are debug, info,
// warn, error and fatal; anything else falls back to info. At debug level the
// output switches to the human-readable console format.
func Init(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	out := zerolog.New(os.Stdout)
	if lvl == zerolog.DebugLevel {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"})
	}

	root = out.Level(lvl).With().Timestamp().Caller().Logger()
}

func Debug() *zerolog.Event { return root.Debug() }
func Info() *zerolog.Event  { return root.Info() }
func Warn() *zerolog.Event  { return root.Warn() }
func Error() *zerolog.Event { return root.Error() }
func Fatal() *zerolog.Event { return root.Fatal() }

func Infof(format string, v ...interface{})  { root.Info().Msgf(format, v...) }
func Warnf(format string, v ...interface{})  { root.Warn().Msgf(format, v...) }
func Errorf(format string, v ...interface{}) { root.Error().Msgf(format, v...) }

// Fatalf logs at fatal level and exits the process.
func Fatalf(format string, v ...interface{}) { root.Fatal().Msgf(format, v...) }

// Get exposes the underlying zerolog.Logger.
func Get() zerolog.Logger { return root }

// GinLogger logs every HTTP request with status, latency and client IP.
// Server errors log at error level, client errors at warn.
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		evt := root.Info()
		switch {
		case status >= 500:
			evt = root.Error()
		case status >= 400:
			evt = root.Warn()
		}

		evt.Int("status", status).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Str("ip", c.ClientIP()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// GinRecovery converts panics into logged 500 responses.
func GinRecovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		root.Error().
			Interface("panic", recovered).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("ip", c.ClientIP()).
			Msg("panic recovered")
		c.AbortWithStatus(500)
	})
}
