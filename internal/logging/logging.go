package logging

import (
	"context"
	"io"
	"os"
	"strings"

	auzerolog "github.com/StephanHCB/go-autumn-logging-zerolog"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	ApplicationName  = "paycomet"
	defaultRequestID = "ffffffff"
)

type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})

	// expected to terminate the process
	Fatal(format string, v ...interface{})
}

type loggingWrapper struct {
	logger *zerolog.Logger
}

func (l *loggingWrapper) Debug(format string, v ...interface{}) {
	l.logger.Debug().Msgf(format, v...)
}

func (l *loggingWrapper) Info(format string, v ...interface{}) {
	l.logger.Info().Msgf(format, v...)
}

func (l *loggingWrapper) Warn(format string, v ...interface{}) {
	l.logger.Warn().Msgf(format, v...)
}

func (l *loggingWrapper) Error(format string, v ...interface{}) {
	l.logger.Error().Msgf(format, v...)
}

// expected to terminate the process
func (l *loggingWrapper) Fatal(format string, v ...interface{}) {
	l.logger.Fatal().Msgf(format, v...)
}

// context key with a separate type, so no other package has a chance of accessing it
type key int

const (
	LoggerKey    key = 0
	RequestIdKey key = 1
)

// stdout belongs to command results, so log output goes to stderr
var output io.Writer = os.Stderr

var plainOutput = true

// Setup configures the log level and format for everything created by NewLogger afterwards.
//
// The go-autumn global logger used by the circuit breaker is configured to match.
func Setup(severity string, json bool) {
	zerolog.SetGlobalLevel(levelFor(severity))
	plainOutput = !json

	if json {
		auzerolog.SetupJsonLogging(ApplicationName)
	} else {
		auzerolog.SetupPlaintextLogging()
	}
	// the go-autumn setup writes to stdout and resets the global level
	log.Logger = log.Logger.Output(globalWriter(json))
	zerolog.SetGlobalLevel(levelFor(severity))
}

func globalWriter(json bool) io.Writer {
	if json {
		return output
	}
	return zerolog.ConsoleWriter{Out: output, NoColor: true}
}

// SetOutput redirects log output, mainly useful in tests.
func SetOutput(w io.Writer) {
	output = w
}

func levelFor(severity string) zerolog.Level {
	switch strings.ToUpper(severity) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func LoggerFromContext(ctx context.Context) Logger {
	logger, ok := ctx.Value(LoggerKey).(Logger)
	if !ok {
		return NewLogger()
	}

	return logger
}

// ContextWithRequestID stores the request id and a logger that tags every line with it.
func ContextWithRequestID(ctx context.Context, requestId string) context.Context {
	ctx = context.WithValue(ctx, RequestIdKey, requestId)
	return context.WithValue(ctx, LoggerKey, newLogger(requestId))
}

// NewRequestID returns 8 hex characters identifying one invocation.
func NewRequestID() string {
	reqUuid, err := uuid.NewRandom()
	if err != nil {
		// should never happen, continue with the fixed id
		return defaultRequestID
	}
	return reqUuid.String()[:8]
}

func RequestIDFromContext(ctx context.Context) string {
	if reqID, ok := ctx.Value(RequestIdKey).(string); ok {
		return reqID
	}

	return defaultRequestID
}

func NewLogger() Logger {
	return newLogger("")
}

func newLogger(requestId string) Logger {
	var w io.Writer = output
	if plainOutput {
		w = zerolog.ConsoleWriter{Out: output, NoColor: true}
	}

	builder := zerolog.New(w).
		With().
		Str("App", ApplicationName).
		Timestamp()
	if requestId != "" {
		builder = builder.Str("RequestId", requestId)
	}
	logger := builder.Logger()

	return &loggingWrapper{
		logger: &logger,
	}
}

func NewNoopLogger() Logger {
	return &noopLogger{}
}

type noopLogger struct {
}

func (l *noopLogger) Debug(format string, v ...interface{}) {
}

func (l *noopLogger) Info(format string, v ...interface{}) {
}

func (l *noopLogger) Warn(format string, v ...interface{}) {
}

func (l *noopLogger) Error(format string, v ...interface{}) {
}

// expected to terminate the process
func (l *noopLogger) Fatal(format string, v ...interface{}) {
}
