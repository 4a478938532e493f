package providers

import (
	"fmt"
	"os"
	"path/filepath"

	"fgd/internal/structures"

	"github.com/rs/zerolog"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeFetch
	TypeHttp
)

type Logger interface {
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Errorf(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

type LogProvider struct {
	loggers map[TypeEnum]zerolog.Logger
	files   []*os.File
}

var typeFileNames = map[TypeEnum]string{
	TypeApp:   "app.log",
	TypeFetch: "fetch.log",
	TypeHttp:  "http.log",
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", conf.Logger.Level, err)
	}

	provider := &LogProvider{
		loggers: make(map[TypeEnum]zerolog.Logger),
	}

	for logType, fileName := range typeFileNames {
		path := filepath.Join(conf.Logger.Dir, fileName)
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, os.FileMode(conf.Logger.Mode))
		if err != nil {
			provider.Close()
			return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		provider.files = append(provider.files, file)

		var logger zerolog.Logger
		if conf.Debug {
			multi := zerolog.MultiLevelWriter(file, zerolog.ConsoleWriter{Out: os.Stderr})
			logger = zerolog.New(multi)
		} else {
			logger = zerolog.New(file)
		}
		provider.loggers[logType] = logger.Level(level).With().Timestamp().Logger()
	}

	return provider, nil
}

func (lp *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	l := lp.loggers[t]
	l.Debug().Msgf(format, args...)
}

func (lp *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	l := lp.loggers[t]
	l.Info().Msgf(format, args...)
}

func (lp *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	l := lp.loggers[t]
	l.Warn().Msgf(format, args...)
}

func (lp *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	l := lp.loggers[t]
	l.Error().Msgf(format, args...)
}

func (lp *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	l := lp.loggers[t]
	l.Fatal().Msgf(format, args...)
}

func (lp *LogProvider) Close() {
	for _, file := range lp.files {
		_ = file.Close()
	}
}
