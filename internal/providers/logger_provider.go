package providers

import (
	"fragments/internal/structures"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeGet
	TypePost
)

type Logger interface {
	Errorf(logType TypeEnum, format string, v ...interface{})
	Warnf(logType TypeEnum, format string, v ...interface{})
	Debugf(logType TypeEnum, format string, v ...interface{})
	Infof(logType TypeEnum, format string, v ...interface{})
	Fatalf(logType TypeEnum, format string, v ...interface{})
	Close()
}

var logFileNames = map[TypeEnum]string{
	TypeApp:  "app.log",
	TypeGet:  "get.log",
	TypePost: "post.log",
}

type LogProvider struct {
	loggers map[TypeEnum]zerolog.Logger
	files   []*os.File
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, err
	}

	lp := &LogProvider{loggers: make(map[TypeEnum]zerolog.Logger)}
	mode := os.FileMode(conf.Logger.Mode)

	for logType, name := range logFileNames {
		path := filepath.Join(conf.Logger.Dir, name)
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, mode)
		if err != nil {
			lp.Close()
			return nil, err
		}
		lp.files = append(lp.files, file)
		lp.loggers[logType] = zerolog.New(file).Level(level).With().Timestamp().Logger()
	}

	return lp, nil
}

func GetLogTypeByRequestType(method string) TypeEnum {
	if method == http.MethodPost {
		return TypePost
	}
	return TypeGet
}

func (lp *LogProvider) Errorf(logType TypeEnum, format string, v ...interface{}) {
	logger := lp.loggers[logType]
	logger.Error().Msgf(format, v...)
}

func (lp *LogProvider) Warnf(logType TypeEnum, format string, v ...interface{}) {
	logger := lp.loggers[logType]
	logger.Warn().Msgf(format, v...)
}

func (lp *LogProvider) Debugf(logType TypeEnum, format string, v ...interface{}) {
	logger := lp.loggers[logType]
	logger.Debug().Msgf(format, v...)
}

func (lp *LogProvider) Infof(logType TypeEnum, format string, v ...interface{}) {
	logger := lp.loggers[logType]
	logger.Info().Msgf(format, v...)
}

func (lp *LogProvider) Fatalf(logType TypeEnum, format string, v ...interface{}) {
	logger := lp.loggers[logType]
	logger.Fatal().Msgf(format, v...)
}

func (lp *LogProvider) Close() {
	for _, file := range lp.files {
		_ = file.Close()
	}
}
