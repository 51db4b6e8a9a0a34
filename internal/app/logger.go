package app

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is the component-tagged logging shape shared by every package.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// FileLogger writes logrus text records with a component field.
type FileLogger struct{ log *logrus.Logger }

func NewFileLogger(w io.Writer) FileLogger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	return FileLogger{log: l}
}

func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	l.log.WithField("component", component).Infof(format, args...)
}

func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	l.log.WithField("component", component).Errorf(format, args...)
}
