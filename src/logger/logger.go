package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otellogrus"
)

var otelHookOnce sync.Once

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Setup configures the standard logrus logger. Records logged with a context are also attached to the active span.
func Setup(out io.Writer, level string, format Format) error {
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("logger.Setup: %w", err)
	}

	logrus.SetOutput(out)
	logrus.SetLevel(lvl)

	switch format {
	case FormatJSON:
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case FormatText, "":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("logger.Setup: unknown format %q", format)
	}

	otelHookOnce.Do(func() {
		logrus.AddHook(otellogrus.NewHook(otellogrus.WithLevels(
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
			logrus.WarnLevel,
			logrus.InfoLevel,
		)))
	})

	return nil
}
