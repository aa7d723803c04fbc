package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	l.SetOutput(os.Stdout)

	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		l.SetLevel(logrus.DebugLevel)
	case "warn":
		l.SetLevel(logrus.WarnLevel)
	case "error":
		l.SetLevel(logrus.ErrorLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}
	return l
}

// SetLevel overrides the level chosen from the environment.
func SetLevel(level string) {
	if parsed, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(parsed)
	}
}

// fields converts alternating key/value arguments into logrus fields.
// A trailing or standalone error value is stored under "error".
func fields(args []any) logrus.Fields {
	f := logrus.Fields{}
	i := 0
	for i < len(args) {
		if key, ok := args[i].(string); ok && i+1 < len(args) {
			f[key] = args[i+1]
			i += 2
			continue
		}
		if err, ok := args[i].(error); ok {
			f["error"] = err
		} else {
			f["arg"] = args[i]
		}
		i++
	}
	return f
}

func Debug(msg string, args ...any) {
	log.WithFields(fields(args)).Debug(msg)
}

func Info(msg string, args ...any) {
	log.WithFields(fields(args)).Info(msg)
}

func Warn(msg string, args ...any) {
	log.WithFields(fields(args)).Warn(msg)
}

func Error(msg string, args ...any) {
	log.WithFields(fields(args)).Error(msg)
}
