package genetic_tsp

import (
	"fmt"
	"os"

	colorable "github.com/mattn/go-colorable"
	isatty "github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// NewLogger builds the stderr logger every tool shares. stdout is reserved
// for results.
func NewLogger(c LogConfig) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(colorable.NewColorableStderr())

	level := logrus.InfoLevel
	if c.Level != "" {
		lvl, err := logrus.ParseLevel(c.Level)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		level = lvl
	}
	log.SetLevel(level)

	switch c.Format {
	case "", "text":
		fd := os.Stderr.Fd()
		log.SetFormatter(&logrus.TextFormatter{
			ForceColors:     isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("%w: unknown log format %q", ErrConfiguration, c.Format)
	}
	return log, nil
}
