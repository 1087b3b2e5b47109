package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/statichost/site-sync/config"
)

// newLogWriter selects an [io.Writer] for logging based on the application's
// configuration, determining the appropriate output destination and format.
func newLogWriter() io.Writer {
	output := config.LoggingOutput.String()
	format := config.LoggingFormat.String()

	switch format {
	case "json":
		switch output {
		case "stdout":
			return os.Stdout
		case "stderr":
			return os.Stderr
		default:
			return fileWriter(output)
		}

	case "text":
		switch output {
		case "stdout":
			return consoleWriter()
		case "stderr":
			c := consoleWriter()
			c.Out = os.Stderr
			return c
		default:
			return fileWriter(output)
		}
	}

	// Only warn if invalid values are set
	if output != "" && format != "" {
		fmt.Println("[WARN] Unknown log format / output combination, defaulting to stdout")
	}

	return os.Stdout
}

func fileWriter(path string) io.Writer {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Println("[ERROR] Failed to open log file:", err)
		fmt.Println("[WARN] Defaulting to stdout")

		return os.Stdout
	}

	return f
}

// consoleWriter creates and returns a [zerolog.ConsoleWriter] that formats log
// messages for display in console environments.
func consoleWriter() zerolog.ConsoleWriter {
	writer := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: config.LoggingTimeFormat.String(),
		NoColor:    !config.LoggingColors.Bool(),
	}

	writer.PartsOrder = []string{
		zerolog.TimestampFieldName,
		zerolog.CallerFieldName,
		zerolog.LevelFieldName,
		zerolog.MessageFieldName,
	}

	return writer
}
