package thicket

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger creates the engine logger writing to w (stderr when nil) at the
// named level. Unknown levels fall back to info.
func NewLogger(w io.Writer, level string) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "thicket",
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}
