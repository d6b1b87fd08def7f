package editor

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/lexicon/pkg/core"
)

// LogNotifier sends notices to a logger at info level.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(msg string) {
	if n.Logger == nil {
		return
	}
	n.Logger.Info("notice", "message", msg)
}

// WriterNotifier prints one notice per line.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Notify(msg string) {
	if n.W == nil {
		return
	}
	fmt.Fprintln(n.W, msg)
}

var (
	_ core.Notifier = LogNotifier{}
	_ core.Notifier = WriterNotifier{}
)
