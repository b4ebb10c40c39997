package game

import (
	"github.com/ncruces/zenity"
	"github.com/rs/zerolog"
)

// DesktopNotifier shows a system notification through zenity.
type DesktopNotifier struct {
	title string
	log   zerolog.Logger
}

func NewDesktopNotifier(title string, log zerolog.Logger) *DesktopNotifier {
	return &DesktopNotifier{title: title, log: log}
}

// Notify does not block the caller; notification errors are only logged.
func (n *DesktopNotifier) Notify(msg string) {
	go func() {
		if err := zenity.Notify(msg, zenity.Title(n.title), zenity.WarningIcon); err != nil {
			n.log.Debug().Err(err).Msg("Desktop notification failed")
		}
	}()
}
