package ui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/anomredux/codex-smi/internal/theme"
)

const bannerTTL = 5 * time.Second

// NotificationManager holds the transient status banner shown under the
// tab bar. A message lives for bannerTTL; setting a new one restarts the
// clock and re-arms the terminal bell when enabled.
type NotificationManager struct {
	message  string
	deadline time.Time
	bell     bool
	ring     bool
}

func NewNotificationManager(bell bool) *NotificationManager {
	return &NotificationManager{bell: bell}
}

func (nm *NotificationManager) SetMessage(msg string) {
	nm.message = msg
	nm.deadline = time.Now().Add(bannerTTL)
	nm.ring = nm.bell
}

// Expire drops a stale banner. Called from Update, never from View.
func (nm *NotificationManager) Expire() {
	if nm.message != "" && time.Now().After(nm.deadline) {
		nm.message = ""
	}
}

// RenderBanner centers the banner across width, prefixing the bell
// character once per message. Empty when nothing is pending.
func (nm *NotificationManager) RenderBanner(width int) string {
	if nm.message == "" || time.Now().After(nm.deadline) {
		return ""
	}
	bell := ""
	if nm.ring {
		bell = "\a"
		nm.ring = false
	}
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1).
		Foreground(theme.ColorMauve)
	return bell + style.Render(nm.message)
}
