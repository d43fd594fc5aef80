package shell

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Banner prints discovery banners and transient notifications to the
// terminal. It is the Display and Notifier collaborator of the discovery
// pipelines when the shell is driving the game.
type Banner struct {
	out io.Writer
}

// NewBanner creates a banner writing to out.
func NewBanner(out io.Writer) *Banner {
	return &Banner{out: out}
}

// AddDiscovery prints the one-line discovery banner.
func (b *Banner) AddDiscovery(name, typeLabel string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(b.out, "%s %s (%s)\n", green("★ Discovered:"), name, typeLabel)
}

// AddNotification prints a transient notification line.
func (b *Banner) AddNotification(message string) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(b.out, "%s %s\n", yellow("»"), message)
}
