package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/ui/style"
)

const hashPrefixLen = 12

// Status prints the last recorded build of every pipeline.
func (a *App) Status(_ context.Context, opts Options) error {
	settings, err := a.resolve(opts)
	if err != nil {
		return err
	}
	root := settings.Layout.Root

	rows := []string{style.Header.Render("kiln status") + " " + style.Muted.Render(root)}
	for _, class := range domain.AllClasses() {
		info, err := a.store.Get(root, class)
		if err != nil {
			return err
		}
		rows = append(rows, statusRow(class, info))
	}

	_, err = fmt.Fprintln(a.stdout, lipgloss.JoinVertical(lipgloss.Left, rows...))
	return err
}

func statusRow(class domain.AssetClass, info *domain.BuildInfo) string {
	label := style.Label.Render(class.String())
	if info == nil {
		return label + style.Muted.Render("never built")
	}

	hash := info.OutputHash
	if len(hash) > hashPrefixLen {
		hash = hash[:hashPrefixLen]
	}

	fields := []string{
		style.Fresh.Render(style.Check),
		style.Value.Render(info.Mode.String()),
		style.Value.Render(fmt.Sprintf("%d files", len(info.Files))),
		style.Muted.Render(hash),
		style.Muted.Render(info.Timestamp.Local().Format(time.DateTime)),
		style.Muted.Render(info.Duration.Round(time.Millisecond).String()),
	}
	return label + strings.Join(fields, " ")
}
