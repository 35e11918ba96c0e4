package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/folio/internal/config"
	"github.com/jask/folio/internal/scrollspy"
	"github.com/jask/folio/internal/tui"
)

// RunView starts the viewer at the --url location, or at the top of the page.
func RunView(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	raw, _ := cmd.Flags().GetString("url")
	initial, err := scrollspy.ParseLocation(raw)
	if err != nil {
		return fmt.Errorf("--url: %w", err)
	}

	s, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	app, err := tui.New(ctx, tui.Options{
		Config:  s.cfg,
		Content: s.content(),
		Logger:  s.log,
		Initial: initial,
		SaveConfig: func(cfg config.Config) error {
			return config.Save(s.configPath, cfg)
		},
	})
	if err != nil {
		return err
	}
	s.log.Info("view: start", "url", initial.String())

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	s.log.Info("view: exit", "location", app.Engine().Status().Location.String())
	return nil
}
