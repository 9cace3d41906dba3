package main

import (
	"github.com/spf13/cobra"

	"github.com/hazadus/go-tunebox/internal/tui"
)

// createTUICommand создает команду tui с привязкой к экземпляру приложения
func (app *Application) createTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch TUI (Terminal User Interface)",
		Long:  `Launch interactive terminal user interface for browsing the catalog, playing the queue and managing playlists.`,
		Run: func(_ *cobra.Command, _ []string) {
			app.launchTUI()
		},
	}
}

func (app *Application) launchTUI() {
	tuiApp := tui.NewApp(tui.Deps{
		Catalog:    app.Catalog,
		Engine:     app.Engine,
		Player:     app.Player,
		Playlists:  app.Playlists,
		Visualizer: app.Visualizer,
		Theme:      app.loadTheme(),
	})

	if err := tuiApp.Run(); err != nil {
		panic(err)
	}
}
