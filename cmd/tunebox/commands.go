package main

import (
	"context"

	"github.com/spf13/cobra"
)

// createRootCommand создает корневую команду с настроенными подкомандами
func (app *Application) createRootCommand(ctx context.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tunebox",
		Short: "A command line music player with queue and playlists",
		Long:  `A command line music player: catalog browsing, playback queue with shuffle and repeat, persisted playlists.`,
	}

	// Добавляем команды, передавая в них экземпляр приложения и контекст
	rootCmd.AddCommand(app.createListCommand())
	rootCmd.AddCommand(app.createPlayCommand(ctx))
	rootCmd.AddCommand(app.createPlaylistCommand(ctx))
	rootCmd.AddCommand(app.createThemeCommand())
	rootCmd.AddCommand(app.createImportCommand())
	rootCmd.AddCommand(app.createTUICommand())

	return rootCmd
}
