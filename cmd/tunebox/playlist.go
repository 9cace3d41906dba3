package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-tunebox/internal/export"
	"github.com/hazadus/go-tunebox/internal/playlist"
	"github.com/hazadus/go-tunebox/internal/utils"
)

// createPlaylistCommand создает команду playlist с подкомандами
func (app *Application) createPlaylistCommand(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playlist",
		Short: "Manage playlists",
		Long:  `Create playlists, add catalog tracks to them and publish them to S3 storage.`,
	}

	cmd.AddCommand(app.createPlaylistListCommand())
	cmd.AddCommand(app.createPlaylistCreateCommand())
	cmd.AddCommand(app.createPlaylistAddCommand())
	cmd.AddCommand(app.createPlaylistSelectCommand())
	cmd.AddCommand(app.createPlaylistPublishCommand(ctx))

	return cmd
}

func (app *Application) createPlaylistListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all playlists",
		Run: func(_ *cobra.Command, _ []string) {
			app.listPlaylists()
		},
	}
}

func (app *Application) createPlaylistCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new playlist and make it active",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			p, err := app.Playlists.Create(args[0])
			if err != nil {
				return fmt.Errorf("ошибка создания плейлиста: %w", err)
			}
			fmt.Printf("✅ Плейлист %q создан и сделан активным (id: %s)\n", p.Name, p.ID)
			return nil
		},
	}
}

func (app *Application) createPlaylistAddCommand() *cobra.Command {
	var playlistID string

	cmd := &cobra.Command{
		Use:   "add [track number]",
		Short: "Add a catalog track to a playlist",
		Long:  `Add a catalog track to the active playlist, or to the playlist given with --to.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("неверный номер трека: %s", args[0])
			}
			track := app.Catalog.Track(index)
			if track == nil {
				return fmt.Errorf("трек с номером %d не найден", index)
			}

			p, err := app.Playlists.AddTrack(playlistID, index)
			if err != nil {
				return fmt.Errorf("ошибка добавления трека: %w", err)
			}
			fmt.Printf("✅ %s — %s добавлен в плейлист %q\n", track.Artist, track.Title, p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&playlistID, "to", "", "id плейлиста (по умолчанию активный)")
	return cmd
}

func (app *Application) createPlaylistSelectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "select [playlist id]",
		Short: "Make a playlist active",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := app.Playlists.SelectActive(args[0]); err != nil {
				return fmt.Errorf("ошибка выбора плейлиста: %w", err)
			}
			fmt.Printf("✅ Плейлист %q теперь активный\n", app.Playlists.Active().Name)
			return nil
		},
	}
}

func (app *Application) createPlaylistPublishCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "publish [playlist id]",
		Short: "Publish a playlist to S3 storage",
		Long:  `Publish a playlist as a self-contained JSON document to the configured S3 bucket. Without arguments the active playlist is published.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if app.s3Client == nil {
				return fmt.Errorf("публикация требует настроенного S3 (блок aws_* в конфигурации)")
			}

			var p *playlist.Playlist
			if len(args) > 0 {
				p = app.Playlists.Get(args[0])
				if p == nil {
					return fmt.Errorf("плейлист %q не найден", args[0])
				}
			} else {
				p = app.Playlists.Active()
				if p == nil {
					return fmt.Errorf("нет активного плейлиста")
				}
			}

			publishCtx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()

			service := export.NewService(app.s3Client, app.Catalog)
			url, err := service.Publish(publishCtx, p)
			if err != nil {
				return fmt.Errorf("ошибка публикации: %w", err)
			}

			fmt.Printf("✅ Плейлист %q опубликован!\n", p.Name)
			fmt.Printf("   URL: %s\n", url)
			return nil
		},
	}
}

func (app *Application) listPlaylists() {
	all := app.Playlists.All()
	if len(all) == 0 {
		fmt.Println("📚 Плейлистов нет. Создайте первый командой 'playlist create'.")
		return
	}

	// Стабильный порядок вывода
	playlists := make([]*playlist.Playlist, 0, len(all))
	for _, p := range all {
		playlists = append(playlists, p)
	}
	sort.Slice(playlists, func(i, j int) bool {
		return playlists[i].Name < playlists[j].Name
	})

	active := app.Playlists.Active()

	fmt.Printf("%-10s %-30s %-10s %s\n", "ID", "Название", "Треков", "")
	fmt.Println(strings.Repeat("-", 55))
	for _, p := range playlists {
		marker := ""
		if active != nil && p.ID == active.ID {
			marker = "● активный"
		}
		fmt.Printf("%-10s %-30s %-10d %s\n",
			p.ID, utils.TruncateString(p.Name, 28), len(p.TrackIDs), marker)
	}
}
