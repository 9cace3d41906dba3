package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-tunebox/internal/utils"
)

// createListCommand создает команду list с привязкой к экземпляру приложения
func (app *Application) createListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tracks from the catalog",
		Long:  `Display a list of all playable tracks from the configured catalog.`,
		Run: func(_ *cobra.Command, _ []string) {
			app.listTracks()
		},
	}
}

func (app *Application) listTracks() {
	if app.Catalog.IsEmpty() {
		fmt.Println("📚 Каталог пуст. Настройте catalog_url или добавьте треки командой 'import'.")
		return
	}

	fmt.Printf("📚 Найдено треков: %d\n", app.Catalog.Len())
	if app.Skipped > 0 {
		fmt.Printf("⚠️  Пропущено записей без источника: %d\n", app.Skipped)
	}
	fmt.Println()

	// Выводим заголовок таблицы
	fmt.Printf("%-4s %-6s %-30s %-30s %-20s\n",
		"#", "ID", "Исполнитель", "Название", "Альбом")
	fmt.Println(strings.Repeat("-", 95))

	// Выводим каждый трек
	for i := 0; i < app.Catalog.Len(); i++ {
		track := app.Catalog.Track(i)

		artist := utils.TruncateString(track.Artist, 28)
		title := utils.TruncateString(track.Title, 28)
		album := utils.TruncateString(track.Album, 18)

		fmt.Printf("%-4d %-6s %-30s %-30s %-20s\n",
			i, track.ID, artist, title, album)
	}

	fmt.Println()
	fmt.Println("💡 Используйте 'tunebox play [номер]' для воспроизведения трека")
}
