package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/spf13/cobra"

	"github.com/hazadus/go-tunebox/internal/catalog"
)

// createImportCommand создает команду import
func (app *Application) createImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file path...]",
		Short: "Import local mp3 files into the local catalog",
		Long:  `Read tags from local mp3 files and append them to the local catalog in the state directory.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.importFiles(args)
		},
	}
}

// rawTrack запись локального каталога в формате документа каталога
type rawTrack struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album,omitempty"`
	URL    string `json:"url"`
}

func (app *Application) importFiles(paths []string) error {
	catalogPath := filepath.Join(app.Config.StateDir, localCatalogName)

	// Загружаем существующий локальный каталог, если он есть
	var raw []map[string]any
	if data, err := os.ReadFile(catalogPath); err == nil {
		if parsed, parseErr := catalog.ParseDocument(data); parseErr == nil {
			raw = parsed
		} else {
			fmt.Printf("⚠️  Локальный каталог поврежден, создаем заново: %v\n", parseErr)
		}
	}

	imported := 0
	for _, path := range paths {
		track, err := readTrackTags(path)
		if err != nil {
			fmt.Printf("⚠️  Пропускаем %s: %v\n", path, err)
			continue
		}

		raw = append(raw, map[string]any{
			"title":  track.Title,
			"artist": track.Artist,
			"album":  track.Album,
			"url":    track.URL,
		})
		imported++
		fmt.Printf("✅ %s — %s\n", track.Artist, track.Title)
	}

	if imported == 0 {
		return fmt.Errorf("не удалось импортировать ни одного файла")
	}

	// Сохраняем документ каталога
	if err := os.MkdirAll(app.Config.StateDir, 0o755); err != nil {
		return fmt.Errorf("ошибка создания директории состояния: %w", err)
	}
	data, err := json.MarshalIndent(map[string]any{"tracks": raw}, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации каталога: %w", err)
	}
	if err := os.WriteFile(catalogPath, data, 0o644); err != nil {
		return fmt.Errorf("ошибка записи каталога: %w", err)
	}

	fmt.Printf("\n📦 Импортировано треков: %d, каталог: %s\n", imported, catalogPath)
	return nil
}

// readTrackTags читает теги mp3 файла; отсутствующие теги заменяются
// именем файла
func readTrackTags(path string) (*rawTrack, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	track := &rawTrack{URL: path}

	metadata, err := tag.ReadFrom(file)
	if err == nil {
		track.Title = metadata.Title()
		track.Artist = metadata.Artist()
		track.Album = metadata.Album()
	}

	if track.Title == "" {
		name := filepath.Base(path)
		track.Title = strings.TrimSuffix(name, filepath.Ext(name))
	}

	return track, nil
}
