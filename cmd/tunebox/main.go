package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hazadus/go-tunebox/internal/catalog"
	"github.com/hazadus/go-tunebox/internal/config"
	"github.com/hazadus/go-tunebox/internal/player"
	"github.com/hazadus/go-tunebox/internal/playlist"
	"github.com/hazadus/go-tunebox/internal/queue"
	"github.com/hazadus/go-tunebox/internal/s3"
	"github.com/hazadus/go-tunebox/internal/storage"
	"github.com/hazadus/go-tunebox/internal/visualizer"
)

const defaultConfigPath = "~/.tunebox"

// localCatalogName имя локального каталога в директории состояния;
// используется, когда catalog_url не задан, и пополняется командой import
const localCatalogName = "catalog.json"

// Application связывает компоненты приложения и передается командам
type Application struct {
	Config     *config.Config
	Storage    storage.Store
	Catalog    *catalog.Catalog
	Skipped    int // Количество записей, пропущенных при нормализации каталога
	Engine     *queue.Engine
	Player     *player.Player
	Playlists  *playlist.Store
	Visualizer *visualizer.Visualizer

	s3Client *s3.Client
}

// newApplication собирает приложение: конфигурация, хранилище состояния,
// каталог, плеер и движок очереди
func newApplication(ctx context.Context, cfg *config.Config) (*Application, error) {
	app := &Application{
		Config:  cfg,
		Storage: storage.NewFileStore(cfg.StateDir),
	}

	// S3 клиент нужен только при настроенных aws_* параметрах
	if cfg.AwsBucketName != "" {
		client, err := s3.NewClient(&s3.Config{
			Region:     cfg.AwsRegion,
			AccessKey:  cfg.AwsAccessKey,
			SecretKey:  cfg.AwsSecretKey,
			Endpoint:   cfg.AwsEndpoint,
			BucketName: cfg.AwsBucketName,
		})
		if err != nil {
			return nil, fmt.Errorf("ошибка создания S3 клиента: %w", err)
		}
		app.s3Client = client
	}

	// Загружаем каталог; недоступный каталог не фатален - работаем с пустым
	fetcher := catalog.NewFetcher(app.s3Client)
	cat, skipped, err := fetcher.Load(ctx, app.catalogSource())
	if err != nil {
		log.Printf("⚠️  Каталог недоступен, продолжаем с пустым: %v", err)
		cat = &catalog.Catalog{}
	}
	app.Catalog = cat
	app.Skipped = skipped
	if skipped > 0 {
		log.Printf("⚠️  Пропущено записей каталога без источника: %d", skipped)
	}

	// Плейлисты
	app.Playlists = playlist.NewStore(app.Storage)
	app.Playlists.Load()

	// Плеер, визуализатор и движок очереди
	app.Player = player.NewPlayer()
	app.Visualizer = visualizer.New()
	app.Player.Wrap = app.Visualizer.Wrap

	app.Engine = queue.NewEngine(app.Catalog, app.Player)
	app.Engine.OnTrackChange = func(_ int) {
		app.Visualizer.Reset()
	}

	return app, nil
}

// catalogSource возвращает настроенный источник каталога либо
// локальный файл в директории состояния
func (app *Application) catalogSource() string {
	if app.Config.CatalogURL != "" {
		return app.Config.CatalogURL
	}
	return filepath.Join(app.Config.StateDir, localCatalogName)
}

// Close освобождает ресурсы приложения
func (app *Application) Close() {
	if app.Player != nil {
		app.Player.Close()
	}
}

func main() {
	ctx := context.Background()

	// Загружаем конфигурацию
	cfg, err := config.LoadConfig(defaultConfigPath)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	app, err := newApplication(ctx, cfg)
	if err != nil {
		log.Fatalf("Ошибка инициализации приложения: %v", err)
	}
	defer app.Close()

	rootCmd := app.createRootCommand(ctx)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
