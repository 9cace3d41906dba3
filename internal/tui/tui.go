// Package tui содержит компоненты для текстового пользовательского интерфейса
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-tunebox/internal/catalog"
	"github.com/hazadus/go-tunebox/internal/player"
	"github.com/hazadus/go-tunebox/internal/playlist"
	"github.com/hazadus/go-tunebox/internal/queue"
	"github.com/hazadus/go-tunebox/internal/tui/app"
	"github.com/hazadus/go-tunebox/internal/visualizer"
)

// Deps зависимости TUI приложения
type Deps struct {
	Catalog    *catalog.Catalog
	Engine     *queue.Engine
	Player     *player.Player
	Playlists  *playlist.Store
	Visualizer *visualizer.Visualizer
	Theme      string
}

// App представляет основное TUI приложение
type App struct {
	deps Deps
}

// NewApp создает новый экземпляр TUI приложения
func NewApp(deps Deps) *App {
	return &App{deps: deps}
}

// Run запускает TUI приложение
func (tuiApp *App) Run() error {
	// Создаем модель для Bubble Tea
	model := app.NewMainModel(app.Deps{
		Catalog:    tuiApp.deps.Catalog,
		Engine:     tuiApp.deps.Engine,
		Player:     tuiApp.deps.Player,
		Playlists:  tuiApp.deps.Playlists,
		Visualizer: tuiApp.deps.Visualizer,
		Theme:      tuiApp.deps.Theme,
	})

	// Создаем программу Bubble Tea
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Запускаем программу
	_, err := p.Run()

	// Останавливаем воспроизведение после завершения программы
	model.Close()

	return err
}
