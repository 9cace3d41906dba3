// Package app содержит основную логику TUI приложения
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-tunebox/internal/catalog"
	"github.com/hazadus/go-tunebox/internal/player"
	"github.com/hazadus/go-tunebox/internal/playlist"
	"github.com/hazadus/go-tunebox/internal/queue"
	tuiPlayer "github.com/hazadus/go-tunebox/internal/tui/player"
	"github.com/hazadus/go-tunebox/internal/tui/playlists"
	"github.com/hazadus/go-tunebox/internal/tui/tracklist"
	"github.com/hazadus/go-tunebox/internal/visualizer"
)

// ScreenType определяет тип текущего экрана
type ScreenType int

// Константы для типов экранов
const (
	// TracklistScreen - экран каталога
	TracklistScreen ScreenType = iota
	// PlayerScreen - экран воспроизведения
	PlayerScreen
	// PlaylistsScreen - экран плейлистов
	PlaylistsScreen
)

// Deps зависимости главной модели
type Deps struct {
	Catalog    *catalog.Catalog
	Engine     *queue.Engine
	Player     *player.Player
	Playlists  *playlist.Store
	Visualizer *visualizer.Visualizer
	Theme      string
}

// MainModel представляет главную модель TUI
type MainModel struct {
	deps           Deps
	currentScreen  ScreenType
	tracklistModel *tracklist.Model
	playerModel    *tuiPlayer.Model
	playlistsModel *playlists.Model
}

// NewMainModel создает новую главную модель
func NewMainModel(deps Deps) *MainModel {
	return &MainModel{
		deps:           deps,
		currentScreen:  TracklistScreen,
		tracklistModel: tracklist.NewModel(deps.Catalog),
		playerModel:    nil, // Будет создана при выборе трека
		playlistsModel: nil, // Будет создана при переходе к плейлистам
	}
}

// Init инициализирует модель и запускает слушатель событий плеера
// и цикл перерисовки визуализатора
func (m *MainModel) Init() tea.Cmd {
	return tea.Batch(
		m.tracklistModel.Init(),
		m.listenForPlayer(),
		m.visTick(),
	)
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Глобальные горячие клавиши
		switch msg.String() {
		case "ctrl+c":
			// Останавливаем плеер перед выходом
			if m.deps.Player != nil {
				m.deps.Player.Stop()
			}
			return m, tea.Quit
		}

	case tracklist.TrackSelectedMsg:
		// Запускаем трек и переключаемся на экран воспроизведения
		m.deps.Engine.PlayIndex(msg.Index, true)
		m.currentScreen = PlayerScreen
		m.playerModel = tuiPlayer.NewModel(m.deps.Catalog, m.deps.Engine, m.deps.Player, m.deps.Visualizer, m.deps.Theme)
		return m, m.playerModel.Init()

	case tracklist.AddToPlaylistMsg:
		// Переключаемся на экран плейлистов с ожидающим треком
		m.currentScreen = PlaylistsScreen
		m.playlistsModel = playlists.NewModel(m.deps.Playlists, msg.Index)
		return m, m.playlistsModel.Init()

	case tracklist.OpenPlaylistsMsg:
		m.currentScreen = PlaylistsScreen
		m.playlistsModel = playlists.NewModel(m.deps.Playlists, -1)
		return m, m.playlistsModel.Init()

	case tuiPlayer.GoBackMsg:
		// Возвращаемся к каталогу; воспроизведение продолжается
		m.currentScreen = TracklistScreen
		m.playerModel = nil
		return m, nil

	case tuiPlayer.TrackEndedMsg:
		// Окончание трека обрабатывается независимо от активного экрана:
		// движок повторяет трек либо продвигает очередь
		m.deps.Engine.OnTrackEnded()
		return m, m.listenForPlayer()

	case tuiPlayer.ProgressMsg:
		// Перевооружаем слушатель и передаем прогресс экрану плеера
		cmds := []tea.Cmd{m.listenForPlayer()}
		if m.playerModel != nil {
			updatedModel, playerCmd := m.playerModel.Update(msg)
			if playerModel, ok := updatedModel.(*tuiPlayer.Model); ok {
				m.playerModel = playerModel
			}
			cmds = append(cmds, playerCmd)
		}
		return m, tea.Batch(cmds...)

	case tuiPlayer.VisTickMsg:
		// Тики визуализатора нужны только экрану плеера
		if m.currentScreen == PlayerScreen && m.playerModel != nil {
			updatedModel, playerCmd := m.playerModel.Update(msg)
			if playerModel, ok := updatedModel.(*tuiPlayer.Model); ok {
				m.playerModel = playerModel
			}
			return m, tea.Batch(m.visTick(), playerCmd)
		}
		return m, m.visTick()

	case playlists.GoBackMsg:
		m.currentScreen = TracklistScreen
		m.playlistsModel = nil
		return m, nil

	case tea.WindowSizeMsg:
		// Передаем размеры окна активной модели
		switch m.currentScreen {
		case TracklistScreen:
			var tracklistCmd tea.Cmd
			m.tracklistModel, tracklistCmd = m.tracklistModel.Update(msg)
			return m, tracklistCmd
		case PlayerScreen:
			if m.playerModel != nil {
				updatedModel, playerCmd := m.playerModel.Update(msg)
				if playerModel, ok := updatedModel.(*tuiPlayer.Model); ok {
					m.playerModel = playerModel
				}
				return m, playerCmd
			}
		case PlaylistsScreen:
			if m.playlistsModel != nil {
				var playlistsCmd tea.Cmd
				m.playlistsModel, playlistsCmd = m.playlistsModel.Update(msg)
				return m, playlistsCmd
			}
		}
		return m, nil
	}

	// Передаем сообщение активной модели
	switch m.currentScreen {
	case TracklistScreen:
		var tracklistCmd tea.Cmd
		m.tracklistModel, tracklistCmd = m.tracklistModel.Update(msg)
		cmd = tracklistCmd

	case PlayerScreen:
		if m.playerModel != nil {
			updatedModel, playerCmd := m.playerModel.Update(msg)
			if playerModel, ok := updatedModel.(*tuiPlayer.Model); ok {
				m.playerModel = playerModel
			}
			cmd = playerCmd
		}

	case PlaylistsScreen:
		if m.playlistsModel != nil {
			var playlistsCmd tea.Cmd
			m.playlistsModel, playlistsCmd = m.playlistsModel.Update(msg)
			cmd = playlistsCmd
		}
	}

	return m, cmd
}

// View отображает интерфейс
func (m *MainModel) View() string {
	switch m.currentScreen {
	case TracklistScreen:
		return m.tracklistModel.View()

	case PlayerScreen:
		if m.playerModel != nil {
			return m.playerModel.View()
		}
		return "Ошибка: модель плеера не инициализирована"

	case PlaylistsScreen:
		if m.playlistsModel != nil {
			return m.playlistsModel.View()
		}
		return "Ошибка: модель плейлистов не инициализирована"

	default:
		return "Неизвестный экран"
	}
}

// listenForPlayer слушает события плеера. Слушатель единственный на все
// приложение и живет независимо от активного экрана, поэтому окончание
// трека продвигает очередь, даже когда пользователь листает каталог
func (m *MainModel) listenForPlayer() tea.Cmd {
	if m.deps.Player == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case status, ok := <-m.deps.Player.Progress():
			if !ok {
				return nil
			}
			return tuiPlayer.ProgressMsg{Status: status}

		case _, ok := <-m.deps.Player.Done():
			if !ok {
				return nil
			}
			return tuiPlayer.TrackEndedMsg{}
		}
	}
}

// visTick планирует следующую перерисовку визуализатора
func (m *MainModel) visTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tuiPlayer.VisTickMsg(t)
	})
}

// Close закрывает ресурсы главной модели
func (m *MainModel) Close() {
	if m.deps.Player != nil {
		m.deps.Player.Stop()
	}
}
