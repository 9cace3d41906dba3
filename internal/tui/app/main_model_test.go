package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-tunebox/internal/catalog"
	"github.com/hazadus/go-tunebox/internal/playlist"
	"github.com/hazadus/go-tunebox/internal/queue"
	"github.com/hazadus/go-tunebox/internal/storage"
	tuiPlayer "github.com/hazadus/go-tunebox/internal/tui/player"
	"github.com/hazadus/go-tunebox/internal/tui/playlists"
	"github.com/hazadus/go-tunebox/internal/tui/tracklist"
)

// fakeSession сессия-заглушка вместо реального плеера
type fakeSession struct{}

func (f *fakeSession) Load(_ catalog.Track) error { return nil }
func (f *fakeSession) Play() error                { return nil }
func (f *fakeSession) Pause()                     {}
func (f *fakeSession) SeekTo(_ float64)           {}

func testDeps(t *testing.T) Deps {
	t.Helper()

	cat := &catalog.Catalog{
		Tracks: []catalog.Track{
			{ID: "t1", Title: "Первый", Artist: "Артист", Source: "https://example.com/1.mp3"},
			{ID: "t2", Title: "Второй", Artist: "Артист", Source: "https://example.com/2.mp3"},
		},
	}

	store := playlist.NewStore(storage.NewFileStore(t.TempDir()))
	store.Load()

	return Deps{
		Catalog:   cat,
		Engine:    queue.NewEngine(cat, &fakeSession{}),
		Playlists: store,
		Theme:     "dark",
	}
}

func TestMainModelRouting(t *testing.T) {
	model := NewMainModel(testDeps(t))

	// Проверяем начальное состояние
	if model.currentScreen != TracklistScreen {
		t.Errorf("Expected initial screen to be TracklistScreen, got %v", model.currentScreen)
	}
	if model.tracklistModel == nil {
		t.Error("Expected tracklistModel to be initialized")
	}
	if model.playerModel != nil {
		t.Error("Expected playerModel to be nil initially")
	}

	// Выбор трека переключает на экран воспроизведения и запускает трек
	updatedModel, _ := model.Update(tracklist.TrackSelectedMsg{Index: 1})
	model = updatedModel.(*MainModel)

	if model.currentScreen != PlayerScreen {
		t.Errorf("Expected PlayerScreen after TrackSelectedMsg, got %v", model.currentScreen)
	}
	if model.playerModel == nil {
		t.Error("Expected playerModel to be initialized after TrackSelectedMsg")
	}
	if model.deps.Engine.CurrentIndex() != 1 {
		t.Errorf("Expected engine to play track 1, got %d", model.deps.Engine.CurrentIndex())
	}

	// Возврат к каталогу
	updatedModel, _ = model.Update(tuiPlayer.GoBackMsg{})
	model = updatedModel.(*MainModel)

	if model.currentScreen != TracklistScreen {
		t.Errorf("Expected TracklistScreen after GoBackMsg, got %v", model.currentScreen)
	}
	if model.playerModel != nil {
		t.Error("Expected playerModel to be nil after GoBackMsg")
	}
}

func TestMainModelPlaylistsRouting(t *testing.T) {
	model := NewMainModel(testDeps(t))

	// Переход к плейлистам с ожидающим треком
	updatedModel, _ := model.Update(tracklist.AddToPlaylistMsg{Index: 0})
	model = updatedModel.(*MainModel)

	if model.currentScreen != PlaylistsScreen {
		t.Errorf("Expected PlaylistsScreen after AddToPlaylistMsg, got %v", model.currentScreen)
	}
	if model.playlistsModel == nil {
		t.Error("Expected playlistsModel to be initialized")
	}

	// Возврат к каталогу
	updatedModel, _ = model.Update(playlists.GoBackMsg{})
	model = updatedModel.(*MainModel)

	if model.currentScreen != TracklistScreen {
		t.Errorf("Expected TracklistScreen after GoBackMsg, got %v", model.currentScreen)
	}
}

// TestMainModelTrackEndedOffPlayerScreen проверяет, что окончание трека
// продвигает очередь, даже когда открыт каталог, а не экран плеера
func TestMainModelTrackEndedOffPlayerScreen(t *testing.T) {
	model := NewMainModel(testDeps(t))

	// Запускаем первый трек и возвращаемся к каталогу
	updatedModel, _ := model.Update(tracklist.TrackSelectedMsg{Index: 0})
	model = updatedModel.(*MainModel)
	updatedModel, _ = model.Update(tuiPlayer.GoBackMsg{})
	model = updatedModel.(*MainModel)

	// Окончание трека обрабатывает главная модель
	updatedModel, _ = model.Update(tuiPlayer.TrackEndedMsg{})
	model = updatedModel.(*MainModel)

	if model.deps.Engine.CurrentIndex() != 1 {
		t.Errorf("Expected engine to advance to track 1, got %d", model.deps.Engine.CurrentIndex())
	}
	if model.currentScreen != TracklistScreen {
		t.Errorf("Expected screen to stay on TracklistScreen, got %v", model.currentScreen)
	}
}

// TestMainModelTrackEndedRepeatOne проверяет, что при повторе трека
// очередь не продвигается
func TestMainModelTrackEndedRepeatOne(t *testing.T) {
	model := NewMainModel(testDeps(t))

	updatedModel, _ := model.Update(tracklist.TrackSelectedMsg{Index: 0})
	model = updatedModel.(*MainModel)
	model.deps.Engine.ToggleRepeat()

	updatedModel, _ = model.Update(tuiPlayer.TrackEndedMsg{})
	model = updatedModel.(*MainModel)

	if model.deps.Engine.CurrentIndex() != 0 {
		t.Errorf("Expected engine to stay on track 0, got %d", model.deps.Engine.CurrentIndex())
	}
}

func TestMainModelQuit(t *testing.T) {
	model := NewMainModel(testDeps(t))

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("Expected tea.Quit command after Ctrl+C")
	}
}

func TestMainModelView(t *testing.T) {
	model := NewMainModel(testDeps(t))

	// Каталог
	if model.View() == "" {
		t.Error("Expected non-empty view for tracklist screen")
	}

	// Экран воспроизведения
	updatedModel, _ := model.Update(tracklist.TrackSelectedMsg{Index: 0})
	model = updatedModel.(*MainModel)
	if model.View() == "" {
		t.Error("Expected non-empty view for player screen")
	}

	// Неизвестный экран
	model.currentScreen = ScreenType(999)
	if model.View() != "Неизвестный экран" {
		t.Errorf("Unexpected view for unknown screen: %q", model.View())
	}
}
