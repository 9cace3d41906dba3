package playlists

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-tunebox/internal/playlist"
	"github.com/hazadus/go-tunebox/internal/storage"
)

func newTestStore(t *testing.T) *playlist.Store {
	t.Helper()
	store := playlist.NewStore(storage.NewFileStore(t.TempDir()))
	store.Load()
	return store
}

func keyRunes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestCreatePlaylistFlow(t *testing.T) {
	store := newTestStore(t)
	model := NewModel(store, -1)

	// Переходим в режим ввода имени
	model, _ = model.Update(keyRunes('n'))
	if model.mode != naming {
		t.Fatal("Expected naming mode after 'n'")
	}

	// Вводим имя и подтверждаем
	for _, r := range "Дорожная" {
		model, _ = model.Update(keyRunes(r))
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if model.mode != browsing {
		t.Error("Expected browsing mode after enter")
	}
	if len(store.All()) != 2 {
		t.Errorf("Expected 2 playlists, got %d", len(store.All()))
	}
	if store.Active().Name != "Дорожная" {
		t.Errorf("Expected new playlist to be active, got %q", store.Active().Name)
	}
}

func TestCreateBlankNameShowsError(t *testing.T) {
	store := newTestStore(t)
	model := NewModel(store, -1)

	model, _ = model.Update(keyRunes('n'))
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if model.err == "" {
		t.Error("Expected error message for blank name")
	}
	if model.mode != naming {
		t.Error("Expected to stay in naming mode on error")
	}
}

func TestEnterAddsPendingTrack(t *testing.T) {
	store := newTestStore(t)
	model := NewModel(store, 5)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if !store.Active().Contains(5) {
		t.Error("Expected pending track to be added to selected playlist")
	}
	// После добавления возвращаемся к каталогу
	if cmd == nil {
		t.Fatal("Expected GoBackMsg command after adding")
	}
	if _, ok := cmd().(GoBackMsg); !ok {
		t.Fatalf("Expected GoBackMsg, got %T", cmd())
	}
}

func TestEnterSelectsActive(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Create("Вторая"); err != nil {
		t.Fatalf("Ошибка создания плейлиста: %v", err)
	}

	model := NewModel(store, -1)

	// Курсор на первом по алфавиту плейлисте
	first := model.sorted()[0]
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if store.Active().ID != first.ID {
		t.Errorf("Expected %q to become active, got %q", first.Name, store.Active().Name)
	}
}

func TestEscapeGoesBack(t *testing.T) {
	store := newTestStore(t)
	model := NewModel(store, -1)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("Expected command for esc key")
	}
	if _, ok := cmd().(GoBackMsg); !ok {
		t.Fatalf("Expected GoBackMsg, got %T", cmd())
	}
}

func TestViewNotEmpty(t *testing.T) {
	store := newTestStore(t)
	model := NewModel(store, -1)

	if model.View() == "" {
		t.Error("Expected non-empty view")
	}
}
