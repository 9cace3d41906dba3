package playlist

import (
	"fmt"
	"testing"

	"github.com/hazadus/go-tunebox/internal/storage"
)

// failingStore хранилище, в котором любые операции завершаются ошибкой
type failingStore struct{}

func (f *failingStore) Get(_ string) ([]byte, error) {
	return nil, fmt.Errorf("диск недоступен")
}

func (f *failingStore) Set(_ string, _ []byte) error {
	return fmt.Errorf("диск недоступен")
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(storage.NewFileStore(t.TempDir()))
	store.Load()
	return store
}

func TestLoadCreatesDefaultPlaylist(t *testing.T) {
	store := newTestStore(t)

	// При первом запуске создается плейлист Favorites и делается активным
	active := store.Active()
	if active == nil {
		t.Fatal("Активный плейлист должен существовать после Load")
	}
	if active.Name != DefaultPlaylistName {
		t.Errorf("Ожидалось имя %q, получено %q", DefaultPlaylistName, active.Name)
	}
	if len(active.ID) < 7 {
		t.Errorf("ID плейлиста должен быть не короче 7 символов, получено %q", active.ID)
	}
}

func TestLoadRecoversFromCorruptState(t *testing.T) {
	fileStore := storage.NewFileStore(t.TempDir())

	// Записываем мусор вместо JSON
	if err := fileStore.Set(storage.PlaylistsKey, []byte("not json at all")); err != nil {
		t.Fatalf("Ошибка записи: %v", err)
	}

	store := NewStore(fileStore)
	store.Load()

	// Поврежденное состояние тихо заменяется состоянием по умолчанию
	if store.Active() == nil {
		t.Fatal("После восстановления должен существовать активный плейлист")
	}
	if store.Active().Name != DefaultPlaylistName {
		t.Errorf("Ожидался плейлист по умолчанию, получено %q", store.Active().Name)
	}
}

func TestLoadSurvivesStorageFailure(t *testing.T) {
	store := NewStore(&failingStore{})

	// Недоступное хранилище не роняет приложение
	store.Load()

	if store.Active() == nil {
		t.Fatal("Хранилище недоступно, но коллекция по умолчанию должна существовать")
	}
}

func TestCreatePlaylist(t *testing.T) {
	store := newTestStore(t)

	p, err := store.Create("Дорожная")
	if err != nil {
		t.Fatalf("Ошибка создания плейлиста: %v", err)
	}

	if p.Name != "Дорожная" {
		t.Errorf("Ожидалось имя Дорожная, получено %q", p.Name)
	}
	// Новый плейлист становится активным
	if store.Active() == nil || store.Active().ID != p.ID {
		t.Error("Созданный плейлист должен стать активным")
	}
}

func TestCreateRejectsBlankName(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Create(""); err == nil {
		t.Error("Пустое имя должно быть отклонено")
	}
	if _, err := store.Create("   "); err == nil {
		t.Error("Пробельное имя должно быть отклонено")
	}
}

func TestCreateGeneratesUniqueIDs(t *testing.T) {
	store := newTestStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		p, err := store.Create(fmt.Sprintf("Плейлист %d", i))
		if err != nil {
			t.Fatalf("Ошибка создания плейлиста: %v", err)
		}
		if seen[p.ID] {
			t.Fatalf("Повторяющийся ID плейлиста: %s", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestAddTrackIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	// Повторное добавление того же трека не меняет плейлист
	p1, err := store.AddTrack("", 3)
	if err != nil {
		t.Fatalf("Ошибка добавления трека: %v", err)
	}
	p2, err := store.AddTrack("", 3)
	if err != nil {
		t.Fatalf("Ошибка повторного добавления трека: %v", err)
	}

	if p1.ID != p2.ID {
		t.Error("Оба добавления должны попасть в один плейлист")
	}
	if len(p2.TrackIDs) != 1 {
		t.Errorf("Ожидался 1 трек после повторного добавления, получено %d", len(p2.TrackIDs))
	}
}

func TestAddTrackPreservesInsertionOrder(t *testing.T) {
	store := newTestStore(t)

	for _, idx := range []int{5, 1, 3} {
		if _, err := store.AddTrack("", idx); err != nil {
			t.Fatalf("Ошибка добавления трека %d: %v", idx, err)
		}
	}

	active := store.Active()
	expected := []int{5, 1, 3}
	for i, idx := range expected {
		if active.TrackIDs[i] != idx {
			t.Errorf("TrackIDs[%d] = %d, ожидалось %d", i, active.TrackIDs[i], idx)
		}
	}
}

func TestAddTrackToExplicitPlaylist(t *testing.T) {
	store := newTestStore(t)

	other, err := store.Create("Вторая")
	if err != nil {
		t.Fatalf("Ошибка создания плейлиста: %v", err)
	}

	// Явный id имеет приоритет над активным плейлистом
	if err := store.SelectActive(findByName(t, store, DefaultPlaylistName).ID); err != nil {
		t.Fatalf("Ошибка выбора плейлиста: %v", err)
	}
	p, err := store.AddTrack(other.ID, 7)
	if err != nil {
		t.Fatalf("Ошибка добавления трека: %v", err)
	}

	if p.ID != other.ID {
		t.Error("Трек должен попасть в явно указанный плейлист")
	}
}

func TestAddTrackUnknownPlaylist(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.AddTrack("no-such-id", 0); err == nil {
		t.Error("Добавление в несуществующий плейлист должно вернуть ошибку")
	}
}

func TestAddTrackRejectsNegativeIndex(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.AddTrack("", -1); err == nil {
		t.Error("Отрицательный индекс должен быть отклонен")
	}
}

func TestSelectActive(t *testing.T) {
	store := newTestStore(t)

	other, err := store.Create("Вторая")
	if err != nil {
		t.Fatalf("Ошибка создания плейлиста: %v", err)
	}
	defaultID := findByName(t, store, DefaultPlaylistName).ID

	if err := store.SelectActive(defaultID); err != nil {
		t.Fatalf("Ошибка выбора плейлиста: %v", err)
	}
	if store.Active().ID != defaultID {
		t.Error("Активным должен быть выбранный плейлист")
	}

	if err := store.SelectActive(other.ID); err != nil {
		t.Fatalf("Ошибка выбора плейлиста: %v", err)
	}
	if store.Active().ID != other.ID {
		t.Error("Активным должен быть выбранный плейлист")
	}
}

func TestSelectActiveUnknown(t *testing.T) {
	store := newTestStore(t)

	if err := store.SelectActive("no-such-id"); err == nil {
		t.Error("Выбор несуществующего плейлиста должен вернуть ошибку")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fileStore := storage.NewFileStore(dir)

	store := NewStore(fileStore)
	store.Load()
	if _, err := store.Create("Дорожная"); err != nil {
		t.Fatalf("Ошибка создания плейлиста: %v", err)
	}
	if _, err := store.AddTrack("", 2); err != nil {
		t.Fatalf("Ошибка добавления трека: %v", err)
	}
	if _, err := store.AddTrack("", 4); err != nil {
		t.Fatalf("Ошибка добавления трека: %v", err)
	}
	activeID := store.Active().ID

	// Имитируем новый запуск процесса над тем же хранилищем
	reloaded := NewStore(storage.NewFileStore(dir))
	reloaded.Load()

	if len(reloaded.All()) != len(store.All()) {
		t.Errorf("Ожидалось %d плейлистов, получено %d", len(store.All()), len(reloaded.All()))
	}
	if reloaded.Active() == nil || reloaded.Active().ID != activeID {
		t.Error("Активный плейлист должен пережить перезагрузку")
	}

	tracks := reloaded.Active().TrackIDs
	if len(tracks) != 2 || tracks[0] != 2 || tracks[1] != 4 {
		t.Errorf("Треки активного плейлиста должны пережить перезагрузку, получено %v", tracks)
	}
}

func TestMutationsSurviveWriteFailure(t *testing.T) {
	store := NewStore(&failingStore{})
	store.Load()

	// Сбой записи не мешает работе с коллекцией в памяти
	p, err := store.Create("Дорожная")
	if err != nil {
		t.Fatalf("Создание не должно падать из-за сбоя записи: %v", err)
	}
	if _, err := store.AddTrack(p.ID, 1); err != nil {
		t.Fatalf("Добавление не должно падать из-за сбоя записи: %v", err)
	}
	if !store.Get(p.ID).Contains(1) {
		t.Error("Трек должен быть добавлен в памяти")
	}
}

func TestActiveInvariantAfterLoad(t *testing.T) {
	fileStore := storage.NewFileStore(t.TempDir())

	// Состояние с активным id, указывающим в никуда
	blob := []byte(`{"playlists":{"abc123xyz":{"id":"abc123xyz","name":"Старый","trackIds":[1]}},"activePlaylistId":"gone"}`)
	if err := fileStore.Set(storage.PlaylistsKey, blob); err != nil {
		t.Fatalf("Ошибка записи: %v", err)
	}

	store := NewStore(fileStore)
	store.Load()

	// Инвариант восстановлен: активный id указывает на существующий плейлист
	if store.Active() == nil {
		t.Fatal("Активный плейлист должен быть восстановлен")
	}
	if store.Active().ID != "abc123xyz" {
		t.Errorf("Ожидался активный abc123xyz, получено %q", store.Active().ID)
	}
}

func TestChangeNotification(t *testing.T) {
	store := newTestStore(t)

	changes := 0
	store.OnChange = func() { changes++ }

	if _, err := store.Create("Дорожная"); err != nil {
		t.Fatalf("Ошибка создания плейлиста: %v", err)
	}
	if _, err := store.AddTrack("", 0); err != nil {
		t.Fatalf("Ошибка добавления трека: %v", err)
	}
	// Идемпотентное добавление не считается изменением
	if _, err := store.AddTrack("", 0); err != nil {
		t.Fatalf("Ошибка добавления трека: %v", err)
	}

	if changes != 2 {
		t.Errorf("Ожидалось 2 уведомления, получено %d", changes)
	}
}

// findByName находит плейлист по имени
func findByName(t *testing.T, store *Store, name string) *Playlist {
	t.Helper()
	for _, p := range store.All() {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("Плейлист %q не найден", name)
	return nil
}
