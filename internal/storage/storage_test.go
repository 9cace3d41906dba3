package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetMissingKey(t *testing.T) {
	store := NewFileStore(t.TempDir())

	// Отсутствующий ключ — не ошибка, а nil-значение
	data, err := store.Get("tunebox.missing.v1")
	if err != nil {
		t.Errorf("Не ожидалась ошибка для отсутствующего ключа: %v", err)
	}
	if data != nil {
		t.Errorf("Ожидалось nil-значение для отсутствующего ключа, получено: %q", data)
	}
}

func TestSetAndGet(t *testing.T) {
	store := NewFileStore(t.TempDir())

	value := []byte(`{"playlists":{},"activePlaylistId":""}`)
	if err := store.Set(PlaylistsKey, value); err != nil {
		t.Fatalf("Ошибка записи блоба: %v", err)
	}

	got, err := store.Get(PlaylistsKey)
	if err != nil {
		t.Fatalf("Ошибка чтения блоба: %v", err)
	}
	if string(got) != string(value) {
		t.Errorf("Ожидалось значение %q, получено %q", value, got)
	}
}

func TestSetCreatesStateDir(t *testing.T) {
	// Директория состояния еще не существует
	dir := filepath.Join(t.TempDir(), "nested", "state")
	store := NewFileStore(dir)

	if err := store.Set(ThemeKey, []byte(`"dark"`)); err != nil {
		t.Fatalf("Ошибка записи блоба: %v", err)
	}

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Директория состояния должна быть создана: %v", err)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	store := NewFileStore(t.TempDir())

	if err := store.Set(PlaylistsKey, []byte(`{}`)); err != nil {
		t.Fatalf("Ошибка записи блоба: %v", err)
	}
	if err := store.Set(ThemeKey, []byte(`"light"`)); err != nil {
		t.Fatalf("Ошибка записи блоба: %v", err)
	}

	theme, err := store.Get(ThemeKey)
	if err != nil {
		t.Fatalf("Ошибка чтения блоба: %v", err)
	}
	if string(theme) != `"light"` {
		t.Errorf("Ожидалось значение %q, получено %q", `"light"`, theme)
	}
}
