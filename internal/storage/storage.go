// Package storage предоставляет хранилище именованных блобов состояния приложения
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Ключи хранилища версионированы, чтобы будущие схемы могли
// сосуществовать со старыми данными.
const (
	// PlaylistsKey ключ блоба с коллекцией плейлистов
	PlaylistsKey = "tunebox.playlists.v1"
	// ThemeKey ключ блоба с предпочитаемой темой
	ThemeKey = "tunebox.theme.v1"
)

// Store интерфейс границы персистентности: get/set по строковому ключу.
// Отсутствующий ключ возвращает (nil, nil).
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// FileStore хранит каждый блоб в отдельном файле внутри директории состояния
type FileStore struct {
	dir string
}

// NewFileStore создает хранилище в указанной директории
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Get читает блоб по ключу
func (s *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		// Отсутствующий файл означает отсутствующий ключ, а не ошибку
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка чтения состояния %q: %w", key, err)
	}
	return data, nil
}

// Set записывает блоб по ключу, создавая директорию при необходимости
func (s *FileStore) Set(key string, value []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("ошибка создания директории состояния: %w", err)
	}
	if err := os.WriteFile(s.path(key), value, 0644); err != nil {
		return fmt.Errorf("ошибка записи состояния %q: %w", key, err)
	}
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
