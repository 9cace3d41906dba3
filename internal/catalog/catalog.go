// Package catalog содержит модель каталога треков и нормализацию сырых записей
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Track представляет нормализованный трек каталога
type Track struct {
	ID     string // Отображается в списках; адресация всегда по позиции в каталоге
	Title  string
	Artist string
	Album  string
	Cover  string
	Source string // URL аудио, всегда непустой у треков в каталоге
}

// Catalog упорядоченный список воспроизводимых треков сессии
type Catalog struct {
	Tracks []Track
}

// Len возвращает количество треков в каталоге
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Tracks)
}

// IsEmpty возвращает true, если каталог пуст
func (c *Catalog) IsEmpty() bool {
	return c.Len() == 0
}

// Track возвращает трек по позиции или nil, если позиция вне каталога
func (c *Catalog) Track(i int) *Track {
	if c == nil || i < 0 || i >= len(c.Tracks) {
		return nil
	}
	return &c.Tracks[i]
}

// ParseDocument разбирает JSON-документ каталога.
// Документ может быть либо объектом {"tracks": [...]}, либо самим массивом.
func ParseDocument(data []byte) ([]map[string]any, error) {
	var wrapped struct {
		Tracks []map[string]any `json:"tracks"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Tracks != nil {
		return wrapped.Tracks, nil
	}

	var bare []map[string]any
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("ошибка разбора документа каталога: %w", err)
	}
	return bare, nil
}

// Normalize превращает сырые записи в каталог.
// Записи без воспроизводимого источника пропускаются и подсчитываются,
// вся операция при этом не считается неудачной.
func Normalize(raw []map[string]any) (*Catalog, int) {
	tracks := make([]Track, 0, len(raw))
	skipped := 0

	for pos, rec := range raw {
		// Источник: сначала поле url, затем link
		source := strings.TrimSpace(stringField(rec, "url"))
		if source == "" {
			source = strings.TrimSpace(stringField(rec, "link"))
		}
		if source == "" {
			skipped++
			continue
		}

		track := Track{
			ID:     stringField(rec, "id"),
			Title:  stringField(rec, "title"),
			Artist: stringField(rec, "artist"),
			Album:  stringField(rec, "album"),
			Cover:  stringField(rec, "cover"),
			Source: source,
		}

		// Значения по умолчанию; ID синтезируется из позиции
		// в исходном списке, до фильтрации
		if track.Title == "" {
			track.Title = "Untitled"
		}
		if track.Artist == "" {
			track.Artist = "Unknown artist"
		}
		if track.ID == "" {
			track.ID = fmt.Sprintf("t%d", pos+1)
		}

		tracks = append(tracks, track)
	}

	return &Catalog{Tracks: tracks}, skipped
}

// stringField достает строковое значение свободно типизированного поля записи
func stringField(rec map[string]any, key string) string {
	switch v := rec[key].(type) {
	case string:
		return v
	case float64:
		// JSON-числа: целые id вида 42 не должны превращаться в "42.000000"
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
