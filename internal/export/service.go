// Package export предоставляет публикацию плейлистов во внешнее хранилище
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/hazadus/go-tunebox/internal/catalog"
	"github.com/hazadus/go-tunebox/internal/playlist"
)

// Uploader граница загрузки в хранилище
type Uploader interface {
	UploadFile(ctx context.Context, reader io.Reader, key string) (string, error)
}

// Service публикует плейлисты как самодостаточные JSON документы:
// вместо индексов каталога в документ попадают сами треки, чтобы
// получатель мог прочитать плейлист без нашего каталога
type Service struct {
	uploader Uploader
	catalog  *catalog.Catalog
}

// NewService создает сервис публикации
func NewService(uploader Uploader, cat *catalog.Catalog) *Service {
	return &Service{
		uploader: uploader,
		catalog:  cat,
	}
}

// Document сериализуемая форма опубликованного плейлиста
type Document struct {
	Name       string          `json:"name"`
	ExportedAt time.Time       `json:"exportedAt"`
	Tracks     []catalog.Track `json:"tracks"`
}

// Publish загружает плейлист в хранилище и возвращает URL документа.
// Треки, чьи индексы больше не входят в каталог, пропускаются.
func (s *Service) Publish(ctx context.Context, p *playlist.Playlist) (string, error) {
	if p == nil {
		return "", fmt.Errorf("плейлист не задан")
	}

	doc := Document{
		Name:       p.Name,
		ExportedAt: time.Now().UTC(),
		Tracks:     make([]catalog.Track, 0, len(p.TrackIDs)),
	}
	for _, idx := range p.TrackIDs {
		if track := s.catalog.Track(idx); track != nil {
			doc.Tracks = append(doc.Tracks, *track)
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации плейлиста: %w", err)
	}

	key := fmt.Sprintf("playlists/%s.json", p.ID)
	url, err := s.uploader.UploadFile(ctx, bytes.NewReader(data), key)
	if err != nil {
		return "", fmt.Errorf("ошибка публикации плейлиста: %w", err)
	}
	return url, nil
}
