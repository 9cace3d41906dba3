// Package playlist содержит персистентное хранилище пользовательских плейлистов
package playlist

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"

	"github.com/hazadus/go-tunebox/internal/storage"
)

// DefaultPlaylistName имя плейлиста, создаваемого при первом запуске
const DefaultPlaylistName = "Favorites"

// Playlist именованная коллекция треков.
// TrackIDs хранит индексы каталога в порядке добавления, без дубликатов.
type Playlist struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	TrackIDs []int  `json:"trackIds"`
}

// Contains возвращает true, если трек уже есть в плейлисте
func (p *Playlist) Contains(trackIndex int) bool {
	for _, id := range p.TrackIDs {
		if id == trackIndex {
			return true
		}
	}
	return false
}

// Collection сериализуемое состояние всех плейлистов
type Collection struct {
	Playlists        map[string]*Playlist `json:"playlists"`
	ActivePlaylistID string               `json:"activePlaylistId"`
}

// Store хранилище плейлистов поверх границы персистентности.
// Каждая мутация сохраняет снимок состояния целиком; сохранение
// best-effort и никогда не блокирует воспроизведение.
type Store struct {
	storage    storage.Store
	collection Collection

	// OnChange уведомление об изменении коллекции; может быть nil
	OnChange func()
}

// NewStore создает хранилище плейлистов над границей персистентности
func NewStore(st storage.Store) *Store {
	return &Store{
		storage: st,
		collection: Collection{
			Playlists: make(map[string]*Playlist),
		},
	}
}

// Load читает коллекцию из хранилища.
// Отсутствующее или поврежденное состояние не ошибка: создается
// коллекция по умолчанию с плейлистом "Favorites" и сразу сохраняется.
func (s *Store) Load() {
	data, err := s.storage.Get(storage.PlaylistsKey)
	if err != nil {
		log.Printf("⚠️  Ошибка чтения плейлистов, используется состояние по умолчанию: %v", err)
	}

	if err == nil && data != nil {
		var collection Collection
		if jsonErr := json.Unmarshal(data, &collection); jsonErr == nil && collection.Playlists != nil {
			s.collection = collection
			s.ensureActiveValid()
			return
		}
		log.Printf("⚠️  Поврежденное состояние плейлистов, пересоздаем")
	}

	// Свежая коллекция с плейлистом по умолчанию
	s.collection = Collection{Playlists: make(map[string]*Playlist)}
	defaultPlaylist := &Playlist{
		ID:       generateID(),
		Name:     DefaultPlaylistName,
		TrackIDs: make([]int, 0),
	}
	s.collection.Playlists[defaultPlaylist.ID] = defaultPlaylist
	s.collection.ActivePlaylistID = defaultPlaylist.ID
	s.Save()
}

// Save сохраняет снимок коллекции; ошибки записи логируются, не пробрасываются
func (s *Store) Save() {
	data, err := json.Marshal(s.collection)
	if err != nil {
		log.Printf("⚠️  Ошибка сериализации плейлистов: %v", err)
		return
	}
	if err := s.storage.Set(storage.PlaylistsKey, data); err != nil {
		log.Printf("⚠️  Ошибка сохранения плейлистов: %v", err)
	}
}

// Create создает новый плейлист, делает его активным и сохраняет состояние
func (s *Store) Create(name string) (*Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("имя плейлиста не может быть пустым")
	}

	p := &Playlist{
		ID:       generateID(),
		Name:     name,
		TrackIDs: make([]int, 0),
	}
	s.collection.Playlists[p.ID] = p
	s.collection.ActivePlaylistID = p.ID

	s.Save()
	s.notifyChange()
	return p, nil
}

// AddTrack добавляет индекс каталога в плейлист.
// Пустой playlistID означает активный плейлист; если плейлистов нет вовсе,
// автоматически создается "Favorites". Добавление идемпотентно.
func (s *Store) AddTrack(playlistID string, trackIndex int) (*Playlist, error) {
	if trackIndex < 0 {
		return nil, fmt.Errorf("неверный индекс трека: %d", trackIndex)
	}

	target := s.resolveTarget(playlistID)
	if target == nil {
		return nil, fmt.Errorf("плейлист %q не найден", playlistID)
	}

	if !target.Contains(trackIndex) {
		target.TrackIDs = append(target.TrackIDs, trackIndex)
		s.Save()
		s.notifyChange()
	}
	return target, nil
}

// SelectActive делает плейлист активным и сохраняет состояние.
// На воспроизведение выбор не влияет.
func (s *Store) SelectActive(id string) error {
	if _, ok := s.collection.Playlists[id]; !ok {
		return fmt.Errorf("плейлист %q не найден", id)
	}
	s.collection.ActivePlaylistID = id
	s.Save()
	s.notifyChange()
	return nil
}

// Active возвращает активный плейлист или nil
func (s *Store) Active() *Playlist {
	return s.collection.Playlists[s.collection.ActivePlaylistID]
}

// Get возвращает плейлист по id или nil
func (s *Store) Get(id string) *Playlist {
	return s.collection.Playlists[id]
}

// All возвращает все плейлисты
func (s *Store) All() map[string]*Playlist {
	return s.collection.Playlists
}

// resolveTarget находит плейлист для добавления трека:
// явный id -> активный -> первый существующий -> автосозданный "Favorites"
func (s *Store) resolveTarget(playlistID string) *Playlist {
	if playlistID != "" {
		return s.collection.Playlists[playlistID]
	}
	if active := s.Active(); active != nil {
		return active
	}
	for _, p := range s.collection.Playlists {
		s.collection.ActivePlaylistID = p.ID
		return p
	}

	fallback := &Playlist{
		ID:       generateID(),
		Name:     DefaultPlaylistName,
		TrackIDs: make([]int, 0),
	}
	s.collection.Playlists[fallback.ID] = fallback
	s.collection.ActivePlaylistID = fallback.ID
	return fallback
}

// ensureActiveValid восстанавливает инвариант: активный id, если задан,
// указывает на существующий плейлист
func (s *Store) ensureActiveValid() {
	if s.collection.ActivePlaylistID == "" {
		return
	}
	if _, ok := s.collection.Playlists[s.collection.ActivePlaylistID]; ok {
		return
	}
	s.collection.ActivePlaylistID = ""
	for id := range s.collection.Playlists {
		s.collection.ActivePlaylistID = id
		break
	}
}

func (s *Store) notifyChange() {
	if s.OnChange != nil {
		s.OnChange()
	}
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// generateID генерирует случайный base-36 идентификатор плейлиста.
// Девяти символов достаточно, чтобы вероятность коллизии была ничтожной.
func generateID() string {
	var b strings.Builder
	for i := 0; i < 9; i++ {
		b.WriteByte(idAlphabet[rand.IntN(len(idAlphabet))])
	}
	return b.String()
}
