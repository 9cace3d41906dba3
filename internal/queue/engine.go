// Package queue содержит движок очереди воспроизведения: порядок треков,
// курсор, режимы перемешивания и повтора
package queue

import (
	"log"
	"math/rand/v2"

	"github.com/hazadus/go-tunebox/internal/catalog"
)

// RepeatMode режим повтора
type RepeatMode int

// Режимы повтора
const (
	// RepeatOff - очередь продвигается по окончании трека
	RepeatOff RepeatMode = iota
	// RepeatOne - по окончании трек запускается заново
	RepeatOne
)

// Session граница адаптера воспроизведения, которой движок отдает команды.
// Движок никогда не заглядывает внутрь плеера, только выдает команды
// и реагирует на события, которые ему доставляет вызывающая сторона.
type Session interface {
	Load(track catalog.Track) error
	Play() error
	Pause()
	SeekTo(fraction float64)
}

// Engine владеет всем состоянием очереди воспроизведения.
// Все мутации происходят из одной горутины команд/TUI, блокировки не нужны.
type Engine struct {
	catalog *catalog.Catalog
	session Session

	order          []int // Перестановка индексов каталога
	position       int   // Курсор внутри order
	currentIndex   int   // Индекс текущего трека в каталоге, -1 если не выбран
	repeatMode     RepeatMode
	shuffleEnabled bool
	isPlaying      bool

	// Уведомления об изменениях; устанавливаются UI, могут быть nil
	OnTrackChange func(index int)
	OnOrderChange func()
}

// NewEngine создает движок над каталогом и адаптером сессии
func NewEngine(cat *catalog.Catalog, session Session) *Engine {
	e := &Engine{
		catalog:      cat,
		session:      session,
		currentIndex: -1,
	}
	e.buildOrder()
	return e
}

// SetCatalog целиком заменяет каталог: порядок пересобирается,
// текущий трек сбрасывается
func (e *Engine) SetCatalog(cat *catalog.Catalog) {
	e.catalog = cat
	e.currentIndex = -1
	e.isPlaying = false
	e.buildOrder()
}

// buildOrder пересобирает порядок воспроизведения: случайная перестановка
// всех индексов каталога при включенном перемешивании, иначе тождественный
// порядок. Курсор сбрасывается в начало.
func (e *Engine) buildOrder() {
	n := e.catalog.Len()
	e.order = make([]int, n)
	for i := range e.order {
		e.order[i] = i
	}
	if e.shuffleEnabled {
		rand.Shuffle(n, func(i, j int) {
			e.order[i], e.order[j] = e.order[j], e.order[i]
		})
	}
	e.position = 0
	e.notifyOrderChange()
}

// PlayIndex выбирает трек каталога по позиции и загружает его.
// Автовоспроизведение контролирует вызывающая сторона.
func (e *Engine) PlayIndex(i int, autoplay bool) {
	if e.catalog.IsEmpty() {
		return
	}
	if i < 0 || i >= e.catalog.Len() {
		log.Printf("⚠️  Отклонен неверный индекс трека: %d", i)
		return
	}

	// Каталог мог измениться после построения порядка
	pos := e.locate(i)
	if pos < 0 {
		e.buildOrder()
		pos = e.locate(i)
	}

	e.currentIndex = i
	if pos >= 0 {
		e.position = pos
	}

	e.loadCurrent(autoplay)
}

// Advance сдвигает очередь на direction (+1 или -1) и запускает
// получившийся трек
func (e *Engine) Advance(direction int) {
	if e.catalog.IsEmpty() {
		return
	}

	if e.shuffleEnabled {
		if e.currentIndex < 0 {
			// Трек еще не выбран: начинаем с головы порядка, иначе
			// первый элемент перестановки выпадет из цикла
			e.position = 0
		} else {
			e.position += direction
			if e.position < 0 || e.position >= len(e.order) {
				// Курсор вышел за край порядка: пересобираем перестановку
				// заново вместо закольцовывания, чтобы циклы прослушивания
				// не повторяли один и тот же порядок
				e.buildOrder()
			}
		}
		e.currentIndex = e.order[e.position]
	} else {
		n := e.catalog.Len()
		if e.currentIndex < 0 {
			e.currentIndex = 0
		} else {
			e.currentIndex = ((e.currentIndex+direction)%n + n) % n
		}
	}

	e.loadCurrent(true)
}

// OnTrackEnded обрабатывает окончание трека: повтор либо переход вперед
func (e *Engine) OnTrackEnded() {
	if e.repeatMode == RepeatOne && e.currentIndex >= 0 {
		e.session.SeekTo(0)
		if err := e.session.Play(); err != nil {
			log.Printf("⚠️  Ошибка повтора трека: %v", err)
			e.isPlaying = false
		}
		return
	}
	e.Advance(+1)
}

// ToggleShuffle переключает перемешивание; при включении порядок
// пересобирается
func (e *Engine) ToggleShuffle() {
	if e.catalog.IsEmpty() {
		return
	}
	e.shuffleEnabled = !e.shuffleEnabled
	e.buildOrder()
}

// ToggleRepeat переключает режим повтора: off -> repeat-one -> off
func (e *Engine) ToggleRepeat() {
	if e.repeatMode == RepeatOff {
		e.repeatMode = RepeatOne
	} else {
		e.repeatMode = RepeatOff
	}
}

// PreviewUpcoming возвращает до maxCount различных индексов каталога,
// которые будут сыграны дальше, не трогая курсор
func (e *Engine) PreviewUpcoming(maxCount int) []int {
	n := e.catalog.Len()
	if n == 0 || maxCount <= 0 {
		return nil
	}

	if e.shuffleEnabled {
		// Идем по порядку от курсора с закольцовыванием, собирая
		// еще не встреченные в этом вызове индексы
		upcoming := make([]int, 0, maxCount)
		seen := make(map[int]bool)
		for step := 1; step <= len(e.order) && len(upcoming) < maxCount; step++ {
			idx := e.order[(e.position+step)%len(e.order)]
			if seen[idx] {
				continue
			}
			seen[idx] = true
			upcoming = append(upcoming, idx)
		}
		return upcoming
	}

	count := maxCount
	if count > n-1 {
		count = n - 1
	}
	upcoming := make([]int, 0, count)
	for step := 1; step <= count; step++ {
		upcoming = append(upcoming, ((e.currentIndex+step)%n+n)%n)
	}
	return upcoming
}

// CurrentIndex возвращает индекс текущего трека в каталоге или -1
func (e *Engine) CurrentIndex() int {
	return e.currentIndex
}

// CurrentTrack возвращает текущий трек или nil
func (e *Engine) CurrentTrack() *catalog.Track {
	return e.catalog.Track(e.currentIndex)
}

// Order возвращает копию текущего порядка воспроизведения
func (e *Engine) Order() []int {
	order := make([]int, len(e.order))
	copy(order, e.order)
	return order
}

// Position возвращает позицию курсора в порядке воспроизведения
func (e *Engine) Position() int {
	return e.position
}

// ShuffleEnabled возвращает true при включенном перемешивании
func (e *Engine) ShuffleEnabled() bool {
	return e.shuffleEnabled
}

// Repeat возвращает текущий режим повтора
func (e *Engine) Repeat() RepeatMode {
	return e.repeatMode
}

// IsPlaying возвращает true, если по данным движка идет воспроизведение
func (e *Engine) IsPlaying() bool {
	return e.isPlaying
}

// SetPlaying синхронизирует флаг воспроизведения с реальным состоянием
// плеера (например, после паузы из UI)
func (e *Engine) SetPlaying(playing bool) {
	e.isPlaying = playing
}

// loadCurrent загружает текущий трек в сессию, опционально запуская
// воспроизведение. Отказ плеера не фатален: состояние честно отражает паузу.
func (e *Engine) loadCurrent(autoplay bool) {
	track := e.catalog.Track(e.currentIndex)
	if track == nil {
		log.Printf("⚠️  Текущий индекс %d вне каталога", e.currentIndex)
		return
	}

	if err := e.session.Load(*track); err != nil {
		log.Printf("⚠️  Ошибка загрузки трека %q: %v", track.Title, err)
		e.isPlaying = false
		e.notifyTrackChange()
		return
	}

	if autoplay {
		if err := e.session.Play(); err != nil {
			log.Printf("⚠️  Ошибка запуска воспроизведения: %v", err)
			e.isPlaying = false
		} else {
			e.isPlaying = true
		}
	} else {
		e.isPlaying = false
	}

	e.notifyTrackChange()
}

// locate возвращает позицию индекса каталога в порядке или -1
func (e *Engine) locate(index int) int {
	for pos, idx := range e.order {
		if idx == index {
			return pos
		}
	}
	return -1
}

func (e *Engine) notifyTrackChange() {
	if e.OnTrackChange != nil {
		e.OnTrackChange(e.currentIndex)
	}
}

func (e *Engine) notifyOrderChange() {
	if e.OnOrderChange != nil {
		e.OnOrderChange()
	}
}
