// Package player содержит адаптер сессии воспроизведения поверх beep
package player

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"

	"github.com/hazadus/go-tunebox/internal/catalog"
	"github.com/hazadus/go-tunebox/internal/streaming"
)

// Status представляет текущий статус плеера
type Status struct {
	Current   time.Duration // Текущая позиция
	Total     time.Duration // Общая продолжительность
	IsPlaying bool          // Воспроизводится ли трек
}

// Player управляет воспроизведением одного трека за раз и реализует
// границу сессии, которой командует движок очереди: Load готовит трек
// на паузе, Play/Pause управляют состоянием, SeekTo перематывает.
type Player struct {
	// Каналы для обратной связи
	progressChan chan Status
	doneChan     chan bool

	// Внутреннее состояние
	ctx           context.Context
	cancel        context.CancelFunc
	mutex         sync.RWMutex
	isInitialized bool
	isPaused      bool
	currentTrack  *catalog.Track

	resolver *Resolver

	// Wrap оборачивает поток перед отправкой в динамики;
	// используется визуализатором, может быть nil
	Wrap func(beep.Streamer) beep.Streamer

	// Компоненты для воспроизведения
	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	source   io.Closer
}

// NewPlayer создает новый экземпляр плеера
func NewPlayer() *Player {
	ctx, cancel := context.WithCancel(context.Background())
	return &Player{
		progressChan: make(chan Status, 1),
		doneChan:     make(chan bool, 1),
		ctx:          ctx,
		cancel:       cancel,
		resolver:     NewResolver(),
	}
}

// Progress возвращает канал для получения обновлений прогресса
func (p *Player) Progress() <-chan Status {
	return p.progressChan
}

// Done возвращает канал, по которому приходит сигнал об окончании трека
func (p *Player) Done() <-chan bool {
	return p.doneChan
}

// Load останавливает текущий трек и готовит новый к воспроизведению.
// Трек остается на паузе: запуск - отдельная команда Play.
func (p *Player) Load(track catalog.Track) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	// Останавливаем текущее воспроизведение, если есть
	p.stopInternal()

	// Источник каталога может требовать разрешения в потоковый URL
	streamURL, err := p.resolver.Resolve(p.ctx, track.Source)
	if err != nil {
		return fmt.Errorf("ошибка разрешения источника: %w", err)
	}

	reader, err := openSource(p.ctx, streamURL)
	if err != nil {
		return err
	}
	p.source = reader

	// Декодируем MP3
	streamer, format, err := mp3.Decode(reader)
	if err != nil {
		reader.Close()
		p.source = nil
		return fmt.Errorf("ошибка декодирования MP3: %w", err)
	}
	p.streamer = streamer

	// Инициализируем speaker (только один раз)
	if !p.isInitialized {
		err = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/5))
		if err != nil {
			streamer.Close()
			reader.Close()
			p.streamer = nil
			p.source = nil
			return fmt.Errorf("ошибка инициализации динамиков: %w", err)
		}
		p.isInitialized = true
	}

	p.currentTrack = &track

	// Создаем контроллер паузы; трек загружен, но еще не играет
	p.ctrl = &beep.Ctrl{
		Streamer: streamer,
		Paused:   true,
	}
	p.isPaused = true

	var out beep.Streamer = p.ctrl
	if p.Wrap != nil {
		out = p.Wrap(out)
	}

	speaker.Play(beep.Seq(out, beep.Callback(func() {
		// Уведомляем о завершении воспроизведения
		select {
		case p.doneChan <- true:
		default:
		}
	})))

	// Запускаем мониторинг прогресса в отдельной горутине
	go p.monitorProgress(format)

	return nil
}

// Play запускает или возобновляет воспроизведение загруженного трека
func (p *Player) Play() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.ctrl == nil {
		return fmt.Errorf("трек не загружен")
	}

	speaker.Lock()
	p.isPaused = false
	p.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

// Pause приостанавливает воспроизведение
func (p *Player) Pause() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.ctrl != nil {
		speaker.Lock()
		p.isPaused = true
		p.ctrl.Paused = true
		speaker.Unlock()
	}
}

// SeekTo перематывает трек на долю fraction от его длины (0 - начало)
func (p *Player) SeekTo(fraction float64) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.streamer == nil {
		return
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	speaker.Lock()
	target := int(fraction * float64(p.streamer.Len()))
	_ = p.streamer.Seek(target)
	speaker.Unlock()
}

// Stop останавливает воспроизведение и освобождает ресурсы трека
func (p *Player) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.stopInternal()
}

// stopInternal внутренний метод остановки (должен вызываться под мьютексом)
func (p *Player) stopInternal() {
	if p.ctrl != nil {
		speaker.Clear()
		p.ctrl = nil
	}

	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}

	if p.source != nil {
		p.source.Close()
		p.source = nil
	}

	p.currentTrack = nil
	p.isPaused = true
}

// Close закрывает плеер и освобождает ресурсы
func (p *Player) Close() error {
	p.cancel()
	p.Stop()
	close(p.progressChan)
	close(p.doneChan)
	return nil
}

// IsPlaying возвращает true, если трек воспроизводится
func (p *Player) IsPlaying() bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.ctrl != nil && !p.isPaused
}

// CurrentTrack возвращает информацию о текущем треке
func (p *Player) CurrentTrack() *catalog.Track {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.currentTrack
}

// openSource открывает источник трека: HTTP URL читается потоково,
// все остальное считается путем к локальному файлу
func openSource(ctx context.Context, source string) (io.ReadCloser, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		const bufferSize = 256 * 1024 // 256KB буфер
		reader, err := streaming.NewReader(ctx, source, bufferSize)
		if err != nil {
			return nil, fmt.Errorf("ошибка создания потокового ридера: %w", err)
		}
		return reader, nil
	}

	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	return file, nil
}

// monitorProgress мониторит прогресс воспроизведения и отправляет обновления
func (p *Player) monitorProgress(format beep.Format) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.mutex.RLock()

			if p.streamer == nil || p.ctrl == nil {
				p.mutex.RUnlock()
				return
			}

			speaker.Lock()
			currentPos := format.SampleRate.D(p.streamer.Position())
			totalLen := format.SampleRate.D(p.streamer.Len())
			currentPauseState := p.isPaused
			speaker.Unlock()

			p.mutex.RUnlock()

			// Отправляем обновление статуса
			status := Status{
				Current:   currentPos,
				Total:     totalLen,
				IsPlaying: !currentPauseState,
			}

			select {
			case p.progressChan <- status:
			default:
				// Если канал заблокирован, пропускаем обновление
			}
		}
	}
}
