// Package visualizer содержит звуковой визуализатор: перехватывает сэмплы
// на пути к динамикам и считает амплитуды частотных полос для отрисовки в UI
package visualizer

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
)

// windowSize количество последних сэмплов, по которым считается спектр
const windowSize = 1024

// Visualizer накапливает последние сэмплы воспроизводимого потока.
// Stream вызывается аудио горутиной beep, Bands - горутиной UI,
// поэтому доступ к кольцевому буферу защищен мьютексом.
type Visualizer struct {
	mutex sync.Mutex
	buf   [windowSize]float64
	pos   int
	full  bool
}

// New создает новый визуализатор
func New() *Visualizer {
	return &Visualizer{}
}

// Wrap оборачивает поток так, чтобы сэмплы попадали в визуализатор
// по дороге к динамикам
func (v *Visualizer) Wrap(s beep.Streamer) beep.Streamer {
	return &tap{source: s, vis: v}
}

// Reset очищает накопленные сэмплы (например, при смене трека)
func (v *Visualizer) Reset() {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.pos = 0
	v.full = false
	for i := range v.buf {
		v.buf[i] = 0
	}
}

// Bands возвращает count амплитуд частотных полос в диапазоне [0, 1],
// от низких частот к высоким
func (v *Visualizer) Bands(count int) []float64 {
	if count <= 0 {
		return nil
	}

	window := v.snapshot()
	bands := make([]float64, count)
	if len(window) == 0 {
		return bands
	}

	// Небольшое ДПФ: по одной частоте на полосу достаточно для
	// индикатора из нескольких столбиков
	n := float64(len(window))
	for b := 0; b < count; b++ {
		// Частоты распределяем логарифмически, как их слышит ухо
		k := math.Pow(float64(len(window))/4, float64(b+1)/float64(count))
		var re, im float64
		for i, sample := range window {
			angle := 2 * math.Pi * k * float64(i) / n
			re += sample * math.Cos(angle)
			im -= sample * math.Sin(angle)
		}
		magnitude := 2 * math.Sqrt(re*re+im*im) / n
		bands[b] = math.Min(1, magnitude*4)
	}
	return bands
}

// snapshot возвращает копию накопленного окна в хронологическом порядке
func (v *Visualizer) snapshot() []float64 {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	if !v.full && v.pos == 0 {
		return nil
	}

	size := v.pos
	if v.full {
		size = windowSize
	}
	window := make([]float64, 0, size)
	if v.full {
		window = append(window, v.buf[v.pos:]...)
	}
	window = append(window, v.buf[:v.pos]...)
	return window
}

// push добавляет сэмплы в кольцевой буфер
func (v *Visualizer) push(samples [][2]float64) {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	for _, sample := range samples {
		// Сводим стерео в моно
		v.buf[v.pos] = (sample[0] + sample[1]) / 2
		v.pos++
		if v.pos == windowSize {
			v.pos = 0
			v.full = true
		}
	}
}

// tap прозрачный beep.Streamer, копирующий сэмплы в визуализатор
type tap struct {
	source beep.Streamer
	vis    *Visualizer
}

func (t *tap) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = t.source.Stream(samples)
	if n > 0 {
		t.vis.push(samples[:n])
	}
	return n, ok
}

func (t *tap) Err() error {
	return t.source.Err()
}
