// Package player содержит модель экрана воспроизведения для TUI
package player

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-tunebox/internal/catalog"
	"github.com/hazadus/go-tunebox/internal/player"
	"github.com/hazadus/go-tunebox/internal/queue"
	"github.com/hazadus/go-tunebox/internal/utils"
	"github.com/hazadus/go-tunebox/internal/visualizer"
)

var (
	trackInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1).
			MarginBottom(1)

	upcomingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)
)

// Количество столбиков визуализатора и треков в предпросмотре очереди
const (
	visualizerBands = 16
	upcomingCount   = 3
)

var barRunes = []rune("▁▂▃▄▅▆▇█")

// GoBackMsg отправляется для возврата к каталогу
type GoBackMsg struct{}

// ProgressMsg содержит обновления прогресса воспроизведения.
// Доставляется слушателем событий плеера из главной модели.
type ProgressMsg struct {
	Status player.Status
}

// TrackEndedMsg отправляется при завершении трека; обрабатывается
// главной моделью, чтобы очередь продвигалась с любого экрана
type TrackEndedMsg struct{}

// VisTickMsg тик перерисовки визуализатора; цикл тиков ведет главная модель
type VisTickMsg time.Time

// Model представляет модель экрана воспроизведения
type Model struct {
	catalog     *catalog.Catalog
	engine      *queue.Engine
	player      *player.Player
	vis         *visualizer.Visualizer
	progressBar progress.Model
	titleStyle  lipgloss.Style
	status      player.Status
	width       int
	height      int
}

// NewModel создает новую модель экрана воспроизведения
func NewModel(cat *catalog.Catalog, engine *queue.Engine, pl *player.Player, vis *visualizer.Visualizer, theme string) *Model {
	// Создаем прогресс-бар
	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 40

	// Цвет заголовка зависит от темы
	accent := lipgloss.Color("205")
	if theme == "light" {
		accent = lipgloss.Color("63")
	}

	return &Model{
		catalog:     cat,
		engine:      engine,
		player:      pl,
		vis:         vis,
		progressBar: prog,
		titleStyle:  lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
	}
}

// Init инициализирует модель. События плеера и тики визуализатора
// приходят от главной модели, собственных команд экран не запускает.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Обновляем ширину прогресс-бара
		m.progressBar.Width = min(60, msg.Width-10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			// Возвращаемся к каталогу, воспроизведение продолжается
			return m, func() tea.Msg {
				return GoBackMsg{}
			}

		case " ":
			// Пауза/воспроизведение
			if m.engine.IsPlaying() {
				m.player.Pause()
				m.engine.SetPlaying(false)
			} else if err := m.player.Play(); err == nil {
				m.engine.SetPlaying(true)
			}
			return m, nil

		case "n", "right":
			// Следующий трек
			m.engine.Advance(+1)
			return m, nil

		case "b", "left":
			// Предыдущий трек
			m.engine.Advance(-1)
			return m, nil

		case "s":
			m.engine.ToggleShuffle()
			return m, nil

		case "r":
			m.engine.ToggleRepeat()
			return m, nil
		}

	case ProgressMsg:
		// Обновляем статус и прогресс-бар
		m.status = msg.Status

		// Вычисляем прогресс в долях
		var percent float64
		if msg.Status.Total > 0 {
			percent = float64(msg.Status.Current) / float64(msg.Status.Total)
		}

		return m, m.progressBar.SetPercent(percent)

	case VisTickMsg:
		// Перерисовка: полосы визуализатора читаются в View
		return m, nil

	case progress.FrameMsg:
		// Обновляем прогресс-бар
		progressModel, cmd := m.progressBar.Update(msg)
		m.progressBar = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

// View отображает модель
func (m *Model) View() string {
	track := m.engine.CurrentTrack()
	if track == nil {
		return m.titleStyle.Render("🎵 Ничего не играет") + "\n\n" +
			controlsStyle.Render("q/esc: назад к каталогу")
	}

	// Заголовок
	title := m.titleStyle.Render("🎵 Сейчас играет")

	// Информация о треке
	trackInfo := trackInfoStyle.Render(fmt.Sprintf(
		"🎤 %s\n🎵 %s\n💿 %s",
		track.Artist,
		track.Title,
		track.Album,
	))

	// Статус воспроизведения и режимы очереди
	statusIcon := "⏸️"
	if m.engine.IsPlaying() {
		statusIcon = "▶️"
	}
	modes := make([]string, 0, 2)
	if m.engine.ShuffleEnabled() {
		modes = append(modes, "🔀 перемешивание")
	}
	if m.engine.Repeat() == queue.RepeatOne {
		modes = append(modes, "🔁 повтор трека")
	}
	statusLine := fmt.Sprintf("%s %s", statusIcon, formatStatus(m.engine.IsPlaying()))
	if len(modes) > 0 {
		statusLine += "  " + strings.Join(modes, "  ")
	}
	statusText := statusStyle.Render(statusLine)

	// Прогресс-бар и время
	progressView := m.progressBar.View()
	timeText := fmt.Sprintf(
		"%s / %s",
		utils.FormatDuration(m.status.Current),
		utils.FormatDuration(m.status.Total),
	)

	// Визуализатор и предпросмотр очереди
	visView := m.renderVisualizer()
	upcomingView := m.renderUpcoming()

	// Элементы управления
	controls := controlsStyle.Render(
		"Пробел: пауза • n/b: след./пред. • s: перемешивание • r: повтор • q/esc: назад",
	)

	return fmt.Sprintf(
		"%s\n\n%s\n\n%s\n\n%s\n%s\n\n%s\n\n%s\n%s",
		title,
		trackInfo,
		statusText,
		progressView,
		timeText,
		visView,
		upcomingView,
		controls,
	)
}

// renderVisualizer отображает амплитуды полос столбиками
func (m *Model) renderVisualizer() string {
	if m.vis == nil {
		return ""
	}

	var b strings.Builder
	for _, band := range m.vis.Bands(visualizerBands) {
		idx := int(band * float64(len(barRunes)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(barRunes) {
			idx = len(barRunes) - 1
		}
		b.WriteRune(barRunes[idx])
	}
	return b.String()
}

// renderUpcoming отображает ближайшие треки очереди
func (m *Model) renderUpcoming() string {
	upcoming := m.engine.PreviewUpcoming(upcomingCount)
	if len(upcoming) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Дальше в очереди:\n")
	for i, idx := range upcoming {
		track := m.catalog.Track(idx)
		if track == nil {
			continue
		}
		b.WriteString(fmt.Sprintf("  %d. %s — %s\n", i+1,
			utils.TruncateString(track.Artist, 20),
			utils.TruncateString(track.Title, 40)))
	}
	return upcomingStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// Вспомогательные функции

func formatStatus(isPlaying bool) string {
	if isPlaying {
		return "Воспроизведение"
	}
	return "Пауза"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
