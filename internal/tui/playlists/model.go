// Package playlists содержит модель экрана плейлистов для TUI
package playlists

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-tunebox/internal/playlist"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Margin(1, 0)
	itemStyle     = lipgloss.NewStyle().PaddingLeft(4)
	selectedStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Margin(1, 0)
)

// GoBackMsg отправляется при возврате к каталогу
type GoBackMsg struct{}

// mode режим экрана: просмотр списка либо ввод имени нового плейлиста
type mode int

const (
	browsing mode = iota
	naming
)

// Model представляет модель экрана плейлистов
type Model struct {
	store *playlist.Store
	input textinput.Model
	mode  mode

	cursor int
	err    string

	// pendingTrack индекс трека каталога, ожидающий добавления;
	// -1 означает обычный просмотр плейлистов
	pendingTrack int
}

// NewModel создает новую модель плейлистов.
// Если pendingTrack неотрицателен, выбор плейлиста добавит в него трек.
func NewModel(store *playlist.Store, pendingTrack int) *Model {
	input := textinput.New()
	input.Placeholder = "Название нового плейлиста"

	return &Model{
		store:        store,
		input:        input,
		mode:         browsing,
		pendingTrack: pendingTrack,
	}
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == naming {
			return m.updateNaming(msg)
		}
		return m.updateBrowsing(msg)

	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
		return m, nil
	}

	return m, nil
}

// updateBrowsing обрабатывает клавиши в режиме просмотра
func (m *Model) updateBrowsing(msg tea.KeyMsg) (*Model, tea.Cmd) {
	playlists := m.sorted()

	switch msg.String() {
	case "q", "esc":
		return m, func() tea.Msg {
			return GoBackMsg{}
		}

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(playlists)-1 {
			m.cursor++
		}

	case "n":
		// Переходим к вводу имени нового плейлиста
		m.mode = naming
		m.err = ""
		m.input.SetValue("")
		return m, m.input.Focus()

	case "enter":
		if m.cursor >= len(playlists) {
			break
		}
		selected := playlists[m.cursor]

		if m.pendingTrack >= 0 {
			// Добавляем ожидающий трек и возвращаемся к каталогу
			if _, err := m.store.AddTrack(selected.ID, m.pendingTrack); err != nil {
				m.err = fmt.Sprintf("Ошибка добавления трека: %v", err)
				return m, nil
			}
			return m, func() tea.Msg {
				return GoBackMsg{}
			}
		}

		// Обычный выбор: делаем плейлист активным
		if err := m.store.SelectActive(selected.ID); err != nil {
			m.err = fmt.Sprintf("Ошибка выбора плейлиста: %v", err)
		}
	}

	return m, nil
}

// updateNaming обрабатывает клавиши в режиме ввода имени
func (m *Model) updateNaming(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = browsing
		m.input.Blur()
		return m, nil

	case "enter":
		if _, err := m.store.Create(m.input.Value()); err != nil {
			m.err = fmt.Sprintf("Ошибка создания плейлиста: %v", err)
			return m, nil
		}
		m.err = ""
		m.mode = browsing
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View отображает модель
func (m *Model) View() string {
	var b strings.Builder

	header := "Плейлисты"
	if m.pendingTrack >= 0 {
		header = "Добавить трек в плейлист"
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	playlists := m.sorted()
	active := m.store.Active()
	for i, p := range playlists {
		line := fmt.Sprintf("%-30s %d трек(ов)", p.Name, len(p.TrackIDs))
		if active != nil && p.ID == active.ID {
			line += " " + activeStyle.Render("● активный")
		}
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(itemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.mode == naming {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n")
	}

	if m.mode == naming {
		b.WriteString(helpStyle.Render("Enter: создать • Esc: отмена"))
	} else if m.pendingTrack >= 0 {
		b.WriteString(helpStyle.Render("Enter: добавить сюда • n: новый плейлист • Esc: отмена"))
	} else {
		b.WriteString(helpStyle.Render("Enter: сделать активным • n: новый плейлист • q/esc: назад"))
	}

	return b.String()
}

// sorted возвращает плейлисты в стабильном порядке отображения
func (m *Model) sorted() []*playlist.Playlist {
	all := m.store.All()
	playlists := make([]*playlist.Playlist, 0, len(all))
	for _, p := range all {
		playlists = append(playlists, p)
	}
	sort.Slice(playlists, func(i, j int) bool {
		if playlists[i].Name == playlists[j].Name {
			return playlists[i].ID < playlists[j].ID
		}
		return playlists[i].Name < playlists[j].Name
	})
	return playlists
}
