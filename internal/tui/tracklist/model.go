// Package tracklist содержит модель экрана каталога треков для TUI
package tracklist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-tunebox/internal/catalog"
	"github.com/hazadus/go-tunebox/internal/utils"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
	quitTextStyle     = lipgloss.NewStyle().Margin(1, 0, 2, 4)
)

// TrackSelectedMsg отправляется при выборе трека для воспроизведения
type TrackSelectedMsg struct {
	Index int
}

// AddToPlaylistMsg отправляется при добавлении трека в плейлист
type AddToPlaylistMsg struct {
	Index int
}

// OpenPlaylistsMsg отправляется для перехода к экрану плейлистов
type OpenPlaylistsMsg struct{}

// trackItem реализует интерфейс list.Item для трека каталога
type trackItem struct {
	index int
	track catalog.Track
}

// FilterValue определяет, по каким полям работает поиск по каталогу
func (i trackItem) FilterValue() string {
	return fmt.Sprintf("%s %s %s", i.track.Artist, i.track.Title, i.track.Album)
}

// trackItemDelegate реализует отображение элементов списка
type trackItemDelegate struct{}

func (d trackItemDelegate) Height() int                             { return 1 }
func (d trackItemDelegate) Spacing() int                            { return 0 }
func (d trackItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d trackItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(trackItem)
	if !ok {
		return
	}

	// Форматируем строку в виде таблицы: ID | Исполнитель | Название
	str := fmt.Sprintf("%-6s %-20s %-50s",
		i.track.ID,
		utils.TruncateString(i.track.Artist, 20),
		utils.TruncateString(i.track.Title, 50))

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

// Model представляет модель экрана каталога
type Model struct {
	list     list.Model
	catalog  *catalog.Catalog
	quitting bool
}

// NewModel создает новую модель каталога
func NewModel(cat *catalog.Catalog) *Model {
	// Преобразуем треки каталога в элементы списка
	items := make([]list.Item, cat.Len())
	for i := 0; i < cat.Len(); i++ {
		items[i] = trackItem{index: i, track: *cat.Track(i)}
	}

	// Создаем список; встроенная фильтрация служит поиском по каталогу
	l := list.New(items, trackItemDelegate{}, 0, 0)
	l.Title = "Каталог"
	l.SetShowStatusBar(false)
	l.SetShowTitle(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	return &Model{
		list:    l,
		catalog: cat,
	}
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4) // Оставляем место для заголовка и справки
		return m, nil

	case tea.KeyMsg:
		// Во время ввода фильтра клавиши принадлежат строке поиска
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			// Воспроизводим выбранный трек
			if item, ok := m.list.SelectedItem().(trackItem); ok {
				return m, func() tea.Msg {
					return TrackSelectedMsg{Index: item.index}
				}
			}

		case "a":
			// Добавляем выбранный трек в плейлист
			if item, ok := m.list.SelectedItem().(trackItem); ok {
				return m, func() tea.Msg {
					return AddToPlaylistMsg{Index: item.index}
				}
			}

		case "p":
			// Переходим к плейлистам
			return m, func() tea.Msg {
				return OpenPlaylistsMsg{}
			}
		}
	}

	// Обновляем список
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View отображает модель
func (m *Model) View() string {
	if m.quitting {
		return quitTextStyle.Render("До свидания!")
	}

	view := m.list.View()
	// Добавляем дополнительную справку
	extraHelp := helpStyle.Render("Enter: воспроизвести • a: в плейлист • p: плейлисты • /: поиск • q: выход")
	return view + "\n" + extraHelp
}
