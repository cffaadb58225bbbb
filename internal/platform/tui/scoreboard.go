package tui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pm-arcade/internal/registry"
	"github.com/vovakirdan/pm-arcade/internal/storage"
)

const (
	boardRows   = 50 // runs loaded per game
	panelWidth  = 26 // stats panel beside the table
	wideEnough  = 84 // below this the panel goes under the table
	boardChrome = 10 // title, stats line, help and borders
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// boardOrder selects which runs the table lists.
type boardOrder int

const (
	orderTop boardOrder = iota
	orderRecent
)

func (o boardOrder) String() string {
	if o == orderRecent {
		return "recent runs"
	}
	return "top runs"
}

// boardKeys are the scoreboard bindings, shown through bubbles/help.
type boardKeys struct {
	Scroll key.Binding
	Game   key.Binding
	Order  key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Game, k.Order, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultBoardKeys() boardKeys {
	return boardKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		Game:   key.NewBinding(key.WithKeys("left", "right", "h", "l", "tab", "shift+tab"), key.WithHelp("←/→", "game")),
		Order:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "top/recent")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel browses the stored runs of every game.
type ScoreboardModel struct {
	games    []registry.GameInfo
	bestKeys map[string]string
	store    *storage.Store

	cursor int
	order  boardOrder
	runs   []storage.ScoreEntry
	stats  *storage.GameStats
	best   string

	table table.Model
	help  help.Model
	keys  boardKeys

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard over store. bestKeys maps a game
// ID to the key its best value is persisted under; a nil store shows an
// empty board.
func NewScoreboardModel(store *storage.Store, bestKeys map[string]string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:    registry.List(),
		bestKeys: bestKeys,
		store:    store,
		help:     help.New(),
		keys:     defaultBoardKeys(),
		width:    width,
		height:   height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) newTable() table.Model {
	dateW := 16
	if m.width >= wideEnough+10 {
		dateW = 20
	}
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Result", Width: 7},
		{Title: "When", Width: dateW},
		{Title: "Run", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-boardChrome)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// current returns the selected game, if any.
func (m ScoreboardModel) current() (registry.GameInfo, bool) {
	if len(m.games) == 0 {
		return registry.GameInfo{}, false
	}
	return m.games[m.cursor], true
}

// reload fetches runs, aggregates and the best value for the selected game.
// Query failures show as an empty board.
func (m *ScoreboardModel) reload() {
	m.runs, m.stats, m.best = nil, nil, ""
	g, ok := m.current()
	if ok && m.store != nil {
		if m.order == orderRecent {
			m.runs, _ = m.store.RecentScores(g.ID, boardRows)
		} else {
			m.runs, _ = m.store.TopScores(g.ID, boardRows)
		}
		m.stats, _ = m.store.GetGameStats(g.ID)
		if k, ok := m.bestKeys[g.ID]; ok {
			if v, ok := m.store.Get(k); ok {
				m.best = formatBest(v)
			}
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		result := "-"
		if r.Won {
			result = "WON"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			result,
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			shortRunID(r.RunID),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatBest renders a persisted best value. Plain values are shown as is;
// a JSON object becomes sorted key=value pairs.
func formatBest(raw string) string {
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil || len(obj) == 0 {
		return raw
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, obj[k])
	}
	return strings.Join(parts, " ")
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Order):
			m.order = 1 - m.order
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.Game):
			m.cycle(msg.String())
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// cycle moves to the previous or next game.
func (m *ScoreboardModel) cycle(k string) {
	n := len(m.games)
	if n == 0 {
		return
	}
	switch k {
	case "left", "h", "shift+tab":
		m.cursor = (m.cursor + n - 1) % n
	default:
		m.cursor = (m.cursor + 1) % n
	}
	m.reload()
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "SCOREBOARD"
	if g, ok := m.current(); ok {
		title = fmt.Sprintf("SCOREBOARD · %s", g.Title)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(boardDimStyle.Render(m.tabs()), m.width))
	b.WriteString("\n\n")

	body := boardFrameStyle.Render(m.runsView())
	panel := boardFrameStyle.Width(panelWidth).Render(m.panel())
	if m.width >= wideEnough {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", panel))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, body, panel))
	}

	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs lists game IDs with the selected one bracketed.
func (m ScoreboardModel) tabs() string {
	ids := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.cursor {
			ids[i] = "[" + g.ID + "]"
		} else {
			ids[i] = g.ID
		}
	}
	return strings.Join(ids, "  ")
}

func (m ScoreboardModel) runsView() string {
	if len(m.runs) == 0 {
		return boardDimStyle.Italic(true).Padding(1, 2).
			Render("No runs recorded yet.\nFinish a round to get on the board.")
	}
	return boardLabelStyle.Render(m.order.String()) + "\n" + m.table.View()
}

// panel summarises the selected game.
func (m ScoreboardModel) panel() string {
	var b strings.Builder
	b.WriteString(boardLabelStyle.Render("Stats"))
	b.WriteString("\n")
	if m.stats == nil || m.stats.GamesCount == 0 {
		b.WriteString(boardDimStyle.Render("no runs"))
	} else {
		fmt.Fprintf(&b, "runs   %d\n", m.stats.GamesCount)
		fmt.Fprintf(&b, "wins   %d\n", m.stats.Wins)
		fmt.Fprintf(&b, "best   %d\n", m.stats.HighScore)
		fmt.Fprintf(&b, "avg    %.0f\n", m.stats.AvgScore)
		if !m.stats.LastPlayed.IsZero() {
			fmt.Fprintf(&b, "last   %s", m.stats.LastPlayed.Local().Format("Jan 02 15:04"))
		}
	}
	if m.best != "" {
		b.WriteString("\n\n")
		b.WriteString(boardLabelStyle.Render("Best"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(panelWidth - 4).Render(m.best))
	}
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, bestKeys map[string]string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, bestKeys, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
