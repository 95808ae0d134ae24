// FILENAME: internal/ui/model.go
package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xkilldash9x/round-table/internal/config"
	"github.com/xkilldash9x/round-table/internal/models"
	"go.uber.org/zap"
)

// -- Messages --
type MealMsg models.MealEvent
type RoundMsg models.RoundEvent
type DoneMsg struct {
	Err error
}

type seatRow struct {
	name      string
	meals     int64
	eatTime   string
	lastRound int // Round of the most recent meal, -1 before the first
}

type Model struct {
	State  State
	Logger *zap.Logger
	Keys   KeyMap

	// UI Components
	SeatTable table.Model
	Spinner   spinner.Model
	Help      help.Model

	// Data
	seats  []seatRow
	Round  int
	Trips  int
	Rounds int // Requested rounds, 0 = unbounded

	// Layout
	Width, Height int
	LastError     string
}

func NewModel(logger *zap.Logger, cfg config.Table, rounds int) Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Seat", Width: 4},
			{Title: "Name", Width: 14},
			{Title: "Eat", Width: 8},
			{Title: "Meals", Width: 6},
			{Title: "State", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(cfg.Philosophers+3),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(config.ColorFocus).Bold(false)
	t.SetStyles(s)

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(config.ColorAccent)

	seats := make([]seatRow, len(cfg.Seats))
	for i, seat := range cfg.Seats {
		seats[i] = seatRow{name: seat.Name, eatTime: seat.EatTime.String(), lastRound: -1}
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	m := Model{
		State:     StateDining,
		Logger:    logger,
		Keys:      DefaultKeyMap(),
		SeatTable: t,
		Spinner:   spin,
		Help:      help.New(),
		seats:     seats,
		Rounds:    rounds,
	}
	m.updateSeatTable()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.Spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.SeatTable.SetWidth(m.Width - 4)
		return m, nil

	case MealMsg:
		if msg.Seat >= 0 && msg.Seat < len(m.seats) {
			m.seats[msg.Seat].meals = msg.Meals
			m.seats[msg.Seat].lastRound = msg.Round
		}
		m.updateSeatTable()
		return m, nil

	case RoundMsg:
		m.Round = msg.Next
		m.Trips++
		m.updateSeatTable()
		return m, nil

	case DoneMsg:
		if msg.Err != nil {
			m.State = StateFailed
			m.LastError = msg.Err.Error()
		} else {
			m.State = StateFinished
		}
		m.updateSeatTable()
		return m, nil

	case spinner.TickMsg:
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.Keys.Quit) {
			m.Logger.Debug("dashboard quit requested")
			return m, tea.Quit
		}
	}

	m.SeatTable, cmd = m.SeatTable.Update(msg)
	return m, cmd
}

func (m *Model) updateSeatTable() {
	rows := make([]table.Row, len(m.seats))
	for i, s := range m.seats {
		state := "thinking"
		if m.State == StateDining && s.lastRound == m.Round && s.lastRound >= 0 {
			state = "eating"
		}
		rows[i] = table.Row{strconv.Itoa(i), s.name, s.eatTime, strconv.FormatInt(s.meals, 10), state}
	}
	m.SeatTable.SetRows(rows)
}

func (m Model) View() string {
	content := panelStyle.Render(m.SeatTable.View())
	if m.LastError != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, errStyle.Render("ERROR: "+m.LastError), content)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(" ROUND TABLE "),
		content,
		m.renderStatusBar(),
		m.Help.View(m.Keys),
	)
}

func (m Model) renderStatusBar() string {
	progress := fmt.Sprintf("Round: %d | Completed: %d", m.Round, m.Trips)
	if m.Rounds > 0 {
		progress = fmt.Sprintf("Round: %d | Completed: %d/%d", m.Round, m.Trips, m.Rounds)
	}
	badge := stateStyle(m.State).Render(m.State.String())
	spin := ""
	if m.State == StateDining {
		spin = m.Spinner.View()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, badge, statusText.Render(progress), spin)
}
