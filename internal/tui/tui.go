// Package tui implements the interactive terminal client for playing hands
// against a bot agent.
package tui

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/kuhnlab/kuhnbot/internal/contract"
	"github.com/kuhnlab/kuhnbot/internal/game"
)

// Styles contains the lipgloss styling for the play screen.
type Styles struct {
	Title   lipgloss.Style
	Card    lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Score   lipgloss.Style
}

// DefaultStyles returns the standard color scheme.
func DefaultStyles() *Styles {
	return &Styles{
		Title:   lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		Card:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Score:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
	}
}

// Model is the Bubble Tea model for interactive play. The human holds one
// seat; the bot agent holds the other and its turns are resolved inline
// between key presses.
type Model struct {
	logger *log.Logger
	styles *Styles

	bot       game.Agent
	rng       *rand.Rand
	humanSeat contract.Player
	maxHands  int

	state     game.HandState
	handIndex int
	totals    [contract.NumPlayers]int
	completed int

	input    textinput.Model
	eventLog []string
	errLine  string
	quitting bool
	done     bool
}

// New creates a play model. maxHands of 0 means play until quit.
func New(botAgent game.Agent, rng *rand.Rand, humanSeat contract.Player, maxHands int, logger *log.Logger) *Model {
	ti := textinput.New()
	ti.Placeholder = "c = check/call, b = bet, f = fold, q = quit"
	ti.Focus()
	ti.CharLimit = 16
	ti.Width = 48
	ti.Prompt = "> "

	return &Model{
		logger:    logger.WithPrefix("tui"),
		styles:    DefaultStyles(),
		bot:       botAgent,
		rng:       rng,
		humanSeat: humanSeat,
		maxHands:  maxHands,
		input:     ti,
	}
}

// Init deals the first hand.
func (m *Model) Init() tea.Cmd {
	m.startHand()
	return textinput.Blink
}

// Update handles key presses.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			command := strings.TrimSpace(strings.ToLower(m.input.Value()))
			m.input.SetValue("")
			return m.handleCommand(command)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleCommand(command string) (tea.Model, tea.Cmd) {
	m.errLine = ""

	switch command {
	case "q", "quit":
		m.quitting = true
		return m, tea.Quit
	case "":
		if m.done {
			m.quitting = true
			return m, tea.Quit
		}
		if m.state.Terminal() {
			m.startHand()
		}
		return m, nil
	}

	if m.state.Terminal() {
		m.errLine = "hand is over; press enter for the next hand or q to quit"
		return m, nil
	}

	mask := game.LegalActionMask(m.state, m.humanSeat)
	action, ok := parseCommand(command, mask)
	if !ok {
		m.errLine = fmt.Sprintf("invalid or illegal command %q", command)
		return m, nil
	}

	next, err := m.state.Apply(action)
	if err != nil {
		// parseCommand checks the mask, so this is unreachable in practice.
		m.errLine = err.Error()
		return m, nil
	}
	m.logToken(m.humanSeat, next)
	m.state = next
	m.advanceBot()

	if m.state.Terminal() {
		m.finishHand()
	}
	return m, nil
}

// startHand deals a fresh hand and resolves any bot turns before the human
// acts.
func (m *Model) startHand() {
	m.handIndex++
	m.state = game.Deal(m.rng)
	m.eventLog = nil
	m.errLine = ""
	m.eventLog = append(m.eventLog, fmt.Sprintf("=== Hand %d ===", m.handIndex))
	m.advanceBot()
	if m.state.Terminal() {
		m.finishHand()
	}
}

// advanceBot applies bot decisions until it is the human's turn or the hand
// ends.
func (m *Model) advanceBot() {
	for !m.state.Terminal() {
		actor, _ := m.state.Actor()
		if actor == m.humanSeat {
			return
		}
		mask := game.LegalActionMask(m.state, actor)
		action, err := m.bot.Act(context.Background(), m.state, mask)
		if err != nil {
			m.logger.Error("bot decision failed", "error", err)
			m.errLine = "bot failed to act"
			return
		}
		next, err := m.state.Apply(action)
		if err != nil {
			m.logger.Error("bot produced illegal action", "error", err)
			m.errLine = "bot produced an illegal action"
			return
		}
		m.logToken(actor, next)
		m.state = next
	}
}

func (m *Model) finishHand() {
	returns, _ := m.state.Returns()
	m.completed++
	for seat := 0; seat < contract.NumPlayers; seat++ {
		m.totals[seat] += returns[seat]
	}

	botSeat := m.humanSeat.Opponent()
	m.eventLog = append(m.eventLog,
		fmt.Sprintf("reveal: you=%s bot=%s", m.state.PrivateCard(m.humanSeat), m.state.PrivateCard(botSeat)),
		fmt.Sprintf("hand return: you=%+d bot=%+d", returns[m.humanSeat], returns[botSeat]),
	)
	if m.maxHands > 0 && m.completed >= m.maxHands {
		m.done = true
	}
}

func (m *Model) logToken(actor contract.Player, next game.HandState) {
	history := next.History()
	token := history[len(history)-1]
	who := "bot"
	if actor == m.humanSeat {
		who = "you"
	}
	m.eventLog = append(m.eventLog, fmt.Sprintf("%s: %s", who, token))
}

// View renders the play screen.
func (m *Model) View() string {
	if m.quitting {
		return m.finalScore()
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Kuhn Poker"))
	b.WriteString("\n\n")
	b.WriteString("Your card: ")
	b.WriteString(m.styles.Card.Render(m.state.PrivateCard(m.humanSeat).String()))
	b.WriteString("\n\n")

	for _, line := range m.eventLog {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.errLine != "" {
		b.WriteString(m.styles.Error.Render(m.errLine))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Score.Render(fmt.Sprintf("Session: you %+d after %d hand(s)", m.totals[m.humanSeat], m.completed)))
	b.WriteString("\n\n")

	switch {
	case m.done:
		b.WriteString(m.styles.Info.Render("Session complete. Press enter or q to exit."))
	case m.state.Terminal():
		b.WriteString(m.styles.Info.Render("Press enter for the next hand, or q to quit."))
	default:
		b.WriteString(m.styles.Info.Render(m.prompt()))
		b.WriteString("\n")
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *Model) prompt() string {
	mask := game.LegalActionMask(m.state, m.humanSeat)
	options := make([]string, 0, 4)
	if mask.Legal(contract.ActionCheckCall) {
		label := "check"
		if m.state.Phase().Response() {
			label = "call"
		}
		options = append(options, "[c] "+label)
	}
	if mask.Legal(contract.ActionBet) {
		options = append(options, "[b] bet")
	}
	if mask.Legal(contract.ActionFold) {
		options = append(options, "[f] fold")
	}
	options = append(options, "[q] quit")
	return "Legal actions: " + strings.Join(options, ", ")
}

func (m *Model) finalScore() string {
	if m.completed == 0 {
		return "Session ended.\n"
	}
	return fmt.Sprintf("Final score after %d completed hand(s): you %+d, bot %+d\n",
		m.completed, m.totals[m.humanSeat], m.totals[m.humanSeat.Opponent()])
}

// parseCommand maps a typed command to an action id, enforcing the mask.
func parseCommand(command string, mask contract.Mask) (contract.ActionID, bool) {
	switch command {
	case "c", "check", "call":
		return contract.ActionCheckCall, mask.Legal(contract.ActionCheckCall)
	case "b", "bet":
		return contract.ActionBet, mask.Legal(contract.ActionBet)
	case "f", "fold":
		return contract.ActionFold, mask.Legal(contract.ActionFold)
	default:
		return 0, false
	}
}
