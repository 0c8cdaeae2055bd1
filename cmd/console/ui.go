package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/mcamden/wildrun/pkg/content"
	"github.com/mcamden/wildrun/pkg/event"
	"github.com/mcamden/wildrun/pkg/journal"
	"github.com/mcamden/wildrun/pkg/roster"
	"github.com/mcamden/wildrun/pkg/run"
	"github.com/mcamden/wildrun/pkg/worldmap"
)

const (
	AppTitle        = "WILDRUN"
	PlaceHolderText = "Type a command (help for a list)..."
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config      *ConsoleConfig
	client      *http.Client
	sseClient   *http.Client
	state       *run.RunState
	logViewport viewport.Model
	mapViewport viewport.Model
	input       textinput.Model
	ready       bool
	width       int
	height      int
	err         error
	loading     bool

	// Starter selection state
	showSpeciesModal bool
	species          []content.Species
	selectedSpecies  int
	pickedSpecies    map[string]bool
	loadingSpecies   bool

	// Event choice state
	activeEvent    *event.Definition
	selectedChoice int
	selectedTarget int

	// Quit confirmation state
	showQuitModal bool

	// Interactions drained from event outcomes, waiting on the player
	pending []run.PendingInteraction

	// Live update stream
	sseChan   chan SSEEvent
	sseCancel context.CancelFunc

	// Transient line shown in the side panel (seed copied, etc.)
	notice string

	log []logLine

	// Progress bar state
	progressTick int
}

// logLine is one adventure-log entry; kind picks the style when the log
// is re-rendered for a new width.
type logLine struct {
	kind string
	text string
}

type speciesLoadedMsg struct {
	species []content.Species
	err     error
}

type runCreatedMsg struct {
	state *run.RunState
	err   error
}

type runRefreshedMsg struct {
	state *run.RunState
	err   error
}

type moveDoneMsg struct {
	result *MoveResult
	err    error
}

type advanceDoneMsg struct {
	state *run.RunState
	err   error
}

type eventChoiceDoneMsg struct {
	result *EventChoiceResult
	err    error
}

type actionDoneMsg struct {
	state *run.RunState
	note  string
	err   error
}

type battleDoneMsg struct {
	outcome *BattleOutcome
	err     error
}

type interactDoneMsg struct {
	state      *run.RunState
	pendingIdx int
	skipped    bool
	err        error
}

type pendingLoadedMsg struct {
	pending []run.PendingInteraction
	err     error
}

type journalLoadedMsg struct {
	entries []journal.Entry
	err     error
}

type abandonedMsg struct {
	err error
}

type sseEventMsg struct {
	event SSEEvent
}

type progressTickMsg struct{}

var (
	logPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	flavorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")). // green
			Italic(true)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	koStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")). // red
		Bold(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	ti := textinput.New()
	ti.Placeholder = PlaceHolderText
	ti.Focus()
	ti.Prompt = promptStyle.Render(":: ")
	ti.CharLimit = 200
	ti.Width = 50

	logVp := viewport.New(50, 20)
	logVp.MouseWheelEnabled = true

	mapVp := viewport.New(20, 20)

	return ConsoleUI{
		config:           cfg,
		client:           client,
		sseClient:        &http.Client{}, // no timeout, the stream lives as long as the context
		input:            ti,
		logViewport:      logVp,
		mapViewport:      mapVp,
		ready:            false,
		showSpeciesModal: true,
		loadingSpecies:   true,
		selectedSpecies:  0,
		pickedSpecies:    make(map[string]bool),
		selectedTarget:   -1,
	}
}

func (m *ConsoleUI) appendLog(kind, format string, args ...interface{}) {
	m.log = append(m.log, logLine{kind: kind, text: fmt.Sprintf(format, args...)})
}

// writeLogContent re-renders the adventure log for the current viewport
// width.
func (m *ConsoleUI) writeLogContent() {
	logWidth := m.logViewport.Width - 6 // Account for left(3) + right(3) padding

	var content strings.Builder
	content.WriteString(titleStyle.Render(AppTitle) + "\n\n")
	content.WriteString("Guide your party through the wilds, one node at a time.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(logWidth-6, 10))) + "\n\n")

	for _, line := range m.log {
		wrapped := wordwrap.String(line.text, max(logWidth-6, 10))
		switch line.kind {
		case "player":
			content.WriteString(userStyle.Render(wrapped) + "\n")
		case "flavor":
			content.WriteString(flavorStyle.Render(wrapped) + "\n\n")
		case "error":
			content.WriteString(errorStyle.Render(wrapped) + "\n")
		case "notice":
			content.WriteString(loadingStyle.Render(wrapped) + "\n")
		case "journal":
			content.WriteString(separatorStyle.Render(wrapped) + "\n")
		default:
			content.WriteString(narratorStyle.Render(wrapped) + "\n")
		}
	}

	if m.loading {
		content.WriteString("\n" + m.renderProgressBar())
	}

	m.logViewport.SetContent(content.String())
	m.logViewport.GotoBottom()
}

// writeMetadata renders the side panel: run summary, party, bench,
// graveyard and waiting interactions.
func writeMetadata(s *run.RunState, pending []run.PendingInteraction, notice string) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("RUN") + "\n\n")

	content.WriteString("Run ID:\n")
	content.WriteString(s.ID.String()[:8] + "...\n\n")

	content.WriteString(fmt.Sprintf("Seed: %d\n", s.Seed))
	content.WriteString(fmt.Sprintf("Act %d  •  Gold %d\n", s.CurrentAct, s.Gold))

	if node, ok := s.CurrentNode(); ok {
		content.WriteString(fmt.Sprintf("At: %s (%s)\n", node.ID, node.Type))
	}
	if s.Status != run.StatusActive {
		content.WriteString(koStyle.Render(strings.ToUpper(string(s.Status))) + "\n")
	}
	content.WriteString("\n")

	content.WriteString(headingStyle.Render("PARTY") + "\n")
	for i, member := range s.Party {
		content.WriteString(fmt.Sprintf("%d. %s\n", i+1, memberSummary(member)))
	}
	if len(s.Bench) > 0 {
		content.WriteString("\n" + headingStyle.Render("BENCH") + "\n")
		for i, member := range s.Bench {
			content.WriteString(fmt.Sprintf("%d. %s\n", i+1, memberSummary(member)))
		}
	}
	if len(s.Graveyard) > 0 {
		content.WriteString("\n" + headingStyle.Render("GRAVEYARD") + "\n")
		for i, member := range s.Graveyard {
			content.WriteString(fmt.Sprintf("%d. %s\n", i+1, displayName(member.CurrentFormID)))
		}
	}

	if len(pending) > 0 {
		content.WriteString("\n" + loadingStyle.Render(fmt.Sprintf("%d interaction(s) waiting", len(pending))) + "\n")
		content.WriteString("Type 'pending' to list them.\n")
	}

	if notice != "" {
		content.WriteString("\n" + loadingStyle.Render(notice) + "\n")
	}

	content.WriteString("\n")
	content.WriteString("Commands:\n")
	content.WriteString("• help: Command list\n")
	content.WriteString("• map: Paths from here\n")
	content.WriteString("• Ctrl+Y: Copy seed\n")
	content.WriteString("• Ctrl+C: Quit\n")

	return content.String()
}

func memberSummary(member roster.Member) string {
	name := displayName(member.CurrentFormID)
	line := fmt.Sprintf("%s L%d %d/%d", name, member.Level, member.CurrentHP, member.MaxHP)
	if member.Grid.Row != "" {
		line += fmt.Sprintf(" [%s %d]", member.Grid.Row, member.Grid.Col)
	}
	if member.KnockedOut {
		line += " " + koStyle.Render("KO")
	}
	return line
}

func displayName(formID string) string {
	if f, ok := content.FormByID(formID); ok {
		return f.Name
	}
	return formID
}

func (m ConsoleUI) Init() tea.Cmd {
	if m.showSpeciesModal {
		return m.loadSpecies()
	}
	return textinput.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Stream events and refreshes land regardless of which modal is up.
	switch msg := msg.(type) {
	case sseEventMsg:
		return m.handleSSE(msg.event)
	case runRefreshedMsg:
		if msg.err == nil && msg.state != nil {
			m.state = msg.state
			m.refreshPanels()
		}
		return m, nil
	}

	if m.showSpeciesModal {
		return m.updateSpeciesModal(msg)
	}

	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	if m.activeEvent != nil {
		return m.updateEventModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.logViewport, vpCmd = m.logViewport.Update(msg)
		m.input, tiCmd = m.input.Update(msg)
		m.mapViewport, mvCmd = m.mapViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanels()
		m.ready = true
		m.refreshPanels()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			input := strings.TrimSpace(m.input.Value())
			if input == "" {
				return m, nil
			}
			m.input.Reset()
			m.appendLog("player", "> %s", input)
			return m.handleCommand(input)
		default:
			if msg.String() == "ctrl+y" {
				return m.copySeed()
			}
		}

	case moveDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLog("error", "Error: %v", msg.err)
		} else {
			m.state = msg.result.State
			node, _ := m.state.CurrentNode()
			m.appendLog("system", "The party arrives at %s.", node.ID)
			switch node.Type {
			case worldmap.NodeBattle:
				if msg.result.BattleQueued {
					m.appendLog("system", "Enemies close in! A resolver is fighting the battle. Type 'battle' to fight it yourself if nothing happens.")
				} else {
					m.appendLog("system", "Enemies close in! Type 'battle' to fight.")
				}
			case worldmap.NodeRest:
				m.appendLog("system", "The party rests and recovers some strength.")
			case worldmap.NodeEvent:
				if msg.result.Event != nil {
					m.activeEvent = msg.result.Event
					m.selectedChoice = 0
					m.selectedTarget = -1
					m.input.Blur()
				}
			case worldmap.NodeRecruit:
				m.appendLog("system", "A wild %s is willing to join. It will wait on the bench when there is room.", speciesDisplayName(node.SpeciesID))
				m.pending = append(m.pending, run.PendingInteraction{
					Effect: event.Effect{Type: event.EffectRecruit, SpeciesID: node.SpeciesID},
					NodeID: node.ID,
				})
				m.appendLog("system", "Type 'resolve %d' to recruit it, or 'skip %d' to walk on.", len(m.pending), len(m.pending))
			case worldmap.NodeCardRemoval:
				m.appendLog("system", "A quiet shrine offers to remove up to %d cards. ", node.MaxRemovals)
				m.pending = append(m.pending, run.PendingInteraction{
					Effect: event.Effect{Type: event.EffectRemoveCards, Amount: node.MaxRemovals},
					NodeID: node.ID,
				})
				m.appendLog("system", "Type 'resolve %d <member#> <card#...>' to use it.", len(m.pending))
			case worldmap.NodeActTransition:
				m.appendLog("system", "The way out of this act lies open. Type 'advance' to take it.")
			}
		}
		m.refreshPanels()

	case advanceDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLog("error", "Error: %v", msg.err)
		} else {
			m.state = msg.state
			if m.state.Status == run.StatusVictorious {
				m.appendLog("notice", "The final act is behind you. VICTORY!")
			} else {
				m.appendLog("system", "The party pushes on into act %d.", m.state.CurrentAct)
			}
		}
		m.refreshPanels()

	case eventChoiceDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLog("error", "Error: %v", msg.err)
		} else {
			m.state = msg.result.State
			if msg.result.Result.Flavor != "" {
				m.appendLog("flavor", "%s", msg.result.Result.Flavor)
			}
			for _, eff := range msg.result.Result.Applied {
				m.appendLog("system", "%s", describeEffect(eff))
			}
			if len(msg.result.Result.Pending) > 0 {
				m.pending = append(m.pending, msg.result.Result.Pending...)
				m.appendLog("notice", "%d interaction(s) await your decision. Type 'pending' to see them.", len(msg.result.Result.Pending))
			}
		}
		m.refreshPanels()

	case battleDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLog("error", "Error: %v", msg.err)
		} else {
			m.state = msg.outcome.State
			if msg.outcome.Result != nil && msg.outcome.Result.Victory {
				m.appendLog("system", "Victory! The party earns %d gold.", msg.outcome.Gold)
			} else {
				m.appendLog("error", "The battle is lost.")
			}
			if m.state.Status == run.StatusDefeated {
				m.appendLog("error", "The whole party has fallen. The run is over.")
			}
		}
		m.refreshPanels()

	case actionDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLog("error", "Error: %v", msg.err)
		} else {
			m.state = msg.state
			if msg.note != "" {
				m.appendLog("system", "%s", msg.note)
			}
		}
		m.refreshPanels()

	case interactDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLog("error", "Error: %v", msg.err)
		} else {
			if msg.state != nil {
				m.state = msg.state
			}
			if msg.skipped {
				m.appendLog("system", "You walk away.")
			} else {
				m.appendLog("system", "Done.")
			}
			if msg.pendingIdx >= 0 && msg.pendingIdx < len(m.pending) {
				m.pending = append(m.pending[:msg.pendingIdx], m.pending[msg.pendingIdx+1:]...)
			}
		}
		m.refreshPanels()

	case pendingLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLog("error", "Error: %v", msg.err)
		} else {
			m.pending = append(m.pending, msg.pending...)
			m.listPending()
		}
		m.refreshPanels()

	case journalLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLog("error", "Error: %v", msg.err)
		} else {
			m.appendLog("system", "The journal so far:")
			for _, entry := range msg.entries {
				m.appendLog("journal", "  [%s] %s", entry.Kind, entry.Text)
			}
		}
		m.refreshPanels()

	case abandonedMsg:
		if msg.err != nil {
			m.loading = false
			m.appendLog("error", "Error: %v", msg.err)
			m.refreshPanels()
			return m, nil
		}
		m.stopSSE()
		return m, tea.Quit

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeLogContent()
			return m, progressTick()
		}
	}

	// Update components for non-mouse events
	m.input, tiCmd = m.input.Update(msg)
	m.logViewport, vpCmd = m.logViewport.Update(msg)
	m.mapViewport, mvCmd = m.mapViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *ConsoleUI) resizePanels() {
	logWidth := int(float64(m.width)*0.70) - 4
	metaWidth := m.width - logWidth - 6

	m.logViewport.Width = logWidth - 2
	m.logViewport.Height = m.height - 7
	m.mapViewport.Width = metaWidth - 2
	m.mapViewport.Height = m.height - 4
	m.input.Width = logWidth - 8
}

func (m *ConsoleUI) refreshPanels() {
	if !m.ready {
		return
	}
	m.writeLogContent()
	if m.state != nil {
		m.mapViewport.SetContent(writeMetadata(m.state, m.pending, m.notice))
	}
}

// copySeed puts the run seed on the system clipboard so it can be shared
// or replayed.
func (m ConsoleUI) copySeed() (tea.Model, tea.Cmd) {
	if m.state == nil {
		return m, nil
	}
	if err := clipboard.WriteAll(strconv.FormatInt(m.state.Seed, 10)); err != nil {
		m.notice = "Clipboard unavailable"
	} else {
		m.notice = fmt.Sprintf("Seed %d copied", m.state.Seed)
	}
	m.refreshPanels()
	return m, nil
}

func (m *ConsoleUI) stopSSE() {
	if m.sseCancel != nil {
		m.sseCancel()
		m.sseCancel = nil
	}
}

// handleSSE reacts to one server-sent event and re-arms the stream wait.
func (m ConsoleUI) handleSSE(ev SSEEvent) (tea.Model, tea.Cmd) {
	rearm := waitForSSE(m.sseChan)
	switch ev.Type {
	case "battle.processing":
		m.appendLog("system", "Steel rings out in the distance...")
		m.refreshPanels()
		return m, rearm
	case "battle.completed":
		m.appendLog("system", "The dust settles.")
		m.refreshPanels()
		return m, tea.Batch(m.refreshRun(), rearm)
	case "battle.failed":
		m.appendLog("error", "The battle resolver failed. Type 'battle' to fight it here instead.")
		m.refreshPanels()
		return m, rearm
	case "run.updated":
		if m.loading {
			// Our own request is in flight; its response carries the state.
			return m, rearm
		}
		return m, tea.Batch(m.refreshRun(), rearm)
	default:
		return m, rearm
	}
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "help":
		m.appendLog("system", helpText)
		m.refreshPanels()
		return m, nil

	case "map":
		m.describeMap()
		m.refreshPanels()
		return m, nil

	case "seed":
		m.appendLog("system", "This run grows from seed %d.", m.state.Seed)
		m.refreshPanels()
		return m, nil

	case "move":
		if len(args) != 1 {
			return m.commandError("Usage: move <node-id>")
		}
		return m.startRequest(m.doMove(args[0]))

	case "battle":
		return m.startRequest(m.doBattle())

	case "advance":
		return m.startRequest(m.doAdvance())

	case "event":
		node, ok := m.state.CurrentNode()
		if !ok || node.Type != worldmap.NodeEvent || node.Resolved {
			return m.commandError("There is no unresolved event here.")
		}
		if def, ok := content.EventByID(node.EventID); ok {
			m.activeEvent = &def
			m.selectedChoice = 0
			m.selectedTarget = -1
			m.input.Blur()
		}
		return m, nil

	case "level":
		idx, ok := parseIndex(args, 0, len(m.state.Party))
		if !ok {
			return m.commandError("Usage: level <party#>")
		}
		return m.startRequest(m.doLevelUp(idx))

	case "swap":
		p, ok1 := parseIndex(args, 0, len(m.state.Party))
		b, ok2 := parseIndex(args, 1, len(m.state.Bench))
		if !ok1 || !ok2 {
			return m.commandError("Usage: swap <party#> <bench#>")
		}
		return m.startRequest(m.doParty(PartyActionRequest{Action: "swap", PartyIndex: p, BenchIndex: b}, "The two trade places."))

	case "promote":
		b, ok := parseIndex(args, 0, len(m.state.Bench))
		if !ok || len(args) != 3 {
			return m.commandError("Usage: promote <bench#> <front|back> <col>")
		}
		col, err := strconv.Atoi(args[2])
		row := roster.Row(args[1])
		if err != nil || (row != roster.RowFront && row != roster.RowBack) {
			return m.commandError("Usage: promote <bench#> <front|back> <col>")
		}
		pos := roster.GridPosition{Row: row, Col: col}
		return m.startRequest(m.doParty(PartyActionRequest{Action: "promote", BenchIndex: b, Position: &pos}, "A bench member steps up."))

	case "demote":
		p, ok := parseIndex(args, 0, len(m.state.Party))
		if !ok {
			return m.commandError("Usage: demote <party#>")
		}
		return m.startRequest(m.doParty(PartyActionRequest{Action: "demote", PartyIndex: p}, "A party member falls back to the bench."))

	case "arrange":
		positions, err := parsePositions(args)
		if err != nil {
			return m.commandError("Usage: arrange <pos...> e.g. arrange f0 f1 f2 b1")
		}
		return m.startRequest(m.doParty(PartyActionRequest{Action: "rearrange", Positions: positions}, "The party changes formation."))

	case "revive":
		g, ok := parseIndex(args, 0, len(m.state.Graveyard))
		if !ok {
			return m.commandError("Usage: revive <graveyard#> [fraction]")
		}
		fraction := 0.0
		if len(args) > 1 {
			fraction, _ = strconv.ParseFloat(args[1], 64)
		}
		return m.startRequest(m.doParty(PartyActionRequest{Action: "revive", GraveyardIndex: g, Fraction: fraction}, "A fallen friend returns, scarred."))

	case "pending":
		if len(m.pending) > 0 {
			m.listPending()
			m.refreshPanels()
			return m, nil
		}
		return m.startRequest(m.doPending())

	case "resolve":
		idx, ok := parseIndex(args, 0, len(m.pending))
		if !ok {
			return m.commandError("Usage: resolve <n> [picks...] — see 'pending'")
		}
		return m.startRequest(m.doInteract(idx, args[1:], false))

	case "skip":
		idx, ok := parseIndex(args, 0, len(m.pending))
		if !ok {
			return m.commandError("Usage: skip <n>")
		}
		return m.startRequest(m.doInteract(idx, nil, true))

	case "journal":
		return m.startRequest(m.doJournal())

	case "abandon":
		return m.startRequest(m.doAbandon())

	default:
		return m.commandError("Unknown command %q. Type 'help' for the list.", cmd)
	}
}

const helpText = `Commands:
  map                          paths from the current node
  move <node>                  travel along a path
  battle                       fight the battle at this node now
  advance                      take the act transition
  event                        reopen the event at this node
  level <party#>               spend EXP to level a member
  swap <party#> <bench#>       trade a party member for a bench member
  promote <bench#> <row> <col> bring a bench member into the party
  demote <party#>              send a party member to the bench
  arrange <pos...>             reposition the party (f0 f1 b1 ...)
  revive <grave#> [fraction]   bring a member back from the graveyard
  pending                      list interactions waiting on you
  resolve <n> [picks...]       realize a pending interaction
  skip <n>                     discard a pending interaction
  journal                      show the run journal
  seed                         show the run seed
  abandon                      abandon the run and quit
  Ctrl+Y copies the seed, Ctrl+C quits`

func (m ConsoleUI) commandError(format string, args ...interface{}) (tea.Model, tea.Cmd) {
	m.appendLog("error", format, args...)
	m.refreshPanels()
	return m, nil
}

func (m ConsoleUI) startRequest(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.loading = true
	m.progressTick = 0
	m.refreshPanels()
	return m, tea.Batch(cmd, progressTick())
}

// parseIndex reads args[pos] as a 1-based index and converts it to a
// 0-based one, rejecting anything outside [1, limit].
func parseIndex(args []string, pos, limit int) (int, bool) {
	if pos >= len(args) {
		return 0, false
	}
	n, err := strconv.Atoi(args[pos])
	if err != nil || n < 1 || n > limit {
		return 0, false
	}
	return n - 1, true
}

func parsePositions(args []string) ([]roster.GridPosition, error) {
	var positions []roster.GridPosition
	for _, a := range args {
		a = strings.ToLower(a)
		if len(a) != 2 {
			return nil, fmt.Errorf("bad position %q", a)
		}
		var row roster.Row
		switch a[0] {
		case 'f':
			row = roster.RowFront
		case 'b':
			row = roster.RowBack
		default:
			return nil, fmt.Errorf("bad position %q", a)
		}
		col, err := strconv.Atoi(a[1:])
		if err != nil {
			return nil, fmt.Errorf("bad position %q", a)
		}
		positions = append(positions, roster.GridPosition{Row: row, Col: col})
	}
	return positions, nil
}

func (m *ConsoleUI) describeMap() {
	node, ok := m.state.CurrentNode()
	if !ok {
		m.appendLog("error", "The party is nowhere at all.")
		return
	}
	m.appendLog("system", "You stand at %s (%s).", node.ID, nodeLabel(node))
	if len(node.ConnectsTo) == 0 {
		m.appendLog("system", "No paths lead onward.")
		return
	}
	m.appendLog("system", "Paths lead to:")
	for _, id := range node.ConnectsTo {
		next, ok := m.state.Nodes[id]
		if !ok {
			continue
		}
		m.appendLog("system", "  → %s (%s)", id, nodeLabel(next))
	}
}

func nodeLabel(n worldmap.Node) string {
	switch n.Type {
	case worldmap.NodeBattle:
		if n.IsBoss() {
			return "boss battle"
		}
		return "battle"
	case worldmap.NodeActTransition:
		return fmt.Sprintf("gate to act %d", n.TargetAct)
	default:
		return string(n.Type)
	}
}

func (m *ConsoleUI) listPending() {
	if len(m.pending) == 0 {
		m.appendLog("system", "Nothing awaits your decision.")
		return
	}
	m.appendLog("system", "Waiting on you:")
	for i, p := range m.pending {
		m.appendLog("system", "  %d. %s", i+1, describePending(p))
	}
	m.appendLog("system", "Type 'resolve <n> [picks...]' or 'skip <n>'.")
}

func describePending(p run.PendingInteraction) string {
	switch p.Effect.Type {
	case event.EffectRemoveCards:
		return fmt.Sprintf("remove up to %d cards (resolve with card numbers)", p.Effect.Amount)
	case event.EffectEpicDraft:
		return fmt.Sprintf("draft %d epic card(s) from: %s", p.Effect.Amount, cardOffer(content.EpicPool()))
	case event.EffectShopDraft:
		return fmt.Sprintf("buy up to %d card(s) from: %s", p.Effect.Amount, cardOffer(content.ShopPool()))
	case event.EffectCloneCard:
		return "clone one card (resolve with its card number)"
	case event.EffectRecruit:
		return fmt.Sprintf("recruit a wild %s", speciesDisplayName(p.Effect.SpeciesID))
	default:
		return string(p.Effect.Type)
	}
}

func cardOffer(pool []string) string {
	parts := make([]string, 0, len(pool))
	for _, id := range pool {
		if c, ok := content.CardByID(id); ok && c.Cost > 0 {
			parts = append(parts, fmt.Sprintf("%s (%dg)", id, c.Cost))
		} else {
			parts = append(parts, id)
		}
	}
	return strings.Join(parts, ", ")
}

func speciesDisplayName(speciesID string) string {
	if s, ok := content.SpeciesByID(speciesID); ok {
		return s.Name
	}
	return speciesID
}

func describeEffect(eff event.Effect) string {
	switch eff.Type {
	case event.EffectGold:
		return fmt.Sprintf("The party gains %d gold.", eff.Amount)
	case event.EffectMaxHPBoost:
		return fmt.Sprintf("Max HP rises by %d.", eff.Amount)
	case event.EffectDamage:
		return fmt.Sprintf("The party takes %d damage.", eff.Amount)
	case event.EffectPercentHeal:
		return fmt.Sprintf("Wounds close for %.0f%% of max HP.", eff.Percent*100)
	case event.EffectFullHeal:
		return "All wounds close completely."
	case event.EffectExp:
		return fmt.Sprintf("%d EXP is earned.", eff.Amount)
	case event.EffectEnergyMod:
		return fmt.Sprintf("Energy shifts by %+d.", eff.Amount)
	case event.EffectDrawMod:
		return fmt.Sprintf("Card draw shifts by %+d.", eff.Amount)
	case event.EffectDazed:
		return fmt.Sprintf("%d Dazed card(s) slip into a deck.", eff.Amount)
	case event.EffectSetPath:
		return "The paths ahead shift and rearrange."
	default:
		return string(eff.Type)
	}
}

// Commands that call the API.

func (m ConsoleUI) doMove(nodeID string) tea.Cmd {
	return func() tea.Msg {
		result, err := postMove(m.client, m.config.APIBaseURL, m.state.ID, nodeID)
		return moveDoneMsg{result, err}
	}
}

func (m ConsoleUI) doBattle() tea.Cmd {
	return func() tea.Msg {
		outcome, err := postBattleSync(m.client, m.config.APIBaseURL, m.state.ID)
		return battleDoneMsg{outcome, err}
	}
}

func (m ConsoleUI) doAdvance() tea.Cmd {
	return func() tea.Msg {
		state, err := postAdvance(m.client, m.config.APIBaseURL, m.state.ID)
		return advanceDoneMsg{state, err}
	}
}

func (m ConsoleUI) doEventChoice(choice, target int) tea.Cmd {
	return func() tea.Msg {
		result, err := postEventChoice(m.client, m.config.APIBaseURL, m.state.ID, choice, target)
		return eventChoiceDoneMsg{result, err}
	}
}

func (m ConsoleUI) doLevelUp(idx int) tea.Cmd {
	return func() tea.Msg {
		state, err := postLevelUp(m.client, m.config.APIBaseURL, m.state.ID, idx)
		if err != nil {
			return actionDoneMsg{nil, "", err}
		}
		member := state.Party[idx]
		note := fmt.Sprintf("%s reaches level %d.", displayName(member.CurrentFormID), member.Level)
		return actionDoneMsg{state, note, nil}
	}
}

func (m ConsoleUI) doParty(req PartyActionRequest, note string) tea.Cmd {
	return func() tea.Msg {
		state, err := postPartyAction(m.client, m.config.APIBaseURL, m.state.ID, req)
		return actionDoneMsg{state, note, err}
	}
}

func (m ConsoleUI) doPending() tea.Cmd {
	return func() tea.Msg {
		pending, err := getPending(m.client, m.config.APIBaseURL, m.state.ID)
		return pendingLoadedMsg{pending, err}
	}
}

// doInteract realizes or skips pending interaction idx. Numeric picks
// become deck indices (1-based in the UI), anything else is a card id.
func (m ConsoleUI) doInteract(idx int, picks []string, skip bool) tea.Cmd {
	p := m.pending[idx]
	req := InteractRequest{Action: "resolve", Interaction: &p}
	if skip {
		req.Action = "skip"
	}
	for _, a := range picks {
		if n, err := strconv.Atoi(a); err == nil {
			req.DeckIndices = append(req.DeckIndices, n-1)
		} else {
			req.CardIDs = append(req.CardIDs, a)
		}
	}
	// Card-removal shrines take the member first: resolve <n> <member#> <card#...>
	if p.Effect.Type == event.EffectRemoveCards && p.NodeID != "" && len(req.DeckIndices) > 0 {
		target := req.DeckIndices[0]
		req.TargetIndex = &target
		req.DeckIndices = req.DeckIndices[1:]
	}
	return func() tea.Msg {
		state, err := postInteract(m.client, m.config.APIBaseURL, m.state.ID, req)
		return interactDoneMsg{state: state, pendingIdx: idx, skipped: skip, err: err}
	}
}

func (m ConsoleUI) doJournal() tea.Cmd {
	return func() tea.Msg {
		entries, err := getJournal(m.client, m.config.APIBaseURL, m.state.ID)
		return journalLoadedMsg{entries, err}
	}
}

func (m ConsoleUI) doAbandon() tea.Cmd {
	return func() tea.Msg {
		err := deleteRun(m.client, m.config.APIBaseURL, m.state.ID)
		return abandonedMsg{err}
	}
}

func (m ConsoleUI) refreshRun() tea.Cmd {
	return func() tea.Msg {
		state, err := getRun(m.client, m.config.APIBaseURL, m.state.ID)
		return runRefreshedMsg{state, err}
	}
}

func (m ConsoleUI) loadSpecies() tea.Cmd {
	return func() tea.Msg {
		species, err := listSpecies(m.client, m.config.APIBaseURL)
		return speciesLoadedMsg{species, err}
	}
}

func (m ConsoleUI) createRunFromPicks() tea.Cmd {
	picks := make([]string, 0, len(m.pickedSpecies))
	// Preserve list order, not map order.
	for _, s := range m.species {
		if m.pickedSpecies[s.ID] {
			picks = append(picks, s.ID)
		}
	}
	return func() tea.Msg {
		state, err := createRun(m.client, m.config.APIBaseURL, picks, 0)
		return runCreatedMsg{state, err}
	}
}

// waitForSSE blocks on the event stream channel and hands the next event
// to Update.
func waitForSSE(ch chan SSEEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return sseEventMsg{event: ev}
	}
}

func (m ConsoleUI) updateSpeciesModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case speciesLoadedMsg:
		m.loadingSpecies = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			// Only starter lines may begin a run.
			starters := make(map[string]bool)
			for _, id := range content.StarterSpeciesIDs() {
				starters[id] = true
			}
			for _, s := range msg.species {
				if starters[s.ID] {
					m.species = append(m.species, s)
				}
			}
		}

	case runCreatedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.state = msg.state
			m.showSpeciesModal = false
			if m.width > 0 && m.height > 0 {
				m.resizePanels()
			}
			m.appendLog("system", "A new run begins (seed %d). The party gathers at %s.", m.state.Seed, m.state.CurrentNodeID)
			m.describeMap()
			m.ready = true
			m.refreshPanels()
			m.input.Focus()

			// Follow live updates for this run.
			ctx, cancel := context.WithCancel(context.Background())
			m.sseCancel = cancel
			m.sseChan = make(chan SSEEvent, 16)
			go func() {
				_ = listenToSSE(ctx, m.sseClient, m.config.APIBaseURL, m.state.ID, m.sseChan)
			}()
			return m, tea.Batch(textinput.Blink, waitForSSE(m.sseChan))
		}
		return m, textinput.Blink

	case tea.KeyMsg:
		if m.loadingSpecies || m.loading {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}

		if m.err != nil {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyUp:
			if m.selectedSpecies > 0 {
				m.selectedSpecies--
			}
		case tea.KeyDown:
			if m.selectedSpecies < len(m.species)-1 {
				m.selectedSpecies++
			}
		case tea.KeySpace:
			if len(m.species) > 0 {
				id := m.species[m.selectedSpecies].ID
				if m.pickedSpecies[id] {
					delete(m.pickedSpecies, id)
				} else if len(m.pickedSpecies) < run.MaxPartySize {
					m.pickedSpecies[id] = true
				}
			}
		case tea.KeyEnter:
			if len(m.pickedSpecies) > 0 {
				m.loading = true
				return m, m.createRunFromPicks()
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) updateEventModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case eventChoiceDoneMsg:
		m.loading = false
		m.activeEvent = nil
		m.input.Focus()
		if msg.err != nil {
			m.appendLog("error", "Error: %v", msg.err)
		} else {
			m.state = msg.result.State
			if msg.result.Result.Flavor != "" {
				m.appendLog("flavor", "%s", msg.result.Result.Flavor)
			}
			for _, eff := range msg.result.Result.Applied {
				m.appendLog("system", "%s", describeEffect(eff))
			}
			if len(msg.result.Result.Pending) > 0 {
				m.pending = append(m.pending, msg.result.Result.Pending...)
				m.appendLog("notice", "%d interaction(s) await your decision. Type 'pending' to see them.", len(msg.result.Result.Pending))
			}
		}
		m.refreshPanels()
		return m, textinput.Blink

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyCtrlC:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEsc:
			// Step back without choosing; 'event' reopens it.
			m.activeEvent = nil
			m.input.Focus()
			m.appendLog("system", "You hold off for now. Type 'event' to face it again.")
			m.refreshPanels()
			return m, textinput.Blink
		case tea.KeyUp:
			if m.selectedChoice > 0 {
				m.selectedChoice--
			}
		case tea.KeyDown:
			if m.selectedChoice < len(m.activeEvent.Choices)-1 {
				m.selectedChoice++
			}
		case tea.KeyTab:
			// Cycle the member single-target effects land on; -1 lets
			// the engine pick the first standing member.
			m.selectedTarget++
			if m.selectedTarget >= len(m.state.Party) {
				m.selectedTarget = -1
			}
		case tea.KeyEnter:
			m.loading = true
			m.progressTick = 0
			return m, tea.Batch(m.doEventChoice(m.selectedChoice, m.selectedTarget), progressTick())
		}
	}

	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.stopSSE()
			return m, tea.Quit
		case tea.KeyEnter:
			m.stopSSE()
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				m.stopSSE()
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if m.showSpeciesModal || m.activeEvent != nil {
					return m, nil
				}
				m.input.Focus()
				return m, textinput.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Leave the Run?"))
	content.WriteString("\n\n")
	content.WriteString("The run stays saved; 'abandon' ends it for good.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to keep playing, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderSpeciesModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	if m.loadingSpecies {
		content.WriteString(modalTitleStyle.Render("Loading Species..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Please wait while we fetch the species catalog..."))
	} else if m.err != nil {
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(fmt.Sprintf("Failed to start: %v", m.err)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	} else if m.loading {
		content.WriteString(modalTitleStyle.Render("Starting the Run..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("The party gathers at the trailhead..."))
	} else {
		content.WriteString(modalTitleStyle.Render("Choose Your Starters"))
		content.WriteString("\n\n")

		for i, s := range m.species {
			mark := "[ ]"
			if m.pickedSpecies[s.ID] {
				mark = "[x]"
			}
			line := fmt.Sprintf("%s %s — %d HP", mark, s.Name, s.BaseForm().BaseMaxHP)
			if i == m.selectedSpecies {
				content.WriteString(modalSelectedItemStyle.Render("▶ " + line))
			} else {
				content.WriteString(modalItemStyle.Render("  " + line))
			}
			content.WriteString("\n")
		}

		content.WriteString("\n")
		content.WriteString(promptStyle.Render(fmt.Sprintf("↑/↓ to navigate, Space to pick (up to %d), Enter to set out", run.MaxPartySize)))
	}

	modal := modalStyle.Width(60).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderEventModal() string {
	if m.width == 0 || m.height == 0 || m.activeEvent == nil {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render(m.activeEvent.Title))
	content.WriteString("\n\n")
	content.WriteString(wordwrap.String(m.activeEvent.Prompt, 56))
	content.WriteString("\n\n")

	if m.loading {
		content.WriteString(loadingStyle.Render("The moment hangs in the air..."))
	} else {
		for i, c := range m.activeEvent.Choices {
			if i == m.selectedChoice {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", c.Label)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", c.Label)))
			}
			content.WriteString("\n")
		}

		content.WriteString("\n")
		target := "first standing member"
		if m.selectedTarget >= 0 && m.selectedTarget < len(m.state.Party) {
			target = displayName(m.state.Party[m.selectedTarget].CurrentFormID)
		}
		content.WriteString(promptStyle.Render(fmt.Sprintf("Target: %s (Tab to change)", target)))
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("↑/↓ to choose, Enter to commit, Esc to step back"))
	}

	modal := modalStyle.Width(60).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showSpeciesModal {
		return m.renderSpeciesModal()
	}

	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if m.activeEvent != nil {
		return m.renderEventModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	logWidth := int(float64(m.width)*0.70) - 4
	metaWidth := m.width - logWidth - 6

	logPanel := logPanelStyle.Width(logWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.logViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(logWidth-4, 10))),
			m.input.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.mapViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, logPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.logViewport.Width - 6
	if usable <= 0 {
		usable = 30 // fallback before sizing
	}

	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓") // Blinking effect at the progress point
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
