package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	assistant "github.com/jayviklabs/jarvis-core/core"
	"github.com/jayviklabs/jarvis-core/core/audio/miniaudio"
	"github.com/jayviklabs/jarvis-core/core/commands"
)

type (
	responseSegmentMsg struct{ snapshot string }
	responseEndMsg     struct{ content string }
	transcriptMsg      struct{ transcript string }
	listeningMsg       struct{ listening bool }
	speakingMsg        struct{ speaking bool }
	commandResultMsg   struct{ content string }
	noticeMsg          struct{ title, description string }
	sendFailedMsg      struct{ err error }
	historyClearedMsg  struct{}
)

type chatLine struct {
	role    assistant.Role
	content string
}

type styles struct {
	user      lipgloss.Style
	assistant lipgloss.Style
	notice    lipgloss.Style
	status    lipgloss.Style
	indicator lipgloss.Style
}

func newStyles() styles {
	return styles{
		user:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		assistant: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		notice:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		status:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		indicator: lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	}
}

type model struct {
	ctx         context.Context
	assistant   *assistant.Assistant
	audioClient *miniaudio.Client

	viewport viewport.Model
	input    textinput.Model
	styles   styles

	lines     []chatLine
	inflight  string
	streaming bool
	listening bool
	speaking  bool
	status    string

	width  int
	height int
	ready  bool
}

func newModel(ctx context.Context, a *assistant.Assistant, audioClient *miniaudio.Client) model {
	input := textinput.New()
	input.Placeholder = "Ask JARVIS anything, or /calc /wiki /weather ..."
	input.Focus()

	m := model{
		ctx:         ctx,
		assistant:   a,
		audioClient: audioClient,
		viewport:    viewport.New(0, 0),
		input:       input,
		styles:      newStyles(),
		status:      "ready",
	}

	for _, turn := range a.Conversation() {
		m.lines = append(m.lines, chatLine{role: turn.Role, content: turn.Content})
	}
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 3
		m.input.Width = msg.Width - 4
		m.ready = true
		m.renderConversation()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+l":
			cmds = append(cmds, m.toggleListeningCmd())
		case "ctrl+s":
			m.assistant.StopSpeaking()
		case "ctrl+k":
			cmds = append(cmds, m.clearHistoryCmd())
		case "enter":
			if cmd := m.submit(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}

	case responseSegmentMsg:
		m.streaming = true
		m.inflight = msg.snapshot
		m.renderConversation()

	case responseEndMsg:
		m.streaming = false
		m.inflight = ""
		// An empty-stream response leaves no turn behind, only the reset.
		if msg.content != "" {
			m.lines = append(m.lines, chatLine{role: assistant.RoleAssistant, content: msg.content})
		}
		m.status = "ready"
		m.renderConversation()

	case sendFailedMsg:
		m.streaming = false
		// A partial response stays on screen even though it was never
		// persisted.
		if m.inflight != "" {
			m.lines = append(m.lines, chatLine{role: assistant.RoleAssistant, content: m.inflight})
			m.inflight = ""
		}
		m.status = msg.err.Error()
		m.renderConversation()

	case transcriptMsg:
		m.lines = append(m.lines, chatLine{role: assistant.RoleUser, content: msg.transcript})
		m.status = "thinking..."
		m.renderConversation()

	case listeningMsg:
		m.listening = msg.listening
		if m.audioClient != nil {
			if msg.listening {
				_ = m.audioClient.StartCapture(m.ctx, captureForwarder(m.assistant))
			} else {
				_ = m.audioClient.StopCapture()
			}
		}

	case speakingMsg:
		m.speaking = msg.speaking
		if !msg.speaking && m.audioClient != nil {
			m.audioClient.FlushPlayback()
		}

	case commandResultMsg:
		m.lines = append(m.lines, chatLine{role: assistant.RoleAssistant, content: msg.content})
		m.status = "ready"
		m.renderConversation()

	case noticeMsg:
		m.status = msg.title + ": " + msg.description

	case historyClearedMsg:
		m.lines = nil
		m.inflight = ""
		m.status = "history cleared"
		m.renderConversation()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit routes the input line: /calc, /wiki and /weather run as commands,
// everything else streams through the assistant. Input is ignored while a
// response is streaming.
func (m *model) submit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.streaming {
		return nil
	}
	m.input.Reset()

	if kind, input, ok := parseCommand(text); ok {
		m.status = "running " + string(kind) + "..."
		return m.runCommandCmd(kind, input)
	}

	m.lines = append(m.lines, chatLine{role: assistant.RoleUser, content: text})
	m.streaming = true
	m.status = "thinking..."
	m.renderConversation()
	return m.sendCmd(text)
}

func parseCommand(text string) (commands.Kind, string, bool) {
	prefixes := map[string]commands.Kind{
		"/calc":    commands.KindCalculate,
		"/wiki":    commands.KindWikipedia,
		"/weather": commands.KindWeather,
	}
	for prefix, kind := range prefixes {
		if text == prefix {
			return kind, "", true
		}
		if rest, ok := strings.CutPrefix(text, prefix+" "); ok {
			return kind, strings.TrimSpace(rest), true
		}
	}
	return "", "", false
}

// captureForwarder adapts captured microphone audio to the assistant. A
// forwarding failure is not worth stopping the capture device over.
func captureForwarder(a *assistant.Assistant) func(audio []byte) {
	return func(audio []byte) {
		if err := a.SendAudio(audio); err != nil {
			log.Println("Failed to forward captured audio:", err)
		}
	}
}

// sendCmd always produces a terminal msg: a failure, or a response end.
// A stream that produced content reports its end through the assistant's
// response-end callback instead, so only the empty-stream case resolves
// here.
func (m model) sendCmd(prompt string) tea.Cmd {
	return func() tea.Msg {
		turn, err := m.assistant.Send(m.ctx, prompt)
		if err != nil {
			return sendFailedMsg{err: err}
		}
		if turn == nil {
			return responseEndMsg{}
		}
		return nil
	}
}

func (m model) runCommandCmd(kind commands.Kind, input string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.assistant.RunCommand(m.ctx, kind, input); err != nil {
			return sendFailedMsg{err: err}
		}
		return nil
	}
}

func (m model) toggleListeningCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.assistant.ToggleListening(m.ctx); err != nil {
			return sendFailedMsg{err: err}
		}
		return nil
	}
}

func (m model) clearHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.assistant.ClearHistory(m.ctx); err != nil {
			return sendFailedMsg{err: err}
		}
		return historyClearedMsg{}
	}
}

func (m *model) renderConversation() {
	if !m.ready {
		return
	}

	var b strings.Builder
	for _, line := range m.lines {
		b.WriteString(m.renderLine(line))
		b.WriteString("\n\n")
	}
	if m.inflight != "" {
		b.WriteString(m.renderLine(chatLine{role: assistant.RoleAssistant, content: m.inflight}))
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m *model) renderLine(line chatLine) string {
	label := m.styles.assistant.Render("JARVIS")
	if line.role == assistant.RoleUser {
		label = m.styles.user.Render("You")
	}
	return label + "\n" + wordwrap.String(line.content, max(m.width-2, 20))
}

func (m model) View() string {
	if !m.ready {
		return "starting..."
	}

	indicators := []string{}
	if m.listening {
		indicators = append(indicators, m.styles.indicator.Render("● listening"))
	}
	if m.speaking {
		indicators = append(indicators, m.styles.indicator.Render("▶ speaking"))
	}
	statusLine := m.styles.status.Render(m.status)
	if len(indicators) > 0 {
		statusLine += "  " + strings.Join(indicators, "  ")
	}

	return fmt.Sprintf("%s\n%s\n%s", m.viewport.View(), m.input.View(), statusLine)
}
