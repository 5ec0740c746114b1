// Package tui: терминальный интерфейс клавиатурного калькулятора на bubbletea.
// Автомат живёт в модели; дисплей, уведомления и лента вычислений приходят через его порты.
package tui

import (
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"keycalc/internal/domain"
	"keycalc/internal/keypad"
)

// alertTimeout: сколько держится уведомление в строке статуса.
const alertTimeout = 3 * time.Second

// tapeSize: сколько последних вычислений показывать.
const tapeSize = 5

// clearAlertMsg снимает уведомление, если с тех пор не пришло новое.
type clearAlertMsg struct{ seq int }

// Model: модель bubbletea.
type Model struct {
	machine *keypad.Machine
	display string
	alert   string
	seq     int
	tape    []domain.Operation
	width   int
	pending tea.Cmd
}

// New собирает модель со свежим автоматом.
func New() *Model {
	m := &Model{}
	m.machine = keypad.New(
		keypad.WithDisplay(keypad.DisplayFunc(func(text string) { m.display = text })),
		keypad.WithAlerter(keypad.AlertFunc(m.showAlert)),
		keypad.WithRecorder(keypad.RecordFunc(func(op domain.Operation) {
			op.Timestamp = time.Now()
			m.tape = append(m.tape, op)
			if len(m.tape) > tapeSize {
				m.tape = m.tape[len(m.tape)-tapeSize:]
			}
		})),
	)
	return m
}

// showAlert выводит уведомление и планирует его снятие. Ввод не блокируется.
func (m *Model) showAlert(msg string) {
	m.alert = msg
	m.seq++
	seq := m.seq
	m.pending = tea.Tick(alertTimeout, func(time.Time) tea.Msg { return clearAlertMsg{seq: seq} })
}

// Init реализует tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update реализует tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case clearAlertMsg:
		if msg.seq == m.seq {
			m.alert = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var key domain.Key
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "enter":
		key = domain.KeyEqual
	case "esc":
		key = domain.KeyReset
	default:
		s := msg.String()
		r, size := utf8.DecodeRuneInString(s)
		if size != len(s) {
			return m, nil
		}
		k, err := domain.ParseKey(r)
		if err != nil {
			return m, nil
		}
		key = k
	}

	m.pending = nil
	m.machine.Press(key)
	return m, m.pending
}

// Display: текущий текст дисплея.
func (m *Model) Display() string {
	return m.display
}

// Alert: текущее уведомление (пусто, если нет).
func (m *Model) Alert() string {
	return m.alert
}
