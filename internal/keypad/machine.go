// Package keypad: конечный автомат клавиатурного калькулятора.
//
// Автомат хранит введённый операнд, операнд и оператор отложенной операции и флаг
// "начать ввод заново". Он ничего не знает об интерфейсе: ввод приходит вызовами
// методов, вывод уходит в Display, а об ошибке деления на ноль сообщается в Alerter.
// Автомат не потокобезопасен, у него один владелец.
package keypad

import (
	"errors"
	"strings"

	"keycalc/internal/domain"
)

// MaxOperandLength: предел длины вводимого операнда; дальнейшие цифры и точка игнорируются.
// Не меньше длины записи любого float64 через FormatNumber.
const MaxOperandLength = 512

// Machine: состояние калькулятора и операции над ним.
type Machine struct {
	current string
	pending string
	op      domain.Operator
	reset   bool

	display  Display
	alerter  Alerter
	recorder Recorder
}

// Option настраивает Machine.
type Option func(*Machine)

// WithDisplay задаёт приёмник дисплея.
func WithDisplay(d Display) Option {
	return func(m *Machine) { m.display = d }
}

// WithAlerter задаёт приёмник уведомлений об ошибке.
func WithAlerter(a Alerter) Option {
	return func(m *Machine) { m.alerter = a }
}

// WithRecorder задаёт получателя выполненных вычислений.
func WithRecorder(r Recorder) Option {
	return func(m *Machine) { m.recorder = r }
}

// New создаёт автомат в начальном состоянии и сразу показывает "0" на дисплее.
func New(opts ...Option) *Machine {
	m := &Machine{current: "0"}
	for _, opt := range opts {
		opt(m)
	}
	m.render()
	return m
}

// Display возвращает текст дисплея.
func (m *Machine) Display() string {
	return m.current
}

// State возвращает снимок состояния.
func (m *Machine) State() domain.State {
	return domain.State{
		Current:          m.current,
		Pending:          m.pending,
		Operator:         m.op,
		ResetOnNextInput: m.reset,
	}
}

// Press выполняет операцию, соответствующую клавише.
func (m *Machine) Press(k domain.Key) {
	switch k.Kind {
	case domain.KeyDigit:
		m.EnterDigit(k.Digit)
	case domain.KeyDecimal:
		m.EnterDecimalPoint()
	case domain.KeyOperator:
		m.ChooseOperator(k.Operator)
	case domain.KeyEvaluate:
		m.Evaluate()
	case domain.KeyClear:
		m.Clear()
	}
}

// EnterDigit дописывает цифру d ('0'..'9'). Ведущий "0" заменяется, сверх MaxOperandLength ввод игнорируется.
func (m *Machine) EnterDigit(d byte) {
	defer m.render()
	if d < '0' || d > '9' {
		return
	}
	switch {
	case m.reset:
		m.current = string(d)
		m.reset = false
	case m.current == "0":
		m.current = string(d)
	case len(m.current) >= MaxOperandLength:
		return
	default:
		m.current += string(d)
	}
}

// EnterDecimalPoint ставит десятичную точку; вторая точка в операнде игнорируется.
func (m *Machine) EnterDecimalPoint() {
	defer m.render()
	switch {
	case m.reset:
		m.current = "0."
		m.reset = false
	case strings.Contains(m.current, "."), len(m.current) >= MaxOperandLength:
		return
	default:
		m.current += "."
	}
}

// ChooseOperator запоминает операнд и оператор. Если операция уже отложена,
// она сначала вычисляется: цепочка 3 + 4 * 2 считается слева направо.
// Пока ничего не введено, вызов игнорируется; неизвестный оператор тоже.
func (m *Machine) ChooseOperator(op domain.Operator) {
	defer m.render()
	if !op.Valid() {
		return
	}
	if (m.current == "" || m.current == "0") && m.pending == "" {
		return
	}
	if m.pending != "" {
		m.Evaluate()
	}
	m.pending = m.current
	m.op = op
	m.reset = true
}

// Evaluate вычисляет отложенную операцию. Без второго операнда повторяет первый (5 * = 25).
// При делении на ноль уведомляет Alerter и сбрасывает состояние.
func (m *Machine) Evaluate() {
	defer m.render()
	if m.pending == "" || m.op == domain.OpNone {
		return
	}

	left, _ := domain.ParseNumber(m.pending)
	right, ok := domain.ParseNumber(m.current)
	if !ok {
		right = left
	}

	result, err := m.op.Apply(left, right)
	if err != nil {
		if errors.Is(err, domain.ErrDivisionByZero) && m.alerter != nil {
			m.alerter.Alert(domain.DivisionByZeroMessage)
		}
		m.Clear()
		return
	}

	if m.recorder != nil {
		m.recorder.Record(domain.Operation{
			Number1:   left,
			Number2:   right,
			Operation: m.op.String(),
			Result:    result,
		})
	}

	m.current = domain.FormatNumber(result)
	m.op = domain.OpNone
	m.pending = ""
	m.reset = true
}

// Clear возвращает автомат в начальное состояние.
func (m *Machine) Clear() {
	m.current = "0"
	m.pending = ""
	m.op = domain.OpNone
	m.reset = false
	m.render()
}

func (m *Machine) render() {
	if m.display != nil {
		m.display.Show(m.current)
	}
}
