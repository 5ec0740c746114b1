package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrUnknownOperation возвращается, когда операция не поддерживается.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrDivisionByZero: деление на ноль.
	ErrDivisionByZero = errors.New("division by zero")
)

// Operator: арифметический оператор калькулятора. Пустая строка значит, что оператор не выбран.
type Operator string

// Константы арифметических операций.
const (
	OpNone Operator = ""
	OpAdd  Operator = "+"
	OpSub  Operator = "-"
	OpMul  Operator = "*"
	OpDiv  Operator = "/"
)

// operatorAliases: допустимые написания операторов на входе (клавиши, запросы API).
var operatorAliases = map[string]Operator{
	"+":   OpAdd,
	"add": OpAdd,
	"-":   OpSub,
	"sub": OpSub,
	"*":   OpMul,
	"x":   OpMul,
	"×":   OpMul,
	"mul": OpMul,
	"/":   OpDiv,
	"÷":   OpDiv,
	"div": OpDiv,
}

// ParseOperator разбирает символ или имя оператора.
func ParseOperator(s string) (Operator, error) {
	if op, ok := operatorAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return op, nil
	}
	return OpNone, fmt.Errorf("%w: %s", ErrUnknownOperation, s)
}

// String возвращает символ оператора.
func (o Operator) String() string {
	return string(o)
}

// Valid сообщает, что это один из четырёх операторов.
func (o Operator) Valid() bool {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	}
	return false
}

// Apply применяет оператор к двум числам.
func (o Operator) Apply(a, b float64) (float64, error) {
	switch o {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, string(o))
	}
}

// Operation: запись об одной выполненной операции калькулятора.
// SessionID пустой для разовых вычислений через /calculate.
type Operation struct {
	ID        int       `json:"id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	Number1   float64   `json:"number1"`
	Number2   float64   `json:"number2"`
	Operation string    `json:"operation"`
	Result    float64   `json:"result"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
