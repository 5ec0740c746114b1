package domain

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// MaxKeySequence: сколько символов принимает один вызов ParseKeys.
const MaxKeySequence = 4096

var (
	// ErrUnknownKey: символ, которому не соответствует ни одна клавиша.
	ErrUnknownKey = errors.New("unknown key")
	// ErrTooManyKeys: строка нажатий длиннее MaxKeySequence.
	ErrTooManyKeys = errors.New("too many keys")
)

// KeyKind: вид клавиши.
type KeyKind int

const (
	KeyDigit KeyKind = iota
	KeyDecimal
	KeyOperator
	KeyEvaluate
	KeyClear
)

// Key: одно нажатие клавиши. Digit заполнен для KeyDigit, а Operator для KeyOperator.
type Key struct {
	Kind     KeyKind
	Digit    byte
	Operator Operator
}

// Готовые клавиши без параметров.
var (
	KeyDot   = Key{Kind: KeyDecimal}
	KeyEqual = Key{Kind: KeyEvaluate}
	KeyReset = Key{Kind: KeyClear}
)

// DigitKey возвращает клавишу цифры d ('0'..'9').
func DigitKey(d byte) Key {
	return Key{Kind: KeyDigit, Digit: d}
}

// OperatorKey возвращает клавишу оператора.
func OperatorKey(op Operator) Key {
	return Key{Kind: KeyOperator, Operator: op}
}

// String возвращает символ клавиши, как его печатают в строке ввода.
func (k Key) String() string {
	switch k.Kind {
	case KeyDigit:
		return string(k.Digit)
	case KeyDecimal:
		return "."
	case KeyOperator:
		return k.Operator.String()
	case KeyEvaluate:
		return "="
	case KeyClear:
		return "C"
	}
	return "?"
}

// ParseKey разбирает одну клавишу по символу.
func ParseKey(r rune) (Key, error) {
	switch {
	case r >= '0' && r <= '9':
		return DigitKey(byte(r)), nil
	case r == '.':
		return KeyDot, nil
	case r == '=':
		return KeyEqual, nil
	case r == 'c' || r == 'C':
		return KeyReset, nil
	}
	if op, err := ParseOperator(string(r)); err == nil {
		return OperatorKey(op), nil
	}
	return Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, r)
}

// ParseKeys разбирает строку нажатий, например "12.5*2=". Пробелы пропускаются.
// Если хотя бы один символ не распознан или строка длиннее MaxKeySequence,
// возвращается ошибка и ни одной клавиши.
func ParseKeys(s string) ([]Key, error) {
	if n := utf8.RuneCountInString(s); n > MaxKeySequence {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyKeys, n, MaxKeySequence)
	}
	keys := make([]Key, 0, len(s))
	for i, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		k, err := ParseKey(r)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}
