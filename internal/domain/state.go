package domain

import (
	"errors"
	"math"
	"strconv"
)

// DivisionByZeroMessage: текст уведомления пользователю при делении на ноль.
const DivisionByZeroMessage = "Cannot divide by zero!"

// State: снимок состояния клавиатурного калькулятора.
type State struct {
	Current          string   `json:"current" yaml:"current"`
	Pending          string   `json:"pending" yaml:"pending"`
	Operator         Operator `json:"operator" yaml:"operator"`
	ResetOnNextInput bool     `json:"reset" yaml:"reset"`
}

// FormatNumber переводит результат в текст для дисплея: без экспоненты и без ".0" у целых.
// Отрицательный ноль печатается как "0".
func FormatNumber(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.IsNaN(v):
		return "NaN"
	case v == 0:
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseNumber разбирает текст операнда. ok == false, если текст не число (например, одна точка);
// тогда v == NaN. Слишком длинные числа дают ±Inf, это не ошибка.
func ParseNumber(s string) (v float64, ok bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || numErr.Err != strconv.ErrRange {
			return math.NaN(), false
		}
	}
	if math.IsNaN(v) {
		return v, false
	}
	return v, true
}
