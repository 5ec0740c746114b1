package keypad

import "keycalc/internal/domain"

// Display: приёмник текста дисплея. Вызывается в конце каждой операции.
type Display interface {
	Show(text string)
}

// Alerter: уведомление пользователя об ошибке (деление на ноль).
// Блокировать ли вызов до подтверждения, решает хост.
type Alerter interface {
	Alert(message string)
}

// Recorder получает каждое успешно выполненное вычисление. Timestamp не заполнен.
type Recorder interface {
	Record(op domain.Operation)
}

// DisplayFunc адаптирует функцию к Display.
type DisplayFunc func(text string)

// Show реализует Display.
func (f DisplayFunc) Show(text string) { f(text) }

// AlertFunc адаптирует функцию к Alerter.
type AlertFunc func(message string)

// Alert реализует Alerter.
func (f AlertFunc) Alert(message string) { f(message) }

// RecordFunc адаптирует функцию к Recorder.
type RecordFunc func(op domain.Operation)

// Record реализует Recorder.
func (f RecordFunc) Record(op domain.Operation) { f(op) }
