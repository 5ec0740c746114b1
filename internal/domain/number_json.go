package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// JSONFloat: число, которое переживает JSON без потерь для ±Inf и NaN.
// Конечное значение пишется обычным числом, остальные строкой "Infinity", "-Infinity", "NaN".
type JSONFloat float64

// MarshalJSON реализует json.Marshaler.
func (f JSONFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return []byte(strconv.Quote(FormatNumber(v))), nil
	}
	return json.Marshal(v)
}

// UnmarshalJSON принимает число или одну из строк "Infinity", "-Infinity", "NaN".
func (f *JSONFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch s {
		case "Infinity":
			*f = JSONFloat(math.Inf(1))
		case "-Infinity":
			*f = JSONFloat(math.Inf(-1))
		case "NaN":
			*f = JSONFloat(math.NaN())
		default:
			return fmt.Errorf("json float: unexpected string %q", s)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = JSONFloat(v)
	return nil
}

// operationJSON: форма Operation на проводе.
type operationJSON struct {
	ID        int       `json:"id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	Number1   JSONFloat `json:"number1"`
	Number2   JSONFloat `json:"number2"`
	Operation string    `json:"operation"`
	Result    JSONFloat `json:"result"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// MarshalJSON кодирует операцию; переполнение (1e308 * 10) даёт "Infinity", а не ошибку.
func (o Operation) MarshalJSON() ([]byte, error) {
	return json.Marshal(operationJSON{
		ID:        o.ID,
		SessionID: o.SessionID,
		Number1:   JSONFloat(o.Number1),
		Number2:   JSONFloat(o.Number2),
		Operation: o.Operation,
		Result:    JSONFloat(o.Result),
		Message:   o.Message,
		Timestamp: o.Timestamp,
	})
}

// UnmarshalJSON реализует json.Unmarshaler.
func (o *Operation) UnmarshalJSON(data []byte) error {
	var w operationJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*o = Operation{
		ID:        w.ID,
		SessionID: w.SessionID,
		Number1:   float64(w.Number1),
		Number2:   float64(w.Number2),
		Operation: w.Operation,
		Result:    float64(w.Result),
		Message:   w.Message,
		Timestamp: w.Timestamp,
	}
	return nil
}
