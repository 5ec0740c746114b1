package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"keycalc/internal/domain"
	"keycalc/internal/keypad"
)

// Форматы вывода eval.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// evalResult: итог прогона строки клавиш.
type evalResult struct {
	Keys        string       `json:"keys" yaml:"keys"`
	State       domain.State `json:"state" yaml:"state"`
	Alerts      []string     `json:"alerts" yaml:"alerts"`
	Evaluations []string     `json:"evaluations" yaml:"evaluations"`
}

func newEvalCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "eval <keys>",
		Short: "Run a key sequence through a fresh keypad",
		Long: `Run a key sequence through a fresh keypad and print the display.

Keys: 0-9 . + - * / x = C. Spaces are ignored, several arguments are joined.
A sequence with an unknown key is rejected before any key is pressed.

Examples:
  keypad eval 7+3=
  keypad eval "3 + 4 * 2 ="
  keypad eval 9/0= -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := evaluate(strings.Join(args, ""))
			if err != nil {
				return err
			}
			slog.Debug("eval", "keys", res.Keys, "display", res.State.Current, "alerts", len(res.Alerts))
			return writeResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), output, res)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", formatText, "output format: text, json, yaml")
	return cmd
}

// evaluate прогоняет клавиши через новый автомат и собирает уведомления и вычисления.
func evaluate(keys string) (evalResult, error) {
	parsed, err := domain.ParseKeys(keys)
	if err != nil {
		return evalResult{}, err
	}

	res := evalResult{Keys: keys, Alerts: []string{}, Evaluations: []string{}}
	m := keypad.New(
		keypad.WithAlerter(keypad.AlertFunc(func(msg string) {
			res.Alerts = append(res.Alerts, msg)
		})),
		keypad.WithRecorder(keypad.RecordFunc(func(op domain.Operation) {
			res.Evaluations = append(res.Evaluations, fmt.Sprintf("%s %s %s = %s",
				domain.FormatNumber(op.Number1), op.Operation, domain.FormatNumber(op.Number2), domain.FormatNumber(op.Result)))
		})),
	)
	for _, k := range parsed {
		m.Press(k)
	}
	res.State = m.State()
	return res, nil
}

func writeResult(out, errOut io.Writer, format string, res evalResult) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)

	case formatYAML:
		data, err := yaml.Marshal(res)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err

	case formatText:
		for _, a := range res.Alerts {
			fmt.Fprintf(errOut, "alert: %s\n", a)
		}
		fmt.Fprintln(out, res.State.Current)
		return nil

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
