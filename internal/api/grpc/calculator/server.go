package calculator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"keycalc/internal/domain"
	"keycalc/internal/ports"
)

var _ CalculatorServiceServer = (*Server)(nil)

// Server реализует CalculatorService: разовые вычисления через ICalculatorUseCase, сессии клавиатуры через IKeypadUseCase.
type Server struct {
	calc   ports.ICalculatorUseCase
	keypad ports.IKeypadUseCase
	log    *slog.Logger
}

// New создаёт gRPC-сервер калькулятора.
func New(calc ports.ICalculatorUseCase, keypad ports.IKeypadUseCase, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{calc: calc, keypad: keypad, log: log}
}

// Calculate: {number1, number2, operation} -> {result, message}.
func (s *Server) Calculate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	n1, err := numberField(in, "number1")
	if err != nil {
		return nil, err
	}
	n2, err := numberField(in, "number2")
	if err != nil {
		return nil, err
	}
	operation, err := stringField(in, "operation")
	if err != nil {
		return nil, err
	}

	op, err := s.calc.Calculate(ctx, n1, n2, operation)
	if err != nil {
		return nil, s.toStatus("calculate failed", err)
	}
	return newStruct(map[string]any{"result": op.Result, "message": op.Message})
}

// History: {} -> {items: [...]}.
func (s *Server) History(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	list, err := s.calc.History(ctx)
	if err != nil {
		return nil, s.toStatus("history failed", err)
	}
	return newStruct(map[string]any{"items": operationsList(list)})
}

// OpenSession: {} -> вид сессии.
func (s *Server) OpenSession(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	view, err := s.keypad.OpenSession(ctx)
	if err != nil {
		return nil, s.toStatus("open session failed", err)
	}
	return viewStruct(view)
}

// Press: {session_id, keys} -> вид сессии.
func (s *Server) Press(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := sessionID(in)
	if err != nil {
		return nil, err
	}
	keys, err := stringField(in, "keys")
	if err != nil {
		return nil, err
	}
	if len(keys) > domain.MaxKeySequence*utf8.UTFMax {
		return nil, status.Errorf(codes.InvalidArgument, "%v: %d bytes", domain.ErrTooManyKeys, len(keys))
	}
	view, err := s.keypad.Press(ctx, id, keys)
	if err != nil {
		return nil, s.toStatus("press failed", err)
	}
	return viewStruct(view)
}

// GetSession: {session_id} -> вид сессии.
func (s *Server) GetSession(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := sessionID(in)
	if err != nil {
		return nil, err
	}
	view, err := s.keypad.Session(ctx, id)
	if err != nil {
		return nil, s.toStatus("get session failed", err)
	}
	return viewStruct(view)
}

// CloseSession: {session_id} -> {}.
func (s *Server) CloseSession(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := sessionID(in)
	if err != nil {
		return nil, err
	}
	if err := s.keypad.CloseSession(ctx, id); err != nil {
		return nil, s.toStatus("close session failed", err)
	}
	return &structpb.Struct{}, nil
}

// toStatus переводит доменную ошибку в gRPC-код. Неизвестные ошибки: Internal с логом.
func (s *Server) toStatus(msg string, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnknownOperation),
		errors.Is(err, domain.ErrUnknownKey),
		errors.Is(err, domain.ErrTooManyKeys),
		errors.Is(err, domain.ErrDivisionByZero):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrTooManySessions):
		return status.Error(codes.ResourceExhausted, err.Error())
	}
	s.log.Error(msg, "error", err)
	return status.Error(codes.Internal, err.Error())
}

func sessionID(in *structpb.Struct) (string, error) {
	id, err := stringField(in, "session_id")
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", status.Error(codes.InvalidArgument, "session_id is empty")
	}
	return id, nil
}

func stringField(in *structpb.Struct, name string) (string, error) {
	v, ok := in.GetFields()[name]
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "%s must be a string", name)
	}
	return sv.StringValue, nil
}

func numberField(in *structpb.Struct, name string) (float64, error) {
	v, ok := in.GetFields()[name]
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	nv, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be a number", name)
	}
	return nv.NumberValue, nil
}

func newStruct(fields map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	return out, nil
}

func viewStruct(v *domain.SessionView) (*structpb.Struct, error) {
	alerts := make([]any, len(v.Alerts))
	for i, a := range v.Alerts {
		alerts[i] = a
	}
	return newStruct(map[string]any{
		"session_id":  v.SessionID,
		"display":     v.State.Current,
		"pending":     v.State.Pending,
		"operator":    v.State.Operator.String(),
		"reset":       v.State.ResetOnNextInput,
		"alerts":      alerts,
		"evaluations": operationsList(v.Evaluations),
	})
}

func operationsList(list []domain.Operation) []any {
	items := make([]any, len(list))
	for i, op := range list {
		items[i] = map[string]any{
			"id":         float64(op.ID),
			"session_id": op.SessionID,
			"number1":    op.Number1,
			"number2":    op.Number2,
			"operation":  op.Operation,
			"result":     op.Result,
			"message":    op.Message,
			"timestamp":  op.Timestamp.UTC().Format(time.RFC3339Nano),
		}
	}
	return items
}
