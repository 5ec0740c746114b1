package grpc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"keycalc/internal/api/grpc/calculator"
	"keycalc/internal/domain"
	"keycalc/internal/mocks"
)

type fixture struct {
	calc   *mocks.MockICalculatorUseCase
	keypad *mocks.MockIKeypadUseCase
	client *calculator.Client
	conn   *grpc.ClientConn
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		calc:   mocks.NewMockICalculatorUseCase(ctrl),
		keypad: mocks.NewMockIKeypadUseCase(ctrl),
	}

	lis := bufconn.Listen(1 << 20)
	srv := NewServer("bufnet", f.calc, f.keypad, slog.New(slog.NewTextHandler(io.Discard, nil)))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(func() { _ = srv.Stop(context.Background()) })

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	f.conn = conn
	f.client = calculator.NewClient(conn)
	return f
}

func TestCalculate(t *testing.T) {
	f := setup(t)
	f.calc.EXPECT().Calculate(gomock.Any(), 6.0, 7.0, "x").
		Return(&domain.Operation{Number1: 6, Number2: 7, Operation: "*", Result: 42}, nil)

	out, err := f.client.Call(context.Background(), calculator.MethodCalculate,
		map[string]any{"number1": 6, "number2": 7, "operation": "x"})

	require.NoError(t, err)
	assert.Equal(t, 42.0, out.GetFields()["result"].GetNumberValue())
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
		err  error
		code codes.Code
	}{
		{name: "missing field", in: map[string]any{"number1": 1, "operation": "+"}, code: codes.InvalidArgument},
		{name: "wrong type", in: map[string]any{"number1": "1", "number2": 2, "operation": "+"}, code: codes.InvalidArgument},
		{name: "division by zero", in: map[string]any{"number1": 1, "number2": 0, "operation": "/"}, err: domain.ErrDivisionByZero, code: codes.InvalidArgument},
		{name: "unknown operation", in: map[string]any{"number1": 1, "number2": 2, "operation": "%"}, err: fmt.Errorf("%w: %%", domain.ErrUnknownOperation), code: codes.InvalidArgument},
		{name: "storage", in: map[string]any{"number1": 1, "number2": 2, "operation": "+"}, err: fmt.Errorf("save operation: db down"), code: codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			if tt.err != nil {
				f.calc.EXPECT().Calculate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tt.err)
			}

			_, err := f.client.Call(context.Background(), calculator.MethodCalculate, tt.in)

			assert.Equal(t, tt.code, status.Code(err))
		})
	}
}

func TestSessionFlow(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	gomock.InOrder(
		f.keypad.EXPECT().OpenSession(gomock.Any()).
			Return(&domain.SessionView{SessionID: "s-1", State: domain.State{Current: "0"}}, nil),
		f.keypad.EXPECT().Press(gomock.Any(), "s-1", "9/0=").
			Return(&domain.SessionView{
				SessionID: "s-1",
				State:     domain.State{Current: "0"},
				Alerts:    []string{domain.DivisionByZeroMessage},
			}, nil),
		f.keypad.EXPECT().Press(gomock.Any(), "s-1", "7+3=").
			Return(&domain.SessionView{
				SessionID:   "s-1",
				State:       domain.State{Current: "10", ResetOnNextInput: true},
				Evaluations: []domain.Operation{{SessionID: "s-1", Number1: 7, Number2: 3, Operation: "+", Result: 10}},
			}, nil),
		f.keypad.EXPECT().CloseSession(gomock.Any(), "s-1").Return(nil),
		f.keypad.EXPECT().Session(gomock.Any(), "s-1").Return(nil, domain.ErrSessionNotFound),
	)

	opened, err := f.client.Call(ctx, calculator.MethodOpenSession, nil)
	require.NoError(t, err)
	assert.Equal(t, "s-1", opened.GetFields()["session_id"].GetStringValue())
	assert.Equal(t, "0", opened.GetFields()["display"].GetStringValue())

	view, err := f.client.Call(ctx, calculator.MethodPress, map[string]any{"session_id": "s-1", "keys": "9/0="})
	require.NoError(t, err)
	alerts := view.GetFields()["alerts"].GetListValue().GetValues()
	require.Len(t, alerts, 1)
	assert.Equal(t, domain.DivisionByZeroMessage, alerts[0].GetStringValue())

	view, err = f.client.Call(ctx, calculator.MethodPress, map[string]any{"session_id": "s-1", "keys": "7+3="})
	require.NoError(t, err)
	assert.Equal(t, "10", view.GetFields()["display"].GetStringValue())
	assert.True(t, view.GetFields()["reset"].GetBoolValue())
	evals := view.GetFields()["evaluations"].GetListValue().GetValues()
	require.Len(t, evals, 1)
	assert.Equal(t, 10.0, evals[0].GetStructValue().GetFields()["result"].GetNumberValue())

	_, err = f.client.Call(ctx, calculator.MethodCloseSession, map[string]any{"session_id": "s-1"})
	require.NoError(t, err)

	_, err = f.client.Call(ctx, calculator.MethodGetSession, map[string]any{"session_id": "s-1"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestPress_Errors(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.client.Call(ctx, calculator.MethodPress, map[string]any{"session_id": "", "keys": "1"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	f.keypad.EXPECT().Press(gomock.Any(), "s-1", "12?").Return(nil, fmt.Errorf("position 2: %w", domain.ErrUnknownKey))
	_, err = f.client.Call(ctx, calculator.MethodPress, map[string]any{"session_id": "s-1", "keys": "12?"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	f.keypad.EXPECT().Press(gomock.Any(), "s-1", "1+1").Return(nil, fmt.Errorf("%w: 5000 > 4096", domain.ErrTooManyKeys))
	_, err = f.client.Call(ctx, calculator.MethodPress, map[string]any{"session_id": "s-1", "keys": "1+1"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	f.keypad.EXPECT().OpenSession(gomock.Any()).Return(nil, domain.ErrTooManySessions)
	_, err = f.client.Call(ctx, calculator.MethodOpenSession, nil)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
}

// Гигантская строка отсекается до usecase: мок не ждёт вызова Press.
func TestPress_Oversized(t *testing.T) {
	f := setup(t)

	keys := strings.Repeat("9", domain.MaxKeySequence*utf8.UTFMax+1)
	_, err := f.client.Call(context.Background(), calculator.MethodPress, map[string]any{"session_id": "s-1", "keys": keys})

	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

// Бесконечность идёт по проводу обычным double.
func TestCalculate_Overflow(t *testing.T) {
	f := setup(t)
	f.calc.EXPECT().Calculate(gomock.Any(), 1e308, 10.0, "*").
		Return(&domain.Operation{Number1: 1e308, Number2: 10, Operation: "*", Result: math.Inf(1)}, nil)

	out, err := f.client.Call(context.Background(), calculator.MethodCalculate,
		map[string]any{"number1": 1e308, "number2": 10, "operation": "*"})

	require.NoError(t, err)
	assert.True(t, math.IsInf(out.GetFields()["result"].GetNumberValue(), 1))
}

func TestHistory(t *testing.T) {
	f := setup(t)
	f.calc.EXPECT().History(gomock.Any()).Return([]domain.Operation{
		{ID: 1, Number1: 1, Number2: 2, Operation: "+", Result: 3},
	}, nil)

	out, err := f.client.Call(context.Background(), calculator.MethodHistory, nil)

	require.NoError(t, err)
	items := out.GetFields()["items"].GetListValue().GetValues()
	require.Len(t, items, 1)
	assert.Equal(t, "+", items[0].GetStructValue().GetFields()["operation"].GetStringValue())
}

func TestHealth(t *testing.T) {
	f := setup(t)

	resp, err := healthpb.NewHealthClient(f.conn).Check(context.Background(),
		&healthpb.HealthCheckRequest{Service: calculator.ServiceName})

	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
