package calculator

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName: полное имя сервиса. Контракт лежит в api/proto/keycalc/v1/calculator.proto;
// все сообщения там google.protobuf.Struct, поэтому описание ниже собрано без protoc
// и сверяется с .proto в тестах пакета.
const ServiceName = "keycalc.v1.CalculatorService"

// Методы сервиса (полные имена для Invoke).
const (
	MethodCalculate    = "/" + ServiceName + "/Calculate"
	MethodHistory      = "/" + ServiceName + "/History"
	MethodOpenSession  = "/" + ServiceName + "/OpenSession"
	MethodPress        = "/" + ServiceName + "/Press"
	MethodGetSession   = "/" + ServiceName + "/GetSession"
	MethodCloseSession = "/" + ServiceName + "/CloseSession"
)

// CalculatorServiceServer: серверная сторона keycalc.v1.CalculatorService.
type CalculatorServiceServer interface {
	Calculate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	History(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	OpenSession(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	Press(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GetSession(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	CloseSession(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(srv CalculatorServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

// unary собирает grpc.MethodDesc так же, как это делает protoc-gen-go-grpc для unary-метода.
func unary(name string, call unaryCall) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(CalculatorServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(CalculatorServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc: описание сервиса для grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalculatorServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Calculate", CalculatorServiceServer.Calculate),
		unary("History", CalculatorServiceServer.History),
		unary("OpenSession", CalculatorServiceServer.OpenSession),
		unary("Press", CalculatorServiceServer.Press),
		unary("GetSession", CalculatorServiceServer.GetSession),
		unary("CloseSession", CalculatorServiceServer.CloseSession),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "keycalc/v1/calculator.proto",
}

// RegisterCalculatorServiceServer регистрирует реализацию на сервере.
func RegisterCalculatorServiceServer(s grpc.ServiceRegistrar, srv CalculatorServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client: клиент keycalc.v1.CalculatorService.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient оборачивает соединение.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call вызывает метод сервиса (одна из констант Method*) с полями in.
func (c *Client) Call(ctx context.Context, method string, in map[string]any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(in)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
