package proto

import (
	"context"

	"github.com/MikhailRaia/shortener-form/internal/model"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName         = "shortener.ShorteningService"
	ShortenFullMethod   = "/shortener.ShorteningService/Shorten"
	fieldURL            = "url"
	fieldCustomCode     = "custom_code"
	fieldValidityPeriod = "validity_minutes"
)

// NewShortenRequest encodes a request as a protobuf Struct.
func NewShortenRequest(req model.ShortenRequest) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			fieldURL:            structpb.NewStringValue(req.OriginalURL),
			fieldCustomCode:     structpb.NewStringValue(req.CustomCode),
			fieldValidityPeriod: structpb.NewStringValue(req.ValidityMinutes),
		},
	}
}

// ParseShortenRequest decodes a request. Missing fields become empty strings.
func ParseShortenRequest(in *structpb.Struct) model.ShortenRequest {
	fields := in.GetFields()
	return model.ShortenRequest{
		OriginalURL:     fields[fieldURL].GetStringValue(),
		CustomCode:      fields[fieldCustomCode].GetStringValue(),
		ValidityMinutes: fields[fieldValidityPeriod].GetStringValue(),
	}
}

// ShorteningServiceServer is the server API for ShorteningService service.
type ShorteningServiceServer interface {
	Shorten(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
}

// UnimplementedShorteningServiceServer can be embedded to have forward compatible implementations.
type UnimplementedShorteningServiceServer struct{}

func (UnimplementedShorteningServiceServer) Shorten(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Shorten not implemented")
}

func RegisterShorteningServiceServer(s grpc.ServiceRegistrar, srv ShorteningServiceServer) {
	s.RegisterService(&_ShorteningService_serviceDesc, srv)
}

// ShorteningServiceClient is the client API for ShorteningService service.
type ShorteningServiceClient interface {
	Shorten(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type shorteningServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewShorteningServiceClient(cc grpc.ClientConnInterface) ShorteningServiceClient {
	return &shorteningServiceClient{cc: cc}
}

func (c *shorteningServiceClient) Shorten(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, ShortenFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func _ShorteningService_Shorten_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShorteningServiceServer).Shorten(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ShortenFullMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ShorteningServiceServer).Shorten(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var _ShorteningService_serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ShorteningServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Shorten",
			Handler:    _ShorteningService_Shorten_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shortener.proto",
}
