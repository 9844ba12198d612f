package handler

import (
	"context"

	"github.com/MikhailRaia/shortener-form/internal/proto"
	"github.com/MikhailRaia/shortener-form/internal/shortener"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ShorteningGRPCServer exposes a shortener.Service over gRPC so that other
// form instances can use this process as their backend.
type ShorteningGRPCServer struct {
	proto.UnimplementedShorteningServiceServer
	service shortener.Service
}

func NewShorteningGRPCServer(service shortener.Service) *ShorteningGRPCServer {
	return &ShorteningGRPCServer{
		service: service,
	}
}

func (s *ShorteningGRPCServer) Shorten(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error) {
	request := proto.ParseShortenRequest(req)
	if request.OriginalURL == "" {
		return nil, status.Error(codes.InvalidArgument, "url is required")
	}

	result, err := s.service.Shorten(ctx, request)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to shorten URL: %v", err)
	}

	return wrapperspb.String(result.ShortURL), nil
}
