// Package chargen exposes character generation as the gRPC
// chargen.v1.CharacterService.
//
// Messages are google.protobuf.Struct values so the service needs no
// generated code. Field names match the JSON HTTP surface.
package chargen

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "chargen.v1.CharacterService"

const (
	generateCharactersMethod = "/" + ServiceName + "/GenerateCharacters"
	describeRulesetMethod    = "/" + ServiceName + "/DescribeRuleset"
)

// CharacterServiceServer is the server API for the character service.
type CharacterServiceServer interface {
	GenerateCharacters(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DescribeRuleset(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// CharacterServiceDesc describes the service for grpc.Server registration.
var CharacterServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CharacterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GenerateCharacters", Handler: generateCharactersHandler},
		{MethodName: "DescribeRuleset", Handler: describeRulesetHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "chargen/v1/chargen.proto",
}

// RegisterCharacterServiceServer registers srv on s.
func RegisterCharacterServiceServer(s grpc.ServiceRegistrar, srv CharacterServiceServer) {
	s.RegisterService(&CharacterServiceDesc, srv)
}

func generateCharactersHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CharacterServiceServer).GenerateCharacters(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: generateCharactersMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CharacterServiceServer).GenerateCharacters(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func describeRulesetHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CharacterServiceServer).DescribeRuleset(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: describeRulesetMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CharacterServiceServer).DescribeRuleset(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
