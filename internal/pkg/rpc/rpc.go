// Package rpc carries JSON-shaped payloads over gRPC as google.protobuf.Struct,
// so services can be declared with a plain grpc.ServiceDesc.
package rpc

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// StructMethod is the server side of one unary method.
type StructMethod func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

// Unary builds a MethodDesc that decodes the request, runs the interceptor
// chain and dispatches to call, the same way generated code does.
func Unary(service, method string, call StructMethod) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv, ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Encode converts any JSON-marshalable value into a Struct.
func Encode(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	m := map[string]interface{}{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

// Decode fills dst from a Struct using dst's json tags.
func Decode(s *structpb.Struct, dst interface{}) error {
	if s == nil {
		return nil
	}
	data, err := json.Marshal(s.AsMap())
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

// Invoke calls a Struct-typed unary method on conn.
func Invoke(ctx context.Context, conn grpc.ClientConnInterface, service, method string, req interface{}, resp interface{}) error {
	in, err := Encode(req)
	if err != nil {
		return err
	}
	out := new(structpb.Struct)
	if err := conn.Invoke(ctx, "/"+service+"/"+method, in, out); err != nil {
		return err
	}
	return Decode(out, resp)
}

// StreamMethod is the server side of a server-streaming method: one request, many responses.
type StreamMethod func(srv interface{}, req *structpb.Struct, stream grpc.ServerStream) error

func ServerStream(method string, call StreamMethod) grpc.StreamDesc {
	return grpc.StreamDesc{
		StreamName:    method,
		ServerStreams: true,
		Handler: func(srv interface{}, stream grpc.ServerStream) error {
			in := new(structpb.Struct)
			if err := stream.RecvMsg(in); err != nil {
				return err
			}
			return call(srv, in, stream)
		},
	}
}

// Send encodes v and writes it on stream.
func Send(stream grpc.ServerStream, v interface{}) error {
	out, err := Encode(v)
	if err != nil {
		return err
	}
	return stream.SendMsg(out)
}

// OpenStream starts a server-streaming call and sends its only request.
func OpenStream(ctx context.Context, conn grpc.ClientConnInterface, service, method string, req interface{}) (grpc.ClientStream, error) {
	desc := &grpc.StreamDesc{StreamName: method, ServerStreams: true}
	stream, err := conn.NewStream(ctx, desc, "/"+service+"/"+method)
	if err != nil {
		return nil, err
	}
	in, err := Encode(req)
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return stream, nil
}

// Recv reads the next message of a stream opened with OpenStream into dst.
func Recv(stream grpc.ClientStream, dst interface{}) error {
	out := new(structpb.Struct)
	if err := stream.RecvMsg(out); err != nil {
		return err
	}
	return Decode(out, dst)
}
