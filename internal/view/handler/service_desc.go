package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "bookingdesk.view.v1.ViewService"

// Full method names.
const (
	ListViewMethod        = "/" + ServiceName + "/ListView"
	ListScreensMethod     = "/" + ServiceName + "/ListScreens"
	ListUniqueUsersMethod = "/" + ServiceName + "/ListUniqueUsers"
)

// ViewServiceServer is the server API of ViewService. Requests and responses are
// google.protobuf.Struct documents; see codec.go for their shape.
type ViewServiceServer interface {
	ListView(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListScreens(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListUniqueUsers(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterViewServiceServer registers srv with s.
func RegisterViewServiceServer(s grpc.ServiceRegistrar, srv ViewServiceServer) {
	s.RegisterService(&ViewService_ServiceDesc, srv)
}

func unaryHandler(method string, call func(ViewServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ViewServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(ViewServiceServer), ctx, req.(*structpb.Struct))
		})
	}
}

// ViewService_ServiceDesc is the grpc.ServiceDesc for ViewService.
var ViewService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ViewServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListView", Handler: unaryHandler(ListViewMethod, ViewServiceServer.ListView)},
		{MethodName: "ListScreens", Handler: unaryHandler(ListScreensMethod, ViewServiceServer.ListScreens)},
		{MethodName: "ListUniqueUsers", Handler: unaryHandler(ListUniqueUsersMethod, ViewServiceServer.ListUniqueUsers)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bookingdesk/view/v1/view.proto",
}

// ViewServiceClient is the client API of ViewService.
type ViewServiceClient interface {
	ListView(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListScreens(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListUniqueUsers(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type viewServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewViewServiceClient returns a client for ViewService over cc.
func NewViewServiceClient(cc grpc.ClientConnInterface) ViewServiceClient {
	return &viewServiceClient{cc: cc}
}

func (c *viewServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *viewServiceClient) ListView(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ListViewMethod, in, opts)
}

func (c *viewServiceClient) ListScreens(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ListScreensMethod, in, opts)
}

func (c *viewServiceClient) ListUniqueUsers(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ListUniqueUsersMethod, in, opts)
}
