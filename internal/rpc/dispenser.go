// Package rpc wires the dispenser service to Connect. Requests and responses are protobuf
// well-known types.
package rpc

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const DispenserServiceName = "atm.v1.DispenserService"

const DispenserServiceDistributeProcedure = "/atm.v1.DispenserService/Distribute"

type DispenserServiceHandler interface {
	Distribute(context.Context, *connect.Request[wrapperspb.StringValue]) (*connect.Response[structpb.Struct], error)
}

// NewDispenserServiceHandler returns the path prefix to mount the handler on.
func NewDispenserServiceHandler(svc DispenserServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	distributeHandler := connect.NewUnaryHandler(
		DispenserServiceDistributeProcedure,
		svc.Distribute,
		opts...,
	)

	return "/" + DispenserServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case DispenserServiceDistributeProcedure:
			distributeHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

type DispenserServiceClient interface {
	Distribute(context.Context, *connect.Request[wrapperspb.StringValue]) (*connect.Response[structpb.Struct], error)
}

func NewDispenserServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) DispenserServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	return &dispenserServiceClient{
		distribute: connect.NewClient[wrapperspb.StringValue, structpb.Struct](
			httpClient,
			baseURL+DispenserServiceDistributeProcedure,
			opts...,
		),
	}
}

type dispenserServiceClient struct {
	distribute *connect.Client[wrapperspb.StringValue, structpb.Struct]
}

func (c *dispenserServiceClient) Distribute(
	ctx context.Context,
	req *connect.Request[wrapperspb.StringValue],
) (*connect.Response[structpb.Struct], error) {
	return c.distribute.CallUnary(ctx, req)
}
