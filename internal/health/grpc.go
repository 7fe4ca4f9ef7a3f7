package health

import (
	"context"
	"fmt"
	"net/http"

	"connectrpc.com/connect"
	"connectrpc.com/grpchealth"
)

// ServiceName is the service reported by the gRPC health endpoint besides the
// empty name, which stands for the whole server.
const ServiceName = "primind.vault.v1.VaultService"

type grpcChecker struct {
	checker *Checker
}

// GRPCHandler exposes the readiness check over the gRPC health protocol.
func (c *Checker) GRPCHandler() (string, http.Handler) {
	return grpchealth.NewHandler(&grpcChecker{checker: c})
}

func (g *grpcChecker) Check(ctx context.Context, req *grpchealth.CheckRequest) (*grpchealth.CheckResponse, error) {
	if req.Service != "" && req.Service != ServiceName {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("unknown service %q", req.Service))
	}

	if g.checker.Check(ctx).Status != StatusHealthy {
		return &grpchealth.CheckResponse{Status: grpchealth.StatusNotServing}, nil
	}
	return &grpchealth.CheckResponse{Status: grpchealth.StatusServing}, nil
}
