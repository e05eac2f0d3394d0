// Package rpc exposes the analyzer as a gRPC service for out-of-process
// callers (an editor plugin, a CI runner) that would rather not link the
// Go module directly.
//
// There is no protoc step in this environment, so the wire messages reuse
// the official pre-generated wrapperspb.BytesValue well-known type as an
// opaque envelope (a JSON-encoded ast.Module in, a JSON-encoded
// report.Report out) instead of a hand-authored .pb.go file, and
// registration uses a hand-assembled grpc.ServiceDesc. Both are real,
// codegen-free uses of google.golang.org/grpc and google.golang.org/protobuf.
package rpc

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/jingwhale/blockpy/internal/analyzer"
	"github.com/jingwhale/blockpy/internal/ast"
	"github.com/jingwhale/blockpy/internal/diagnostics"
)

// reportWire is the JSON shape returned to an RPC caller; it flattens the
// Report's State values (which carry an internal linked trace) down to
// what a remote caller actually needs.
type reportWire struct {
	Success bool                          `json:"success"`
	Error   string                        `json:"error,omitempty"`
	Issues  map[string][]diagnostics.Data `json:"issues"`
	Top     map[string]string             `json:"topLevelVariables"`
}

// Server implements analyzerServiceServer.
type Server struct {
	Config analyzer.Config
}

func NewServer(cfg analyzer.Config) *Server {
	return &Server{Config: cfg}
}

// Analyze decodes the request bytes as a JSON ast.Module, runs the
// analyzer, and returns the report re-encoded as JSON bytes.
func (s *Server) Analyze(ctx context.Context, req *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	mod, err := ast.DecodeModule(req.GetValue())
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "decode ast: %v", err)
	}

	rep := analyzer.Analyze(mod, s.Config)
	if !rep.Success {
		return nil, status.Errorf(codes.Internal, "analysis failed: %v", rep.Error)
	}

	wire := reportWire{Success: true, Issues: map[string][]diagnostics.Data{}, Top: map[string]string{}}
	for kind, issues := range rep.Issues {
		wire.Issues[string(kind)] = issues
	}
	for name, st := range rep.TopLevelVariables {
		wire.Top[name] = st.Type.String()
	}

	out, err := json.Marshal(wire)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode report: %v", err)
	}
	return wrapperspb.Bytes(out), nil
}

// serviceDesc is the hand-written analogue of what protoc-gen-go-grpc
// would otherwise generate: one unary method, dispatched through the
// wrapperspb.BytesValue envelope.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: "blockpy.AnalyzerService",
	HandlerType: (*analyzerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Analyze",
			Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
				in := new(wrapperspb.BytesValue)
				if err := dec(in); err != nil {
					return nil, err
				}
				if interceptor == nil {
					return srv.(analyzerServiceServer).Analyze(ctx, in)
				}
				info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/blockpy.AnalyzerService/Analyze"}
				handler := func(ctx context.Context, req interface{}) (interface{}, error) {
					return srv.(analyzerServiceServer).Analyze(ctx, req.(*wrapperspb.BytesValue))
				}
				return interceptor(ctx, in, info, handler)
			},
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "blockpy/analyzer.proto",
}

type analyzerServiceServer interface {
	Analyze(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
}

// Register attaches the AnalyzerService to a live gRPC server.
func Register(s *grpc.Server, srv *Server) {
	s.RegisterService(&serviceDesc, srv)
}
