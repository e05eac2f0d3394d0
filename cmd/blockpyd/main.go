// Command blockpyd serves the analyzer over gRPC for callers that would
// rather not link the Go module directly (an editor plugin, a CI runner).
package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"google.golang.org/grpc"

	"github.com/jingwhale/blockpy/internal/analyzer"
	"github.com/jingwhale/blockpy/internal/config"
	"github.com/jingwhale/blockpy/internal/rpc"
)

func main() {
	addr := flag.String("addr", ":7755", "listen address")
	configPath := flag.String("config", "", "path to blockpy.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "blockpyd: loading config: %v\n", err)
		os.Exit(1)
	}

	lis, err := net.Listen("tcp", *addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "blockpyd: listen: %v\n", err)
		os.Exit(1)
	}

	grpcServer := grpc.NewServer()
	rpc.Register(grpcServer, rpc.NewServer(analyzer.ConfigFrom(cfg)))

	fmt.Printf("blockpyd: listening on %s\n", *addr)
	if err := grpcServer.Serve(lis); err != nil {
		fmt.Fprintf(os.Stderr, "blockpyd: serve: %v\n", err)
		os.Exit(1)
	}
}
