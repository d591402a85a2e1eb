package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/gpu-mcp/internal/tools"
	"github.com/sells-group/gpu-mcp/pkg/gpu"
)

const serverVersion = "1.0.0"

var (
	serveTransport string
	servePort      int
)

// newMCPServer wires the configured GPU client into a server with every tool
// registered.
func newMCPServer() *mcp.Server {
	client := gpu.NewClient(
		gpu.WithBaseURL(cfg.GPU.BaseURL),
		gpu.WithTimeout(cfg.GPU.Timeout()),
	)
	handler := tools.NewHandler(client, tools.WithMaxChars(cfg.Output.MaxChars))

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "gpu-mcp",
		Version: serverVersion,
	}, nil)
	handler.Register(server)
	return server
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio by default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		transport := serveTransport
		if transport == "" {
			transport = cfg.Server.Transport
		}

		switch transport {
		case "stdio":
			server := newMCPServer()
			zap.L().Info("starting stdio server", zap.String("base_url", cfg.GPU.BaseURL))
			if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
				return eris.Wrap(err, "stdio server")
			}
			return nil
		case "http":
			return serveHTTP(ctx)
		default:
			return eris.Errorf("unknown transport %q (accepted: stdio, http)", transport)
		}
	},
}

func serveHTTP(ctx context.Context) error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mcpHandler := mcp.NewStreamableHTTPHandler(func(req *http.Request) *mcp.Server {
		return newMCPServer()
	}, nil)
	r.Handle("/mcp", mcpHandler)

	port := servePort
	if port == 0 {
		port = cfg.Server.Port
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		srv.Shutdown(ctx)
	}()

	zap.L().Info("starting http server", zap.Int("port", port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server listen")
	}

	return nil
}

func init() {
	serveCmd.Flags().StringVar(&serveTransport, "transport", "", "transport to serve on: stdio or http (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "http server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
