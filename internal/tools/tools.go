// Package tools exposes the Géoportail de l'Urbanisme API as MCP tools.
package tools

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/sells-group/gpu-mcp/pkg/gpu"
)

// DefaultMaxChars caps rendered tool output when no override is configured.
const DefaultMaxChars = 25000

// Handler holds everything a tool invocation needs. It is immutable after
// construction; concurrent invocations share nothing mutable.
type Handler struct {
	client   gpu.Client
	maxChars int
}

// Option configures the handler.
type Option func(*Handler)

// WithMaxChars overrides the rendered-output cap.
func WithMaxChars(n int) Option {
	return func(h *Handler) {
		h.maxChars = n
	}
}

// NewHandler creates the tool handler around a GPU client.
func NewHandler(client gpu.Client, opts ...Option) *Handler {
	h := &Handler{client: client, maxChars: DefaultMaxChars}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register adds every tool to the MCP server.
func (h *Handler) Register(server *mcp.Server) {
	h.registerTerritoryTools(server)
	h.registerDocumentTools(server)
	h.registerProcedureTools(server)
	h.registerStandardTools(server)
	h.registerSpatialTools(server)
}

// readOnly annotates a tool as read-only, non-destructive, idempotent, and
// talking to an open external world.
func readOnly(title string) *mcp.ToolAnnotations {
	no := false
	yes := true
	return &mcp.ToolAnnotations{
		Title:           title,
		ReadOnlyHint:    true,
		DestructiveHint: &no,
		IdempotentHint:  true,
		OpenWorldHint:   &yes,
	}
}

// handlerFor wraps a render function into an MCP tool handler. Parameter
// violations fail the call; upstream failures become translated text; the
// final render is capped.
func handlerFor[T any](h *Handler, name string, fn func(context.Context, T) (string, error)) func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args T) (*mcp.CallToolResult, any, error) {
		requestID := uuid.NewString()
		start := time.Now()

		text, err := fn(ctx, args)
		if err != nil {
			if errors.Is(err, ErrInvalidParams) {
				zap.L().Warn("tool rejected parameters",
					zap.String("tool", name),
					zap.String("request_id", requestID),
					zap.Error(err),
				)
				return nil, nil, err
			}
			zap.L().Warn("upstream request failed",
				zap.String("tool", name),
				zap.String("request_id", requestID),
				zap.Error(err),
			)
			return textResult(Translate(err)), nil, nil
		}

		zap.L().Debug("tool call complete",
			zap.String("tool", name),
			zap.String("request_id", requestID),
			zap.Duration("duration", time.Since(start)),
		)
		return textResult(truncate(text, h.maxChars)), nil, nil
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// Schema helpers. Input contracts are declared as plain JSON schema maps so
// every constraint (enum, range, pattern, default) is visible at the tool
// definition.

func objectSchema(props map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func patternProp(desc, pattern string) map[string]any {
	return map[string]any{"type": "string", "description": desc, "pattern": pattern}
}

func enumProp(desc string, values []string) map[string]any {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return map[string]any{"type": "string", "description": desc, "enum": enum}
}

func enumListProp(desc string, values []string) map[string]any {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return map[string]any{
		"type":        "array",
		"description": desc,
		"items":       map[string]any{"type": "string", "enum": enum},
	}
}

func boolProp(desc string) map[string]any {
	return map[string]any{"type": "boolean", "description": desc}
}

func numberProp(desc string, min, max float64) map[string]any {
	return map[string]any{
		"type":        "number",
		"description": desc,
		"minimum":     min,
		"maximum":     max,
	}
}

func limitProp() map[string]any {
	return map[string]any{
		"type":        "integer",
		"description": "Maximum number of results to return",
		"minimum":     1,
		"maximum":     100,
		"default":     10,
	}
}

func offsetProp() map[string]any {
	return map[string]any{
		"type":        "integer",
		"description": "Number of results to skip for pagination",
		"minimum":     0,
		"default":     0,
	}
}

// normalizeLimit applies the documented default and bounds.
func normalizeLimit(limit int) (int, error) {
	if limit == 0 {
		return 10, nil
	}
	if limit < 1 || limit > 100 {
		return 0, paramErrorf("limit must be between 1 and 100, got %d", limit)
	}
	return limit, nil
}
