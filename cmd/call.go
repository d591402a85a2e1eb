package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

// connectInMemory starts the server on an in-memory transport pair and
// returns a connected client session.
func connectInMemory(ctx context.Context) (*mcp.ClientSession, error) {
	server := newMCPServer()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	if _, err := server.Connect(ctx, serverTransport, nil); err != nil {
		return nil, eris.Wrap(err, "connect server")
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "gpu-mcp-cli", Version: serverVersion}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		return nil, eris.Wrap(err, "connect client")
	}
	return session, nil
}

var callCmd = &cobra.Command{
	Use:   "call <tool> [json-args]",
	Short: "Invoke one tool in-process and print its result",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		toolArgs := map[string]any{}
		if len(args) == 2 {
			if err := json.Unmarshal([]byte(args[1]), &toolArgs); err != nil {
				return eris.Wrap(err, "parse tool arguments")
			}
		}

		session, err := connectInMemory(ctx)
		if err != nil {
			return err
		}
		defer session.Close()

		res, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      args[0],
			Arguments: toolArgs,
		})
		if err != nil {
			return eris.Wrapf(err, "call tool %s", args[0])
		}

		for _, content := range res.Content {
			if text, ok := content.(*mcp.TextContent); ok {
				fmt.Println(text.Text)
			}
		}
		if res.IsError {
			return eris.Errorf("tool %s reported an error", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(callCmd)
}
