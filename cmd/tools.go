package main

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tool catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		session, err := connectInMemory(ctx)
		if err != nil {
			return err
		}
		defer session.Close()

		res, err := session.ListTools(ctx, &mcp.ListToolsParams{})
		if err != nil {
			return eris.Wrap(err, "list tools")
		}

		for _, tool := range res.Tools {
			fmt.Printf("%-28s %s\n", tool.Name, tool.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
