package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/gpu-mcp/internal/config"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"serve", "tools", "call"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "gpu-mcp", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)

	flag = serveCmd.Flags().Lookup("transport")
	require.NotNil(t, flag, "serve command should have --transport flag")
	assert.Equal(t, "", flag.DefValue)
}

func TestCallCommand_ArgBounds(t *testing.T) {
	assert.Error(t, callCmd.Args(callCmd, nil))
	assert.NoError(t, callCmd.Args(callCmd, []string{"search_territories"}))
	assert.NoError(t, callCmd.Args(callCmd, []string{"search_territories", "{}"}))
	assert.Error(t, callCmd.Args(callCmd, []string{"a", "b", "c"}))
}

func TestConnectInMemory_ListsTools(t *testing.T) {
	c, err := config.Load()
	require.NoError(t, err)
	cfg = c

	session, err := connectInMemory(context.Background())
	require.NoError(t, err)
	defer session.Close()

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Tools)
}
