package cmd

import (
	"sync"

	"github.com/spf13/cobra"

	"restaurant.GO/core/registry"
)

var mu sync.Mutex

func getCommands() []*cobra.Command {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCmd); ok && v != nil {
		return v.([]*cobra.Command)
	}
	return nil
}

// Register adds a command to the CLI. Call from init(); panics once
// Apply has locked the registry.
func Register(c *cobra.Command) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		panic("cmd/registry: locked (register only during init before Apply)")
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCmd, append(getCommands(), c))
}

// Apply attaches all registered commands to the root command and
// locks the registry.
func Apply() {
	for _, c := range getCommands() {
		rootCmd.AddCommand(c)
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
}
