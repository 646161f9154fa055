package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
)

func TestRegistry_Register_Apply(t *testing.T) {
	out := &bytes.Buffer{}
	statusCmd := &cobra.Command{
		Use:   "inventory:check",
		Short: "Report stock levels",
		Run: func(c *cobra.Command, args []string) {
			out.WriteString("stock ok")
		},
	}
	Register(statusCmd)
	Apply()

	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"inventory:check"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.String() != "stock ok" {
		t.Errorf("output = %q, want %q", out.String(), "stock ok")
	}
}
