// Package resolve contains the command for resolving a chain query.
package resolve

import (
	"fmt"

	"github.com/Gustitos/gustitosgo-backend/cmd/root"
	"github.com/Gustitos/gustitosgo-backend/internal/service"

	"github.com/spf13/cobra"
)

var query string

// Cmd is the resolve command.
var Cmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a free-text chain query to its canonical chain",
	Long: `Resolve a merchant or chain query string against the loaded chain
directory using exact matching with fuzzy fallback.`,
	Run: resolveFunc,
}

func init() {
	Cmd.Flags().StringVarP(&query, "query", "q", "", "Chain or merchant query string (required)")
	_ = Cmd.MarkFlagRequired("query")
}

func resolveFunc(cmd *cobra.Command, args []string) {
	svc := service.New(root.Cfg, root.Logger())

	chain := svc.ResolveChain(query)
	fmt.Println(chain)
}
