// Package report contains the command for one-shot report generation.
package report

import (
	"encoding/json"
	"fmt"

	"github.com/Gustitos/gustitosgo-backend/cmd/root"
	"github.com/Gustitos/gustitosgo-backend/internal/models"
	"github.com/Gustitos/gustitosgo-backend/internal/service"

	"github.com/spf13/cobra"
)

var (
	chainName    string
	startDate    string
	endDate      string
	organization string
	gustazos     bool
	giftcards    bool
	referrals    bool
)

// Cmd is the report command.
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a single merchant chain report",
	Long: `Resolve the given chain name, aggregate matching transactions over
the requested date range and write the report artifact to disk.`,
	Run: reportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&chainName, "chain", "c", "", "Chain name to report on (required)")
	Cmd.Flags().StringVarP(&startDate, "start", "s", "", "Start date, inclusive (required)")
	Cmd.Flags().StringVarP(&endDate, "end", "e", "", "End date, inclusive (required)")
	Cmd.Flags().StringVarP(&organization, "org", "g", "", "Organization filter (optional)")
	Cmd.Flags().BoolVar(&gustazos, "gustazos", true, "Include gustazos in the report")
	Cmd.Flags().BoolVar(&giftcards, "giftcards", true, "Include gift cards in the report")
	Cmd.Flags().BoolVar(&referrals, "referrals", false, "Include referrals in the report")
	_ = Cmd.MarkFlagRequired("chain")
	_ = Cmd.MarkFlagRequired("start")
	_ = Cmd.MarkFlagRequired("end")
}

func reportFunc(cmd *cobra.Command, args []string) {
	svc := service.New(root.Cfg, root.Logger())

	result := svc.GenerateReport(cmd.Context(), models.ReportRequest{
		ChainName:        chainName,
		StartDate:        startDate,
		EndDate:          endDate,
		Organization:     organization,
		IncludeGustazos:  gustazos,
		IncludeGiftcards: giftcards,
		IncludeReferrals: referrals,
	})

	if !result.Success {
		root.Log.Fatalf("Report generation failed: %s", result.Error)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		root.Log.Fatalf("Failed to render result: %v", err)
	}
	fmt.Println(string(out))
}
