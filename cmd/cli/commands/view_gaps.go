package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rhysmorgan-dev/magor-rota/pkg/core/services"
)

// ViewGapsCmd creates the viewGaps command
func ViewGapsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewGaps <week_commencing>",
		Short: "View the stored coverage gaps for a week (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			week := args[0]

			app.Logger.Debug("viewGaps command", zap.String("week_commencing", week))

			gaps, err := services.ViewGaps(app.Ctx, app.Database, app.Logger, week)
			if err != nil {
				return fmt.Errorf("failed to view gaps: %w", err)
			}

			if len(gaps) == 0 {
				fmt.Printf("\n✅ No coverage gaps recorded for week %s\n\n", week)
				return nil
			}

			fmt.Printf("\n⚠️  Coverage Gaps for week %s (%d):\n\n", week, len(gaps))
			for _, g := range gaps {
				fmt.Printf("%s / %s: %d missing\n", g.ShiftBlock, g.Area, g.MissingCount)
				for i, rec := range g.Recommendations {
					fmt.Printf("  %d. %s (score %d)\n", i+1, rec.Name, rec.Score)
				}
				fmt.Println()
			}

			return nil
		},
	}
}
