package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rhysmorgan-dev/magor-rota/pkg/core/services"
)

// GenerateRotaCmd creates the generateRota command
func GenerateRotaCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateRota <week_commencing>",
		Short: "Generate the weekly rota for the given week (YYYY-MM-DD)",
		Long:  "Run the allocation engine against the week's line plan and staff plan, then store the resulting rota, gaps and history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			week := args[0]
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			app.Logger.Debug("generateRota command",
				zap.String("week_commencing", week),
				zap.Bool("dry_run", dryRun))

			result, err := services.GenerateRota(app.Ctx, app.Database, app.Cfg.Scheduling, app.Logger, week, dryRun)
			if err != nil {
				return fmt.Errorf("rota generation failed: %w", err)
			}

			fmt.Printf("\n🎯 Weekly Rota Results\n\n")
			fmt.Printf("Week Commencing: %s\n", result.WeekCommencing)
			fmt.Printf("Pool Size:       %d operators\n", result.PoolCount)
			fmt.Printf("Allocated:       %d slots\n", result.AllocatedCount)
			fmt.Printf("Gaps:            %d\n", result.GapCount)
			if dryRun {
				fmt.Printf("Mode:            🧪 DRY RUN (not saved)\n")
			} else {
				fmt.Printf("Status:          ✅ SAVED (previous rota for this week replaced)\n")
			}
			fmt.Println()

			// Group allocations by shift block for display
			byBlock := make(map[string][]string)
			for _, a := range result.Allocations {
				who := a.OperatorName
				if who == "" {
					who = a.AssignedTo
				}
				line := fmt.Sprintf("%-28s %s", a.Area, who)
				byBlock[string(a.ShiftBlock)] = append(byBlock[string(a.ShiftBlock)], line)
			}
			for _, block := range []string{"DAY1", "DAY2", "NIGHT1", "NIGHT2"} {
				lines := byBlock[block]
				if len(lines) == 0 {
					continue
				}
				fmt.Printf("%s:\n", block)
				for _, line := range lines {
					fmt.Printf("  %s\n", line)
				}
				fmt.Println()
			}

			if len(result.Gaps) > 0 {
				fmt.Printf("⚠️  Coverage Gaps (%d):\n", len(result.Gaps))
				for _, g := range result.Gaps {
					fmt.Printf("  %s / %s: %d missing", g.ShiftBlock, g.Area, g.MissingCount)
					if len(g.Recommendations) > 0 {
						fmt.Printf(" (try: ")
						for i, rec := range g.Recommendations {
							if i > 0 {
								fmt.Printf(", ")
							}
							fmt.Printf("%s", rec.Name)
						}
						fmt.Printf(")")
					}
					fmt.Println()
				}
				fmt.Println()
			}

			if dryRun {
				fmt.Println("💡 This was a dry run. Use without --dry-run to save the rota.")
			}

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Run without saving to database")

	return cmd
}
