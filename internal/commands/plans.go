package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/maheshrc27/realty-crm/internal/plans"
	"github.com/spf13/cobra"
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List the subscription plans and their features",
	RunE: func(cmd *cobra.Command, args []string) error {
		printPlans(cmd.OutOrStdout(), plans.NewCatalog(globalConfig.Stripe.PriceIDs))
		return nil
	},
}

func printPlans(w io.Writer, catalog *plans.Catalog) {
	title := color.New(color.FgCyan, color.Bold)
	missing := color.New(color.FgYellow)

	for _, p := range catalog.List() {
		title.Fprintf(w, "%s (%s)\n", p.Name, p.ID)
		fmt.Fprintf(w, "  leads:    %s\n", limitLabel(plans.LeadLimit(p.Tier)))
		fmt.Fprintf(w, "  seats:    %s\n", limitLabel(plans.SeatLimit(p.Tier)))
		fmt.Fprintf(w, "  features: %s\n", strings.Join(p.Features, ", "))
		if p.StripePriceID == "" {
			missing.Fprintln(w, "  price:    not configured")
		} else {
			fmt.Fprintf(w, "  price:    %s\n", p.StripePriceID)
		}
		fmt.Fprintln(w)
	}
}

func limitLabel(n int) string {
	if n == plans.Unlimited {
		return "unlimited"
	}
	return fmt.Sprint(n)
}
