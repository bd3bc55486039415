package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"netdiag/internal/layer"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the root-cause rule table in priority order",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(loadConfig(cmd))
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tID\tPREDICATE\tEXPLANATION")
		for i, r := range eng.Rules() {
			pred := ""
			if len(r.Match.FailedExactly) > 0 {
				pred += "failed == " + layer.NewSet(r.Match.FailedExactly...).String()
			}
			if len(r.Match.FailedContains) > 0 {
				if pred != "" {
					pred += " and "
				}
				pred += "failed ⊇ " + layer.NewSet(r.Match.FailedContains...).String()
			}
			if len(r.Match.PassedContains) > 0 {
				if pred != "" {
					pred += " and "
				}
				pred += "passed ⊇ " + layer.NewSet(r.Match.PassedContains...).String()
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, r.ID, pred, r.Explanation)
		}
		return w.Flush()
	},
}
