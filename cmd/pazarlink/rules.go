package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pazarlink/pazarlink/internal/cli"
	"github.com/pazarlink/pazarlink/internal/common"
	"github.com/pazarlink/pazarlink/internal/pattern"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage custom extraction rules",
		Long: `Custom extraction rules split codes that the built-in separator heuristics
cannot. Each rule is a declarative record: a match expression with capture
groups plus base/variant templates like $1 "-" $2. Rules are configured under
detector.rules in the config file.`,
	}

	cmd.AddCommand(rulesListCmd())
	cmd.AddCommand(rulesTestCmd())

	return cmd
}

func rulesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured extraction rules",
		RunE: func(_ *cobra.Command, _ []string) error {
			records, err := configuredRules()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No extraction rules configured."))
				return nil
			}

			// Compile to surface configuration errors here, not mid-analysis.
			if _, err := pattern.NewRuleSet(records); err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "NAME\tEXPRESSION\tBASE\tVARIANT\tPRIORITY\tACTIVE")
			for _, r := range records {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%v\n",
					r.Name, r.MatchExpression, r.BaseRule, r.VariantRule, r.Priority, r.IsActive)
			}
			return w.Flush()
		},
	}
}

func rulesTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test <code>",
		Short: "Test the configured rules against a code",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			records, err := configuredRules()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return fmt.Errorf("%w: no extraction rules under detector.rules", common.ErrMissingConfig)
			}

			rules, err := pattern.NewRuleSet(records)
			if err != nil {
				return err
			}

			base, variant, ok := rules.Apply(args[0])
			if !ok {
				fmt.Println(cli.FormatWarning("no rule matched " + args[0]))
				return nil
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("base=%q variant=%q", base, variant)))
			return nil
		},
	}
}
