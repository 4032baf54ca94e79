// Validate command: schema-check a string table before release.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <strings.json>",
	Short: "Validate a string table against the common registry",
	Long: `Validate checks a string table resource for dangling reference tokens,
placeholders outside the documented set for their path, and malformed key
identifiers. A clean table is a release gate: the configuration-flow engine
assumes every path it queries exists.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog(args[0])
		if err != nil {
			return err
		}

		problems := c.Validate()
		if flagJSON {
			out := make([]map[string]string, len(problems))
			for i, p := range problems {
				out[i] = map[string]string{"path": p.Path, "message": p.Message}
			}
			if err := printJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
		} else {
			for _, p := range problems {
				fmt.Fprintln(cmd.OutOrStdout(), p.String())
			}
		}

		if len(problems) > 0 {
			return fmt.Errorf("%s: %d problem(s)", args[0], len(problems))
		}
		if !flagJSON {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%d keys)\n", args[0], len(c.Keys()))
		}
		return nil
	},
}
