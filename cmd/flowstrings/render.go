// Render command: resolve a path and fill its template placeholders.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <strings.json> <path> [name=value ...]",
	Short: "Render a display string with placeholder substitutions",
	Long: `Render resolves a dotted path like lookup, then replaces every {placeholder}
with the given name=value substitutions, the way the configuration-flow
engine does at display time. Extra substitutions are ignored; a placeholder
with no substitution is an error.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog(args[0])
		if err != nil {
			return err
		}

		subs, err := parseSubstitutions(args[2:])
		if err != nil {
			return err
		}

		rendered, err := c.Render(args[1], subs)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(cmd.OutOrStdout(), map[string]string{
				"path":     args[1],
				"rendered": rendered,
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return nil
	},
}
