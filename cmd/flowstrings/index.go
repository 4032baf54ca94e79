// Index command: maintain the cross-integration catalog index.
package main

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/emberlink/flowstrings/internal/index"
	"github.com/emberlink/flowstrings/pkg/strtab"
)

// tableFileName is the file each integration directory is scanned for.
const tableFileName = "strings.json"

var indexReport bool

var indexCmd = &cobra.Command{
	Use:   "index [dir ...]",
	Short: "Index integration string tables into the catalog database",
	Long: `Index scans each directory tree for strings.json files, loads every table
it finds, and records its entries in the catalog index under the
integration domain (the table's parent directory name). Re-indexing a
domain replaces its previous snapshot.

With --report, prints every indexed reference token that fails to resolve,
across all domains, and exits non-zero if any exist.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !indexReport && len(args) == 0 {
			return fmt.Errorf("nothing to do: pass directories to index or --report")
		}

		dataDir, err := resolveDataDir()
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
		store, err := index.Open(dataDir)
		if err != nil {
			return err
		}
		defer store.Close()

		reg, err := resolveRegistry()
		if err != nil {
			return err
		}

		for _, dir := range args {
			if err := indexTree(cmd, store, reg, dir); err != nil {
				return err
			}
		}

		if indexReport {
			return reportDangling(cmd, store)
		}
		return nil
	},
}

func init() {
	indexCmd.Flags().BoolVar(&indexReport, "report", false, "report dangling references across all indexed domains")
}

// indexTree walks one directory tree and imports every strings.json found.
func indexTree(cmd *cobra.Command, store *index.Store, reg strtab.Registry, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != tableFileName {
			return nil
		}

		table, err := strtab.Load(path)
		if err != nil {
			return err
		}
		domain := filepath.Base(filepath.Dir(path))
		snap, err := store.ImportCatalog(domain, path, strtab.NewCatalog(table, reg))
		if err != nil {
			return fmt.Errorf("indexing %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "indexed %s: %d keys (snapshot %s)\n",
			domain, snap.Entries, snap.SnapshotID)
		return nil
	})
}

// reportDangling prints unresolved references across every indexed domain.
func reportDangling(cmd *cobra.Command, store *index.Store) error {
	dangling, err := store.DanglingReferences()
	if err != nil {
		return err
	}

	if flagJSON {
		out := make([]map[string]string, len(dangling))
		for i, e := range dangling {
			out[i] = map[string]string{
				"domain":  e.Domain,
				"path":    e.Path,
				"target":  e.RefTarget,
				"problem": e.Problem,
			}
		}
		if err := printJSON(cmd.OutOrStdout(), out); err != nil {
			return err
		}
	} else {
		for _, e := range dangling {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s\n", e.Domain, e.Path, e.RefTarget)
		}
	}

	if len(dangling) > 0 {
		return fmt.Errorf("%d dangling reference(s)", len(dangling))
	}
	if !flagJSON {
		fmt.Fprintln(cmd.OutOrStdout(), "no dangling references")
	}
	return nil
}
