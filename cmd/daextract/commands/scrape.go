package commands

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/planport/daextract"
	"github.com/planport/daextract/refdata"
	"github.com/planport/daextract/store"
)

// scrape <dir>: reconstruct records from decoded documents and write them
// to the database, or to stdout as JSON when no database is configured.
// The directory holds one JSON file per document, as produced by the
// document-decoding collaborator.
func scrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape <document-dir>",
		Short: "Reconstruct records from decoded documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := refdata.Default()
			if err != nil {
				return fmt.Errorf("loading reference tables: %w", err)
			}
			engine := daextract.New(tables)

			paths, err := filepath.Glob(filepath.Join(args[0], "*.json"))
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no decoded documents in %s", args[0])
			}
			sort.Strings(paths)

			var records []daextract.Record
			for _, path := range paths {
				doc, err := daextract.OpenDocument(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				recs, warnings, err := engine.Records(doc, doc.SourceURL)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if len(warnings) > 0 {
					log.Printf("%s:\n%s", path, daextract.FormatWarnings(warnings))
				}
				records = append(records, recs...)
			}

			dsn := resolveDatabaseURL()
			if dsn == "" {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			s, err := store.Open(dsn)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			if err := s.Init(ctx); err != nil {
				return err
			}
			if err := s.UpsertAll(ctx, records); err != nil {
				return err
			}
			log.Printf("stored %d records", len(records))
			return nil
		},
	}
}
