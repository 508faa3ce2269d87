package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planport/daextract/fetch"
)

// links <register-url>: discover the PDF documents linked from a register
// page.
func linksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "links <register-url>",
		Short: "List notice documents linked from a register page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			links, err := fetch.New().DocumentLinks(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, link := range links {
				fmt.Println(link)
			}
			return nil
		},
	}
}
