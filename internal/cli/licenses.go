package cli

import (
	"fmt"

	"github.com/pkgforge-labs/pyforge/internal/license"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(licensesCmd)
}

var licensesCmd = &cobra.Command{
	Use:   "licenses",
	Short: "List supported license keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, key := range license.Keys() {
			url, err := license.URLFor(key)
			if err != nil {
				return err
			}
			fmt.Printf("%-12s %s\n", key, url)
		}
		return nil
	},
}
