package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/porticus-lab/go-casepdf/internal/pdfcheck"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file.pdf>...",
		Short: "Check that saved files are complete PDFs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					fmt.Fprintf(out, "%s: %v\n", path, err)
					failed++
					continue
				}
				info, err := pdfcheck.Verify(data)
				if err != nil {
					fmt.Fprintf(out, "%s: invalid: %v\n", path, err)
					failed++
					continue
				}
				fmt.Fprintf(out, "%s: ok, PDF-%s, %d bytes", path, info.Version, info.Size)
				if info.Pages > 0 {
					fmt.Fprintf(out, ", %d pages", info.Pages)
				}
				fmt.Fprintln(out)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed verification", failed, len(args))
			}
			return nil
		},
	}
}
