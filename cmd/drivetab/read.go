package main

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	drivetab "github.com/Jumpaku/go-drivetab"
)

func newReadCmd() *cobra.Command {
	var (
		sheet     string
		delimiter string
		noHeader  bool
	)

	cmd := &cobra.Command{
		Use:   "read <url-or-path>",
		Short: "Read a Drive file and print it as CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDelimiter(delimiter)
			if err != nil {
				return err
			}
			tab, err := newDriveTab(cmd.Context())
			if err != nil {
				return err
			}

			table, err := tab.Read(args[0], drivetab.ReadOptions{Sheet: sheet, Delimiter: d, NoHeader: noHeader})
			if err != nil {
				return fmt.Errorf("failed to read '%s': %w", args[0], err)
			}

			w := csv.NewWriter(os.Stdout)
			if err := w.Write(table.Columns()); err != nil {
				return err
			}
			for i := 0; i < table.NumRows(); i++ {
				if err := w.Write(table.Row(i)); err != nil {
					return err
				}
			}
			w.Flush()
			return w.Error()
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet to read from spreadsheet files (default: first)")
	cmd.Flags().StringVar(&delimiter, "delimiter", "", "CSV field delimiter (default: ',')")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "treat the first row as data")
	return cmd
}

func newStatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stat <url-or-path>",
		Short: "Print Drive metadata of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tab, err := newDriveTab(cmd.Context())
			if err != nil {
				return err
			}
			info, err := tab.Stat(args[0])
			if err != nil {
				return fmt.Errorf("failed to stat '%s': %w", args[0], err)
			}
			fmt.Printf("name:\t%s\n", info.Name)
			fmt.Printf("id:\t%s\n", info.ID)
			fmt.Printf("mime:\t%s\n", info.Mime)
			fmt.Printf("size:\t%d\n", info.Size)
			fmt.Printf("modified:\t%s\n", info.ModTime)
			fmt.Printf("parent:\t%s\n", info.ParentID)
			fmt.Printf("link:\t%s\n", info.WebViewLink)
			return nil
		},
	}
	return cmd
}
