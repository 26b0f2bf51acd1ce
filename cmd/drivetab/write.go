package main

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	drivetab "github.com/Jumpaku/go-drivetab"
)

func newWriteCmd() *cobra.Command {
	var (
		overwrite bool
		sheet     string
		delimiter string
		noHeader  bool
	)

	cmd := &cobra.Command{
		Use:   "write <local-csv> <drive-path>",
		Short: "Write a local CSV file to Drive as CSV or XLSX",
		Long: `Read a local CSV file and write it to the given Drive path. The output
format is implied by the Drive path's extension (".csv" or ".xlsx").`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDelimiter(delimiter)
			if err != nil {
				return err
			}
			table, err := readLocalCSV(args[0])
			if err != nil {
				return err
			}
			tab, err := newDriveTab(cmd.Context())
			if err != nil {
				return err
			}

			link, err := tab.Write(table, args[1], overwrite, drivetab.WriteOptions{Sheet: sheet, Delimiter: d, NoHeader: noHeader})
			if err != nil {
				return fmt.Errorf("failed to write '%s': %w", args[1], err)
			}
			fmt.Println(link)
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite an existing file")
	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet name in written XLSX files (default: \"Sheet1\")")
	cmd.Flags().StringVar(&delimiter, "delimiter", "", "CSV field delimiter in the written file (default: ',')")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "omit the header row")
	return cmd
}

func newUploadCmd() *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "upload <local-file> <drive-path>",
		Short: "Upload a local file to Drive as-is",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tab, err := newDriveTab(cmd.Context())
			if err != nil {
				return err
			}
			link, err := tab.Upload(args[0], args[1], overwrite)
			if err != nil {
				return fmt.Errorf("failed to upload '%s': %w", args[0], err)
			}
			fmt.Println(link)
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite an existing file")
	return cmd
}

func readLocalCSV(path string) (*drivetab.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open '%s': %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse '%s': %w", path, err)
	}
	if len(records) == 0 {
		return drivetab.NewTable(nil, nil)
	}
	return drivetab.NewTable(records[0], records[1:])
}
