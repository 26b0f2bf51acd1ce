// Command drivetab reads and writes tabular files on Google Drive from the
// command line.
//
// Credentials are taken from the GOOGLE_DRIVE_CREDENTIALS environment
// variable, which must hold the full JSON text of a service-account key.
// A .env file in the working directory is loaded first if present.
package main

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	drivetab "github.com/Jumpaku/go-drivetab"
)

var rootCmd = &cobra.Command{
	Use:   "drivetab",
	Short: "Read and write tabular files on Google Drive",
	Long: `drivetab reads and writes CSV and XLSX files on Google Drive.

Files are addressed by Drive URL or by logical path, a slash-separated
sequence of names rooted at a shared drive, for example:

  drive_name/folder1/folder2/file_name.csv

The shared drive and its files must be shared with the service account
identified by GOOGLE_DRIVE_CREDENTIALS.`,
	SilenceUsage: true,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newReadCmd())
	rootCmd.AddCommand(newWriteCmd())
	rootCmd.AddCommand(newUploadCmd())
	rootCmd.AddCommand(newStatCmd())
}

func newDriveTab(ctx context.Context) (*drivetab.DriveTab, error) {
	// Missing .env is fine; the variable may be set in the environment.
	_ = godotenv.Load()

	credentials, err := drivetab.CredentialsFromEnv()
	if err != nil {
		return nil, err
	}
	service, err := drivetab.NewService(ctx, credentials)
	if err != nil {
		return nil, err
	}
	return drivetab.New(service), nil
}

func parseDelimiter(s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	d, size := utf8.DecodeRuneInString(s)
	if size != len(s) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return d, nil
}
