package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/registrar/internal/infrastructure/flatfile"
	"github.com/zjrosen/registrar/internal/registry"
)

var seedFilePath string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Print or apply sample registration data",
	Long: `Print the built-in sample data as YAML, or apply a seed file to the
configured data directory. Seeding only takes effect when the data
directory is empty.

Examples:
  # Write the built-in sample to a file for editing
  registrar seed > my-seed.yaml

  # Apply an edited seed to a fresh data directory
  registrar seed --file my-seed.yaml --data-dir ./data`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedFilePath == "" {
			fmt.Print(registry.DefaultSeedYAML())
			return nil
		}

		seed, err := registry.LoadSeedFile(seedFilePath)
		if err != nil {
			return err
		}
		files, err := flatfile.New(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("opening data directory: %w", err)
		}
		svc, err := registry.New(files)
		if err != nil {
			return fmt.Errorf("loading registration data: %w", err)
		}
		defer svc.Close()
		if err := svc.Seed(seed); err != nil {
			return fmt.Errorf("seeding registration data: %w", err)
		}
		fmt.Printf("seeded %s from %s\n", cfg.DataDir, seedFilePath)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFilePath, "file", "f", "", "seed file to apply")
	rootCmd.AddCommand(seedCmd)
}
