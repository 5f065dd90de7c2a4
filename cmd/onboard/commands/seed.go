package commands

import (
	"github.com/spf13/cobra"

	"github.com/johnwards/onboard/internal/printer"
	"github.com/johnwards/onboard/internal/seed"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a seed dataset",
	Long: `Load onboardings from a YAML seed file, or the built-in sample dataset
when no file is given. Companies that already have onboardings are skipped,
so seeding twice is harmless.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := seedFile
		if path == "" {
			path = cfg.SeedFile
		}
		if path == "" {
			printer.Step("loading built-in sample dataset")
		} else {
			printer.Step("loading %s", path)
		}
		ds, err := seed.LoadFile(path)
		if err != nil {
			return printer.Error("Cannot read seed data", err.Error())
		}

		s, closeDB, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB()

		res, err := seed.Seed(cmd.Context(), s, ds)
		if err != nil {
			return printer.Error("Seeding failed", err.Error())
		}
		if res.Skipped > 0 {
			printer.Warning("skipped %d onboardings whose company already has one", res.Skipped)
		}
		printer.Success("seeded %d onboardings", res.Created)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "YAML seed file (default: built-in sample, or ONBOARD_SEED_FILE)")
	rootCmd.AddCommand(seedCmd)
}
