package seed

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crucial707/campsite/cmd/cli/root"
	"github.com/crucial707/campsite/internal/db"
	"github.com/crucial707/campsite/internal/seed"
)

var count int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Wipe and repopulate the campgrounds table with sample data",
	Long: "Deletes every campground (and its reviews) and inserts synthetic " +
		"listings owned by a seed account. Destructive; meant for development databases.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbURL := os.Getenv("DB_URL")
		if dbURL == "" {
			return errors.New("DB_URL is required")
		}

		database, err := db.Connect(dbURL, 5, 2)
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		defer database.Close()

		if err := db.Run(dbURL); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		if err := seed.Run(cmd.Context(), database, count); err != nil {
			return err
		}

		fmt.Printf("Seeded %d campgrounds\n", count)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&count, "count", seed.DefaultCount, "number of campgrounds to create")
	root.RootCmd.AddCommand(seedCmd)
}
