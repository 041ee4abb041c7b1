package campgrounds

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crucial707/campsite/cmd/cli/output"
	"github.com/crucial707/campsite/cmd/cli/root"
	"github.com/crucial707/campsite/internal/db"
	"github.com/crucial707/campsite/internal/repo"
)

var (
	limit  int
	offset int
)

var campgroundsCmd = &cobra.Command{
	Use:   "campgrounds",
	Short: "Inspect campgrounds",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List campgrounds in a table",
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

		camps, err := repo.NewCampgroundRepo(database).ListPaginated(cmd.Context(), limit, offset)
		if err != nil {
			return err
		}

		rows := make([][]interface{}, 0, len(camps))
		for _, c := range camps {
			rows = append(rows, []interface{}{
				c.ID, c.Title, c.Location, fmt.Sprintf("$%.2f", c.Price), c.AuthorName, len(c.Images),
			})
		}
		output.RenderTable([]string{"ID", "Title", "Location", "Price", "Author", "Images"}, rows)
		return nil
	},
}

func init() {
	listCmd.Flags().IntVar(&limit, "limit", 50, "max rows to list")
	listCmd.Flags().IntVar(&offset, "offset", 0, "rows to skip")
	campgroundsCmd.AddCommand(listCmd)
	root.RootCmd.AddCommand(campgroundsCmd)
}
