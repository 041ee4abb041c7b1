package users

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

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Inspect user accounts",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List users in a table",
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

		list, err := repo.NewUserRepo(database).List(cmd.Context())
		if err != nil {
			return err
		}

		rows := make([][]interface{}, 0, len(list))
		for _, u := range list {
			rows = append(rows, []interface{}{u.ID, u.Username, u.Email, u.CreatedAt.Format("2006-01-02")})
		}
		output.RenderTable([]string{"ID", "Username", "Email", "Created"}, rows)
		return nil
	},
}

func init() {
	usersCmd.AddCommand(listCmd)
	root.RootCmd.AddCommand(usersCmd)
}
