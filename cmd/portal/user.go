package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	mem "health-records-portal/internal/adapters/storage/memory"
	"health-records-portal/internal/adapters/storage/sqlstore"
	"health-records-portal/internal/domain/users"
)

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a patient or doctor account",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			in := users.RegisterInput{}
			in.Username, _ = flags.GetString("username")
			in.Email, _ = flags.GetString("email")
			in.Password, _ = flags.GetString("password")
			in.Role, _ = flags.GetString("role")
			in.FullName, _ = flags.GetString("full-name")

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := openStore(cmd.Context(), cfg, cfg.AutoMigrate)
			if err != nil {
				return err
			}

			var repo users.Repository
			if db != nil {
				defer db.Close()
				repo = sqlstore.NewUsersRepo(db)
			} else {
				fmt.Fprintln(cmd.ErrOrStderr(), "WARNING: DB_DRIVER not set, the user only lives for this process.")
				repo = mem.NewUserRepo()
			}

			u, err := users.NewService(repo).Register(cmd.Context(), in)
			switch {
			case err == nil:
			case errors.Is(err, users.ErrDuplicate):
				return errors.New("a user with that username or email already exists")
			default:
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %q with id %d.\n", u.Role, u.Email, u.ID)
			return nil
		},
	}
	createCmd.Flags().String("username", "", "Login name (4-64 chars)")
	createCmd.Flags().String("email", "", "Email address")
	createCmd.Flags().String("password", "", "Password (8-72 chars)")
	createCmd.Flags().String("role", "patient", "patient or doctor")
	createCmd.Flags().String("full-name", "", "Display name")
	for _, f := range []string{"username", "email", "password", "full-name"} {
		_ = createCmd.MarkFlagRequired(f)
	}
	cmd.AddCommand(createCmd)

	return cmd
}
