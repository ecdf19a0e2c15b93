package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"syscall"
	"time"

	"github.com/golang-jwt/jwt/v5"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"clubhouse/internal/app"
	internaldb "clubhouse/internal/db"
	"clubhouse/internal/db/repository"
	"clubhouse/internal/domain"
)

// addDBFlag registers the shared --db flag on a command's flag set.
func addDBFlag(fs *pflag.FlagSet, dbPath *string) {
	fs.StringVar(dbPath, "db", "clubhouse.sqlite", "path to the SQLite database file")
}

// openMigrated opens the store and brings the schema up to date. One reader
// connection is enough for CLI use.
func openMigrated(dbPath string) (write, read *sql.DB, err error) {
	write, read, err = internaldb.Open(dbPath, 1)
	if err != nil {
		return nil, nil, err
	}
	if err := internaldb.RunMigrations(write); err != nil {
		_ = write.Close()
		_ = read.Close()
		return nil, nil, err
	}
	return write, read, nil
}

func newMigrateCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			writeDB, readDB, err := openMigrated(dbPath)
			if err != nil {
				return err
			}
			defer writeDB.Close()
			defer readDB.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
	addDBFlag(cmd.Flags(), &dbPath)
	return cmd
}

func newCreateAdminCmd() *cobra.Command {
	var (
		dbPath   string
		email    string
		username string
		name     string
	)

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an ADMIN account, or promote the user if it already exists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			writeDB, readDB, err := openMigrated(dbPath)
			if err != nil {
				return err
			}
			defer writeDB.Close()
			defer readDB.Close()

			users := repository.NewUserRepo(writeDB, readDB)
			ctx := cmd.Context()

			existing, err := users.GetByEmail(ctx, email)
			if err == nil {
				if err := users.SetRole(ctx, existing.ID, domain.RoleAdmin); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "promoted %s (id %d) to ADMIN\n", email, existing.ID)
				return nil
			}
			if _, ok := err.(*domain.NotFoundError); !ok {
				return err
			}

			req := domain.CreateUserRequest{
				Email:       email,
				Username:    username,
				DisplayName: name,
			}
			if err := req.Validate(); err != nil {
				return err
			}
			u := &domain.User{
				Email:       email,
				Username:    username,
				DisplayName: name,
				Role:        domain.RoleAdmin,
			}
			created, err := users.Create(ctx, u)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created ADMIN %s (id %d)\n", email, created.ID)
			return nil
		},
	}
	addDBFlag(cmd.Flags(), &dbPath)
	cmd.Flags().StringVar(&email, "email", "", "email address of the admin account")
	cmd.Flags().StringVar(&username, "username", "", "username of the admin account")
	cmd.Flags().StringVar(&name, "name", "", "display name of the admin account")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newSeedCmd() *cobra.Command {
	var (
		dbPath   string
		seedFile string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Apply a YAML seed file of users and events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			writeDB, readDB, err := openMigrated(dbPath)
			if err != nil {
				return err
			}
			defer writeDB.Close()
			defer readDB.Close()

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			users := repository.NewUserRepo(writeDB, readDB)
			events := repository.NewEventRepo(writeDB, readDB)
			return app.Seed(cmd.Context(), seedFile, users, events, logger)
		},
	}
	addDBFlag(cmd.Flags(), &dbPath)
	cmd.Flags().StringVar(&seedFile, "file", "seed.yaml", "path to the YAML seed file")
	return cmd
}

func newMintTokenCmd() *cobra.Command {
	var (
		subject string
		issuer  string
		email   string
		name    string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "mint-token",
		Short: "Mint an HS256 dev token for local testing",
		Long:  "Mints an HS256-signed JWT accepted by a server running with the same JWT_SECRET. The secret is read from JWT_SECRET or prompted for.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret := os.Getenv("JWT_SECRET")
			if secret == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "JWT secret: ")
				raw, err := term.ReadPassword(int(syscall.Stdin))
				fmt.Fprintln(cmd.ErrOrStderr())
				if err != nil {
					return fmt.Errorf("read secret: %w", err)
				}
				secret = string(raw)
			}
			if secret == "" {
				return fmt.Errorf("JWT secret is required")
			}

			now := time.Now()
			claims := jwt.MapClaims{
				"sub":   subject,
				"iss":   issuer,
				"email": email,
				"iat":   now.Unix(),
				"exp":   now.Add(ttl).Unix(),
			}
			if name != "" {
				claims["name"] = name
			}

			token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
			signed, err := token.SignedString([]byte(secret))
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "sub", "", "subject (external user id) claim")
	cmd.Flags().StringVar(&issuer, "iss", "clubhouse-dev", "issuer claim")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().StringVar(&name, "name", "", "name claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("sub")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
