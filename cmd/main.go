package main

import (
	"Smart-Shelf-Backend/cmd/config"
	migration "Smart-Shelf-Backend/cmd/database/migrate"
	"Smart-Shelf-Backend/domain"
	"Smart-Shelf-Backend/internal/utils"
	"Smart-Shelf-Backend/pkg/auth"
	"Smart-Shelf-Backend/pkg/jwt"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "smart-shelf",
	Short: "Smart Shelf backend - track groceries before they go bad",
	Long: `Smart Shelf keeps a household's perishable items, ranks them by how soon
they expire and suggests recipes for the ones that need using up.

Running without a subcommand starts the HTTP API.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			log.Info("No .env file found")
		}
		utils.LoadConfigFile(configPath)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the store table in PostgreSQL",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.ConnectDB()
		if err != nil {
			return err
		}
		return migration.Migrate(db)
	},
}

var tokenTTL time.Duration

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a household API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"), tokenTTL)
		token, err := jwtService.GenerateToken(auth.HouseholdSubject, domain.RoleHousehold)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

var hashPassphraseCmd = &cobra.Command{
	Use:   "hash-passphrase [passphrase]",
	Short: "Print the bcrypt hash to put in AUTH_PASSPHRASE_HASH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := auth.HashPassphrase(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the YAML config file")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", jwt.DefaultTokenTTL, "Token lifetime")

	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd, hashPassphraseCmd)
}

func serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := config.OpenStore(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warnf("close store: %v", err)
		}
	}()

	app, err := config.NewApp(ctx, st)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(":" + utils.GetConfig("APP_PORT"))
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}
