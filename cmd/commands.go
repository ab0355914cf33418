package main

import (
	"context"
	"fmt"
	"github.com/spf13/cobra"
	"lookescolar-server/config"
	"lookescolar-server/internal/security"
	"lookescolar-server/internal/util"
	"os"
)

const configEnv = "LOOKESCOLAR_CONFIG"

var configPath string

var rootCmd = &cobra.Command{
	Use:           "lookescolar",
	Short:         "Бэкенд фотосервиса школьных событий",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запуск HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Применение миграций БД",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := config.SetupDatabase(&cfg.DatabaseConfig)
		if err != nil {
			return err
		}
		defer closeQuietly("database", db.Close)

		return config.RunMigrations(db)
	},
}

var retentionDays int

var cleanupCmd = &cobra.Command{
	Use:   "cleanup-tokens",
	Short: "Удаление давно истёкших токенов и старых записей журнала доступа",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if retentionDays > 0 {
			cfg.Tokens.RetentionDays = retentionDays
		}
		return cleanupTokens(cmd.Context(), cfg)
	},
}

var adminUUID string

var issueAdminTokenCmd = &cobra.Command{
	Use:   "issue-admin-token",
	Short: "Выпуск подписанного JWT администратора для маршрутов /api/admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		token, err := security.NewJWTService(&cfg.JWT).IssueToken(adminUUID)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "путь к config.yaml (переменная "+configEnv+")")
	cleanupCmd.Flags().IntVar(&retentionDays, "retention-days", 0, "переопределить tokens.retention_days")
	issueAdminTokenCmd.Flags().StringVar(&adminUUID, "admin-uuid", "", "UUID администратора")
	_ = issueAdminTokenCmd.MarkFlagRequired("admin-uuid")

	rootCmd.AddCommand(serveCmd, migrateCmd, cleanupCmd, issueAdminTokenCmd)
}

// Execute : точка входа CLI
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		util.Logger.WithError(err).Error("команда завершилась с ошибкой")
		os.Exit(1)
	}
}

// loadConfig : флаг --config, затем LOOKESCOLAR_CONFIG, затем ./config.yaml
func loadConfig() (*config.AppConfig, error) {
	path := configPath
	if path == "" {
		path = os.Getenv(configEnv)
	}
	if path == "" {
		path = "config.yaml"
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию %s: %w", path, err)
	}

	util.ConfigureLogger(cfg.Log.Level, cfg.Log.Format)
	return cfg, nil
}

func closeQuietly(name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		util.Logger.WithError(err).Warnf("не удалось закрыть %s", name)
	}
}
