// Package main запускает API фитнес-менеджера и служебные команды миграций.
//
// @title Fitness Manager API
// @version 1.0
// @description REST API для клиентов, диет, продуктов питания, упражнений, тренировок и товаров.
// @description Все пути под /api требуют токен Supabase в заголовке Authorization.
// @host localhost:8080
// @BasePath /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "fitness-manager",
		Short:         "Fitness business management API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config (defaults to $CONFIG_PATH)")

	rootCmd.AddCommand(
		serveCmd(&configPath),
		migrateCmd(&configPath),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
