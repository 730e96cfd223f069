package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env opcional; las variables ya exportadas tienen prioridad.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:          "portal",
		Short:        "Health records portal: reports, doctor access and chatbot",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(userCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
