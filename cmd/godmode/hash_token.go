package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Papalexios/sota-god-mode/internal/config"
)

var hashTokenCmd = &cobra.Command{
	Use:   "hash-token <token>",
	Short: "Hash an access token for server configuration",
	Long:  "Produces the bcrypt hash of an operator access token, suitable for the ACCESS_TOKEN_HASH environment variable consumed by serve.",
	Args:  cobra.ExactArgs(1),
	RunE:  runHashToken,
}

func init() {
	rootCmd.AddCommand(hashTokenCmd)
}

func runHashToken(_ *cobra.Command, args []string) error {
	tokenConfig, err := config.NewTokenConfig()
	if err != nil {
		return fmt.Errorf("failed to create token config: %w", err)
	}

	hash, err := tokenConfig.HashToken(args[0])
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(os.Stdout, hash)
	return nil
}
