package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/autoapply/internal/config"
)

var secretsUser string

var secretsCmd = &cobra.Command{
	Use:   "secrets",
	Short: "Manage the Gmail app password in the OS keyring",
	Long:  "The keyring password is used when GMAIL_APP_PASSWORD is not set.",
}

var secretsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the Gmail app password (read from stdin)",
	RunE:  runSecretsSet,
}

var secretsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the stored Gmail app password",
	RunE:  runSecretsDelete,
}

func init() {
	secretsCmd.PersistentFlags().StringVarP(&secretsUser, "user", "u", "", "Gmail address (default: GMAIL_USER)")
	secretsCmd.AddCommand(secretsSetCmd, secretsDeleteCmd)
	rootCmd.AddCommand(secretsCmd)
}

func resolveSecretsUser() (string, error) {
	if secretsUser != "" {
		return secretsUser, nil
	}
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return "", err
	}
	if cfg.Gmail.User == "" {
		return "", errors.New("no Gmail address: pass --user or set GMAIL_USER")
	}
	return cfg.Gmail.User, nil
}

func runSecretsSet(cmd *cobra.Command, args []string) error {
	user, err := resolveSecretsUser()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Gmail app password for %s: ", user)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("read password: %w", err)
	}
	// Gmail displays app passwords in groups of four.
	password := strings.ReplaceAll(strings.TrimSpace(line), " ", "")

	if err := config.StoreGmailPassword(user, password); err != nil {
		return err
	}
	fmt.Printf("Stored app password for %s in keyring service %q.\n", user, config.KeyringService)
	return nil
}

func runSecretsDelete(cmd *cobra.Command, args []string) error {
	user, err := resolveSecretsUser()
	if err != nil {
		return err
	}
	err = config.DeleteGmailPassword(user)
	if errors.Is(err, config.ErrNoSecret) {
		fmt.Printf("No app password stored for %s.\n", user)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("Deleted app password for %s.\n", user)
	return nil
}
