package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/andy/clientdesk/internal/crypto"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset data in the database",
	Long: `Reset data in the database.

Examples:
  clientdesk reset visits    # Delete all recorded visits
  clientdesk reset all       # Wipe everything: visits and clients
  clientdesk reset all --forget-key   # Delete the database file and its stored key`,
}

var resetVisitsCmd = &cobra.Command{
	Use:   "visits",
	Short: "Delete all recorded visits",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL recorded visits. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := clearTables("visit"); err != nil {
			return err
		}

		fmt.Println("All visits have been deleted.")
		return nil
	},
}

var resetAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Delete ALL data: visits and clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		forgetKey, _ := cmd.Flags().GetBool("forget-key")

		if !confirmPrompt("This will delete ALL data (clients and visits). Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if forgetKey {
			return forgetDatabase(crypto.NewKeyring())
		}

		// Order matters due to foreign keys
		if err := clearTables("visit", "client"); err != nil {
			return err
		}

		fmt.Println("All data has been deleted.")
		return nil
	},
}

func clearTables(tables ...string) error {
	db := appInstance.DB
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// forgetDatabase removes the database file and its key so the next start sets up a
// fresh database with a new password
func forgetDatabase(kr crypto.Keyring) error {
	if err := appInstance.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	path := appInstance.Config.Database.Path
	for _, f := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", f, err)
		}
	}
	appInstance.Logger.Info("database removed", zap.String("path", path))

	if err := kr.DeleteKey(); err != nil && !errors.Is(err, crypto.ErrKeyNotFound) {
		fmt.Printf("Database deleted, but the key was not removed: %v\n", err)
		return nil
	}

	fmt.Println("Database and encryption key have been deleted.")
	return nil
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	resetCmd.AddCommand(resetVisitsCmd)
	resetCmd.AddCommand(resetAllCmd)

	resetAllCmd.Flags().Bool("forget-key", false, "Also delete the database file and its stored encryption key")
}
