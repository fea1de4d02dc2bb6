package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/andy/clientdesk/internal/coordinator"
	"github.com/andy/clientdesk/internal/domain"
	"github.com/andy/clientdesk/internal/export"
	"github.com/andy/clientdesk/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
	Long:  `List, show, add, edit, remove, and export clients.`,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients ordered by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		clients, err := appInstance.ClientRepo.FindAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		if len(clients) == 0 {
			fmt.Println("No clients found")
			return nil
		}

		printClientTable(os.Stdout, clients)
		fmt.Printf("\nTotal: %d client(s)\n", len(clients))
		return nil
	},
}

var clientsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one client and its visit count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := findClient(ctx, args[0])
		if err != nil {
			return err
		}

		visits, err := appInstance.VisitRepo.CountByClient(ctx, client.ID)
		if err != nil {
			return fmt.Errorf("failed to count visits: %w", err)
		}

		for _, col := range domain.ClientColumns {
			fmt.Printf("%-12s %s\n", col.Title+":", col.Value(client))
		}
		fmt.Printf("%-12s %d\n", "Visits:", visits)
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		in, err := clientInputFromFlags(cmd, domain.ClientInput{Name: args[0]})
		if err != nil {
			return err
		}

		client, err := validateClient(os.Stderr, in)
		if err != nil {
			return err
		}

		if err := appInstance.ClientRepo.SaveOrUpdate(ctx, client); err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		fmt.Printf("✓ Client created: %s (ID: %d)\n", client.Name, client.ID)
		return nil
	},
}

var clientsEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := findClient(ctx, args[0])
		if err != nil {
			return err
		}

		in, err := clientInputFromFlags(cmd, client.Input())
		if err != nil {
			return err
		}

		updated, err := validateClient(os.Stderr, in)
		if err != nil {
			return err
		}

		if err := appInstance.ClientRepo.SaveOrUpdate(ctx, updated); err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}

		fmt.Printf("✓ Client updated: %s\n", updated.Name)
		return nil
	},
}

var clientsRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Permanently remove a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := findClient(ctx, args[0])
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(coordinator.MsgConfirmRemove) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.ClientRepo.Remove(ctx, client); err != nil {
			if repository.IsIntegrity(err) {
				appInstance.Logger.Warn("client is referenced, not removed",
					zap.Int64("client_id", client.ID), zap.Error(err))
				return errors.New(coordinator.MsgClientReferenced)
			}
			return fmt.Errorf("failed to remove client: %w", err)
		}

		fmt.Printf("✓ Client removed: %s\n", client.Name)
		return nil
	},
}

var clientsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all clients to an .xlsx spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		clients, err := appInstance.ClientRepo.FindAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = filepath.Join(appInstance.Config.Export.OutputDir,
				fmt.Sprintf("clients-%s.xlsx", time.Now().Format("20060102-150405")))
		}

		if err := export.WriteClientsXLSX(output, clients); err != nil {
			return err
		}

		appInstance.Logger.Info("clients exported", zap.String("file", output), zap.Int("count", len(clients)))
		fmt.Printf("✓ Exported %d client(s) to %s\n", len(clients), output)
		return nil
	},
}

func init() {
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsShowCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsEditCmd)
	clientsCmd.AddCommand(clientsRemoveCmd)
	clientsCmd.AddCommand(clientsExportCmd)

	// Add flags
	addClientFlags(clientsAddCmd)

	// Edit flags
	clientsEditCmd.Flags().String("name", "", "New name")
	addClientFlags(clientsEditCmd)

	// Remove flags
	clientsRemoveCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	// Export flags
	clientsExportCmd.Flags().StringP("output", "o", "", "Output file (default: <export dir>/clients-<timestamp>.xlsx)")
}

func addClientFlags(cmd *cobra.Command) {
	cmd.Flags().String("telephone", "", "Telephone number")
	cmd.Flags().String("birth-date", "", "Birth date (dd/mm/yyyy)")
	cmd.Flags().String("cpf", "", "CPF number")
}

// findClient parses a client ID argument and loads the client
func findClient(ctx context.Context, arg string) (*domain.Client, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid client ID: %w", err)
	}

	client, err := appInstance.ClientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client not found")
	}
	return client, nil
}

// clientInputFromFlags overlays the flags that were set onto base.
// Telephone and CPF are formatted with their display masks.
func clientInputFromFlags(cmd *cobra.Command, base domain.ClientInput) (domain.ClientInput, error) {
	in := base
	flags := cmd.Flags()

	if flags.Changed("name") {
		in.Name, _ = flags.GetString("name")
	}
	if flags.Changed("telephone") {
		v, _ := flags.GetString("telephone")
		in.Telephone = domain.ApplyMask(v, domain.TelephoneMask)
	}
	if flags.Changed("cpf") {
		v, _ := flags.GetString("cpf")
		in.CPF = domain.ApplyMask(v, domain.CPFMask)
	}
	if flags.Changed("birth-date") {
		v, _ := flags.GetString("birth-date")
		in.BirthDate = nil
		if v = strings.TrimSpace(v); v != "" {
			d, err := domain.ParseDate(v)
			if err != nil {
				return in, fmt.Errorf("invalid birth date %q, use dd/mm/yyyy", v)
			}
			in.BirthDate = &d
		}
	}
	return in, nil
}

// validateClient validates in, listing each field error on w
func validateClient(w io.Writer, in domain.ClientInput) (*domain.Client, error) {
	client, err := domain.Validate(in)
	if err == nil {
		return client, nil
	}

	var fieldErrs domain.FieldErrors
	if errors.As(err, &fieldErrs) {
		for _, field := range fieldErrs.Fields() {
			fmt.Fprintf(w, "  %s: %s\n", field, fieldErrs[field])
		}
	}
	return nil, fmt.Errorf("invalid client: %w", err)
}

func printClientTable(w io.Writer, clients []*domain.Client) {
	total := 0
	for _, col := range domain.ClientColumns {
		fmt.Fprintf(w, "%-*s ", col.Width, col.Title)
		total += col.Width + 1
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", total))

	for _, client := range clients {
		for _, col := range domain.ClientColumns {
			fmt.Fprintf(w, "%-*s ", col.Width, truncate(col.Value(client), col.Width))
		}
		fmt.Fprintln(w)
	}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
