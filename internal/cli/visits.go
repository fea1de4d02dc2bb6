package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andy/clientdesk/internal/domain"
	"github.com/spf13/cobra"
)

var visitsCmd = &cobra.Command{
	Use:   "visits",
	Short: "Record and list client visits",
	Long: `Record and list client visits.

A client with recorded visits cannot be removed.`,
}

var visitsAddCmd = &cobra.Command{
	Use:   "add [client-id]",
	Short: "Record a visit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := findClient(ctx, args[0])
		if err != nil {
			return err
		}

		day := time.Now()
		if cmd.Flags().Changed("date") {
			s, _ := cmd.Flags().GetString("date")
			day, err = domain.ParseDate(strings.TrimSpace(s))
			if err != nil {
				return fmt.Errorf("invalid date %q, use dd/mm/yyyy", s)
			}
		}
		notes, _ := cmd.Flags().GetString("notes")

		visit := domain.NewVisit(client.ID, day, notes)
		if err := visit.Validate(); err != nil {
			return fmt.Errorf("invalid visit: %w", err)
		}

		if err := appInstance.VisitRepo.Create(ctx, visit); err != nil {
			return fmt.Errorf("failed to record visit: %w", err)
		}

		fmt.Printf("✓ Visit recorded for %s on %s (ID: %d)\n",
			client.Name, domain.FormatDate(visit.VisitedAt), visit.ID)
		return nil
	},
}

var visitsListCmd = &cobra.Command{
	Use:   "list [client-id]",
	Short: "List a client's visits, most recent first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := findClient(ctx, args[0])
		if err != nil {
			return err
		}

		visits, err := appInstance.VisitRepo.ListByClient(ctx, client.ID)
		if err != nil {
			return fmt.Errorf("failed to list visits: %w", err)
		}

		if len(visits) == 0 {
			fmt.Printf("No visits for %s\n", client.Name)
			return nil
		}

		fmt.Printf("%-5s %-11s %s\n", "ID", "Date", "Notes")
		fmt.Println("------------------------------------------------------------")
		for _, v := range visits {
			fmt.Printf("%-5d %-11s %s\n", v.ID, domain.FormatDate(v.VisitedAt), truncate(v.Notes, 50))
		}

		fmt.Printf("\nTotal: %d visit(s)\n", len(visits))
		return nil
	},
}

func init() {
	visitsCmd.AddCommand(visitsAddCmd)
	visitsCmd.AddCommand(visitsListCmd)

	visitsAddCmd.Flags().String("date", "", "Visit date (dd/mm/yyyy, default today)")
	visitsAddCmd.Flags().String("notes", "", "Notes about the visit")
}
