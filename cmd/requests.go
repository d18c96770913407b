package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/luminar/internal/store"
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Inspect the local journal of server requests",
}

var requestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		action, _ := cmd.Flags().GetString("action")

		rt, err := newRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		events, err := rt.store.RequestRepo().QueryRequests(cmd.Context(), store.QueryOpts{
			Limit:  limit,
			Action: action,
		})
		if err != nil {
			return fmt.Errorf("query requests: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No requests found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-12s  %-6s  %-18s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Action", "Method", "Path", "Status", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 92))

		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			status := "-"
			if e.StatusCode != 0 {
				status = strconv.Itoa(e.StatusCode)
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-12s  %-6s  %-18s  %-6s  %-7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Action,
				e.Method,
				e.Path,
				status,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var requestsViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one journal entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		rt, err := newRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		e, err := rt.store.RequestRepo().GetRequest(cmd.Context(), id)
		if errors.Is(err, store.ErrEventNotFound) {
			return fmt.Errorf("request %d not found", id)
		}
		if err != nil {
			return fmt.Errorf("get request: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:         %d\n", e.ID)
		fmt.Fprintf(out, "Time:       %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Request ID: %s\n", e.RequestID)
		fmt.Fprintf(out, "Action:     %s\n", e.Action)
		fmt.Fprintf(out, "Endpoint:   %s %s\n", e.Method, e.Path)
		fmt.Fprintf(out, "Status:     %d\n", e.StatusCode)
		fmt.Fprintf(out, "Latency:    %dms\n", e.LatencyMs)
		fmt.Fprintf(out, "Success:    %v\n", e.Success)
		if e.ErrorKind != "" {
			fmt.Fprintf(out, "Error kind: %s\n", e.ErrorKind)
		}
		if e.ErrorMessage != "" {
			fmt.Fprintf(out, "Error:      %s\n", e.ErrorMessage)
		}
		return nil
	},
}

func init() {
	requestsListCmd.Flags().Int("limit", 20, "Maximum number of requests to show")
	requestsListCmd.Flags().String("action", "", "Only show one action (register, login, profile, submit_test)")

	requestsCmd.AddCommand(requestsListCmd)
	requestsCmd.AddCommand(requestsViewCmd)
}
