package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jetsetgo/dispatchdesk/internal/client"
	"github.com/jetsetgo/dispatchdesk/internal/report"
	"github.com/jetsetgo/dispatchdesk/internal/tui"
	"github.com/jetsetgo/dispatchdesk/internal/view"
)

// ErrUnhealthy is returned by the health command when the backend reports a non-healthy status.
var ErrUnhealthy = errors.New("backend is unhealthy")

// NewHealthCmd creates the health command.
func NewHealthCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable and healthy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveOutputFormat(output)
			if err != nil {
				return err
			}
			api, err := newAPIClient(cmd)
			if err != nil {
				return err
			}
			h, err := api.Health(cmd.Context())
			if err != nil {
				return healthError(api, err)
			}

			out := cmd.OutOrStdout()
			if format == OutputTable {
				renderHealth(out, detectOutputMode(out), api.BaseURL(), h)
			} else if err = writeJSON(out, h); err != nil {
				return err
			}
			if !h.Healthy() {
				return fmt.Errorf("%w: status %q", ErrUnhealthy, h.Status)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table or json")
	return cmd
}

// healthError explains the health endpoint's error statuses. A 503 is the backend
// reporting itself unhealthy; a 404 means it has no health endpoint at all.
func healthError(api *client.Client, err error) error {
	switch {
	case client.IsStatus(err, http.StatusServiceUnavailable):
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	case client.IsStatus(err, http.StatusNotFound):
		return fmt.Errorf("%s does not expose %s: %w", api.BaseURL(), client.PathHealth, err)
	default:
		return err
	}
}

func renderHealth(w io.Writer, mode OutputMode, baseURL string, h *client.Health) {
	status := h.Status
	if mode == OutputModeStyled {
		if h.Healthy() {
			status = tui.OKStyle.Render(status)
		} else {
			status = tui.CriticalStyle.Render(status)
		}
	}
	fmt.Fprintf(w, "Backend:   %s\n", baseURL)
	fmt.Fprintf(w, "Status:    %s\n", status)
	if h.Timestamp != "" {
		fmt.Fprintf(w, "Timestamp: %s\n", h.Timestamp)
	}
	if h.DevMode {
		fmt.Fprintf(w, "Mode:      development\n")
	}
}

// statusSummary is the combined result of the status command.
type statusSummary struct {
	BaseURL          string         `json:"base_url"`
	Health           *client.Health `json:"health"`
	DispatchedTotal  int            `json:"dispatched_total"`
	OutstandingCount int            `json:"outstanding_count"`
}

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show backend health with dispatched and outstanding totals",
		Long: `Queries the health endpoint, the dispatch report total and the outstanding
orders at the same time and prints a one-screen summary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveOutputFormat(output)
			if err != nil {
				return err
			}
			api, err := newAPIClient(cmd)
			if err != nil {
				return err
			}
			summary, err := collectStatus(cmd, api)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format != OutputTable {
				return writeJSON(out, summary)
			}
			mode := detectOutputMode(out)
			renderHealth(out, mode, summary.BaseURL, summary.Health)
			fmt.Fprintf(out, "Dispatch:  %s\n", view.ResultsCount(summary.DispatchedTotal))
			fmt.Fprintf(out, "Pending:   %s\n", view.OutstandingCount(summary.OutstandingCount))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table or json")
	return cmd
}

// collectStatus runs the three status queries concurrently. The first failure cancels
// the others.
func collectStatus(cmd *cobra.Command, api *client.Client) (*statusSummary, error) {
	summary := &statusSummary{BaseURL: api.BaseURL()}
	g, ctx := errgroup.WithContext(cmd.Context())

	g.Go(func() error {
		h, err := api.Health(ctx)
		if err != nil {
			return fmt.Errorf("health: %w", healthError(api, err))
		}
		summary.Health = h
		return nil
	})
	g.Go(func() error {
		// One row is enough to learn the total.
		state := report.NewQueryState().WithPageSize(1)
		page, err := api.Dispatched(ctx, report.BuildQuery(state))
		if err != nil {
			return fmt.Errorf("dispatch report: %w", err)
		}
		summary.DispatchedTotal = page.Total
		return nil
	})
	g.Go(func() error {
		list, err := api.Outstanding(ctx)
		if err != nil {
			return fmt.Errorf("outstanding orders: %w", err)
		}
		summary.OutstandingCount = len(list.Orders)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}
