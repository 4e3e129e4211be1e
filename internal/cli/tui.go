package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/jetsetgo/dispatchdesk/internal/config"
	"github.com/jetsetgo/dispatchdesk/internal/report"
	"github.com/jetsetgo/dispatchdesk/internal/tui"
)

// ErrNotATerminal is returned when the interactive UI is started without a terminal.
var ErrNotATerminal = errors.New("the interactive UI needs a terminal; use 'dispatchdesk report' for piped output")

// NewTUICmd creates the interactive report command.
func NewTUICmd() *cobra.Command {
	var viewName string

	cmd := &cobra.Command{
		Use:     "tui",
		Aliases: []string{"ui"},
		Short:   "Browse the dispatch report and outstanding orders interactively",
		Long: `Opens the interactive report. The dispatch report is paginated on the backend;
the outstanding orders are loaded once and searched and sorted locally.

Press tab to switch between the two views, / to search and q to quit.
Logs are written to the log file only while the UI is open.`,
		Example: `  # Start on the dispatch report
  dispatchdesk tui

  # Start on the outstanding orders
  dispatchdesk ui --view outstanding`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationInteractive: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			tab, err := tui.ParseTab(viewName)
			if err != nil {
				return err
			}
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return ErrNotATerminal
			}
			app, err := newTUIApp(cmd, tab)
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), app)
		},
	}

	cmd.Flags().StringVar(&viewName, "view", "dispatch", "initial view: dispatch or outstanding")
	return cmd
}

// newTUIApp wires the interactive models to the backend client using the configured
// report defaults.
func newTUIApp(cmd *cobra.Command, tab tui.Tab) (tui.AppModel, error) {
	api, err := newAPIClient(cmd)
	if err != nil {
		return tui.AppModel{}, err
	}

	state, err := configuredQueryState()
	if err != nil {
		return tui.AppModel{}, err
	}

	ctx := cmd.Context()
	dispatch := tui.NewDispatchModel(ctx, api.Dispatched, tui.DispatchOptions{
		State:    state,
		Debounce: config.GetSearchDebounce(),
	})
	outstanding := tui.NewOutstandingModel(ctx, api.Outstanding)
	return tui.NewAppModel(dispatch, outstanding, tab), nil
}

// configuredQueryState is the initial dispatch query from the report section of the config.
func configuredQueryState() (report.QueryState, error) {
	cfg := config.GetGlobalConfig()
	ft, err := report.ParseFilterType(cfg.Report.FilterType)
	if err != nil {
		return report.QueryState{}, err
	}
	dir, err := report.ParseSortDirection(cfg.Report.SortOrder)
	if err != nil {
		return report.QueryState{}, err
	}
	return report.NewQueryState().
		WithPageSize(cfg.Report.PageSize).
		WithFilterType(ft).
		WithSortOrder(cfg.Report.SortField, dir), nil
}
