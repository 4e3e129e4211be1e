package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jetsetgo/dispatchdesk/internal/batch"
	"github.com/jetsetgo/dispatchdesk/internal/cli/pagination"
	"github.com/jetsetgo/dispatchdesk/internal/client"
	"github.com/jetsetgo/dispatchdesk/internal/config"
	"github.com/jetsetgo/dispatchdesk/internal/logging"
	"github.com/jetsetgo/dispatchdesk/internal/report"
	"github.com/jetsetgo/dispatchdesk/internal/view"
)

// dispatchedFlags holds the flags of "report dispatched".
type dispatchedFlags struct {
	from        string
	to          string
	search      string
	filterType  string
	output      string
	all         bool
	concurrency int
	paging      *pagination.Params
}

// dispatchedOutput is the JSON document written for a dispatch report.
type dispatchedOutput struct {
	Invoices   []report.DispatchRow `json:"invoices"`
	Total      int                  `json:"total"`
	FilterType report.FilterType    `json:"filter_type"`
	Pagination *report.PageInfo     `json:"pagination,omitempty"`
}

// NewReportDispatchedCmd creates the "report dispatched" command.
func NewReportDispatchedCmd() *cobra.Command {
	flags := dispatchedFlags{paging: pagination.NewParams()}

	cmd := &cobra.Command{
		Use:   "dispatched",
		Short: "List invoices that have been dispatched on a manifest",
		Long: `Queries the dispatch report. Filtering, sorting and paging run on the backend.

Dates use YYYY-MM-DD. A date that does not parse is ignored with a warning.
--filter-type selects whether the range applies to the dispatch date (default) or to the
date the invoice was added to a manifest.`,
		Example: `  # Invoices dispatched in the first week of January
  dispatchdesk report dispatched --from 2026-01-01 --to 2026-01-07

  # Invoices added to manifests on or after a date, oldest manifest first
  dispatchdesk report dispatched --from 2026-01-01 --filter-type manifest --sort manifest_number:asc

  # Third page of 25
  dispatchdesk report dispatched --limit 25 --page 3

  # Every matching row as NDJSON
  dispatchdesk report dispatched --search acme --all --output ndjson`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDispatched(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.search, "search", "", "match invoice, order, customer or manifest")
	cmd.Flags().StringVar(&flags.filterType, "filter-type", "", "date column the range applies to: dispatch or manifest")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output format: table, json or ndjson")
	cmd.Flags().BoolVar(&flags.all, "all", false, "fetch every page")
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", batch.DefaultBatchSize,
		fmt.Sprintf("pages fetched at once with --all (%d-%d)", batch.MinBatchSize, batch.MaxBatchSize))
	flags.paging.AddFlags(cmd, "sort as field or field:order ("+strings.Join(report.DispatchSortFields, ", ")+")")

	return cmd
}

// dispatchedState builds the query from configuration defaults and flags.
func dispatchedState(cmd *cobra.Command, flags dispatchedFlags) (report.QueryState, error) {
	cfg := config.GetGlobalConfig()
	paging := *flags.paging
	if !cmd.Flags().Changed("limit") {
		paging.Limit = cfg.Report.PageSize
	}
	if err := paging.Validate(); err != nil {
		return report.QueryState{}, err
	}

	ftValue := flags.filterType
	if ftValue == "" {
		ftValue = cfg.Report.FilterType
	}
	ft, err := report.ParseFilterType(ftValue)
	if err != nil {
		return report.QueryState{}, err
	}

	defaultDir, err := report.ParseSortDirection(cfg.Report.SortOrder)
	if err != nil {
		return report.QueryState{}, err
	}
	field, dir, err := pagination.ResolveSort(paging.Sort, pagination.NewDispatchFields(),
		cfg.Report.SortField, defaultDir)
	if err != nil {
		return report.QueryState{}, err
	}

	warnInvalidDates(cmd, flags.from, flags.to)

	state := report.NewQueryState().
		WithPageSize(paging.Limit).
		WithFilterType(ft).
		WithDateRange(flags.from, flags.to).
		WithSearch(flags.search).
		WithSortOrder(field, dir)
	return state.WithOffset(paging.EffectiveOffset()), nil
}

// warnInvalidDates reports dates that will be left out of the query.
func warnInvalidDates(cmd *cobra.Command, dates ...string) {
	for _, d := range dates {
		d = strings.TrimSpace(d)
		if d == "" || report.ValidDate(d) {
			continue
		}
		logging.FromContext(cmd.Context()).Warn().
			Str("component", "cli").
			Str("operation", "report_dispatched").
			Str("value", d).
			Msg("ignoring invalid date")
		cmd.PrintErrf("Warning: ignoring invalid date %q (expected %s)\n", d, report.DateLayout)
	}
}

func runDispatched(cmd *cobra.Command, flags dispatchedFlags) error {
	format, err := resolveOutputFormat(flags.output)
	if err != nil {
		return err
	}
	state, err := dispatchedState(cmd, flags)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	run := newCommandRun("report_dispatched", report.BuildQuery(state).Map())

	api, err := newAPIClient(cmd)
	if err != nil {
		return err
	}

	if flags.all {
		rows, walkErr := walkDispatched(cmd, api, flags.concurrency, format, state)
		if walkErr != nil {
			run.logFailure(ctx, walkErr)
			return walkErr
		}
		run.logSuccess(ctx, rows)
		return nil
	}

	page, err := api.Dispatched(ctx, report.BuildQuery(state))
	if err != nil {
		run.logFailure(ctx, err)
		return err
	}
	state = state.WithPage(page.Rows, page.Total)
	run.logSuccess(ctx, len(page.Rows))

	out := cmd.OutOrStdout()
	switch format {
	case OutputJSON:
		info := state.PageInfo()
		return writeJSON(out, dispatchedOutput{
			Invoices:   nonNilRows(state.Rows),
			Total:      state.TotalCount,
			FilterType: state.FilterType,
			Pagination: &info,
		})
	case OutputNDJSON:
		return ignoreBrokenPipe(writeNDJSON(out, state.Rows))
	case OutputTable:
	}

	mode := detectOutputMode(out)
	if len(state.Rows) == 0 {
		renderNotice(out, mode, view.DispatchEmpty)
		return nil
	}
	if err = renderDispatchRows(out, mode, state.Rows); err != nil {
		return ignoreBrokenPipe(err)
	}
	info := state.PageInfo()
	renderNotice(out, mode, "\n"+view.DispatchSummary(state))
	renderNotice(out, mode, fmt.Sprintf("%s, page %d of %d",
		view.ResultsCount(state.TotalCount), info.CurrentPage+1, info.TotalPages))
	return nil
}

// walkDispatched fetches every page from the state's offset onward. NDJSON output is
// streamed page by page; the other formats are written once all pages have arrived.
// It returns the number of rows written.
func walkDispatched(
	cmd *cobra.Command,
	api *client.Client,
	concurrency int,
	format OutputFormat,
	state report.QueryState,
) (int, error) {
	proc, err := batch.NewProcessor[int](concurrency)
	if err != nil {
		return 0, err
	}
	log := logging.FromContext(cmd.Context())
	proc.WithProgressCallback(func(s batch.ProgressSnapshot) {
		log.Debug().
			Str("component", "cli").
			Str("operation", "report_dispatched").
			Int("pages_done", s.ProcessedItems).
			Int("pages_total", s.TotalItems).
			Float64("percent", s.PercentComplete).
			Dur("elapsed", s.ElapsedTime).
			Msg("fetched page batch")
	})

	out := cmd.OutOrStdout()
	var (
		rows  []report.DispatchRow
		total int
		count int
	)
	err = api.WalkDispatched(cmd.Context(), state, proc, func(page *report.DispatchPage) error {
		total = page.Total
		count += len(page.Rows)
		if format == OutputNDJSON {
			return writeNDJSON(out, page.Rows)
		}
		rows = append(rows, page.Rows...)
		return nil
	})
	if err != nil {
		return count, ignoreBrokenPipe(err)
	}

	switch format {
	case OutputNDJSON:
		return count, nil
	case OutputJSON:
		return count, writeJSON(out, dispatchedOutput{
			Invoices:   nonNilRows(rows),
			Total:      total,
			FilterType: state.FilterType,
		})
	case OutputTable:
	}

	mode := detectOutputMode(out)
	if len(rows) == 0 {
		renderNotice(out, mode, view.DispatchEmpty)
		return 0, nil
	}
	if err = renderDispatchRows(out, mode, rows); err != nil {
		return count, ignoreBrokenPipe(err)
	}
	renderNotice(out, mode, "\n"+view.ResultsCount(total)+", "+strconv.Itoa(len(rows))+" shown")
	return count, nil
}

func nonNilRows(rows []report.DispatchRow) []report.DispatchRow {
	if rows == nil {
		return []report.DispatchRow{}
	}
	return rows
}
