package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jetsetgo/dispatchdesk/internal/cli/pagination"
	"github.com/jetsetgo/dispatchdesk/internal/report"
	"github.com/jetsetgo/dispatchdesk/internal/view"
)

// outstandingOutput is the JSON document written for the outstanding-orders report.
type outstandingOutput struct {
	Orders []report.OutstandingOrder `json:"orders"`
	Count  int                       `json:"count"`
	Total  int                       `json:"total"`
}

// NewReportOutstandingCmd creates the "report outstanding" command.
func NewReportOutstandingCmd() *cobra.Command {
	var search, sortExpr, output string

	cmd := &cobra.Command{
		Use:   "outstanding",
		Short: "List invoices not yet placed on a manifest",
		Long: `Fetches every outstanding order and filters and sorts them locally.

--search matches invoice number, order number or customer name, ignoring case.
--sort takes field or field:order; dates sort chronologically, other columns as text.`,
		Example: `  # Newest outstanding invoices first
  dispatchdesk report outstanding

  # Orders for one customer, by order number
  dispatchdesk report outstanding --search "acme" --sort order_number:asc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOutstanding(cmd, search, sortExpr, output)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "match invoice, order or customer")
	cmd.Flags().StringVar(&sortExpr, "sort", "",
		"sort as field or field:order ("+strings.Join(report.OrderSortFields, ", ")+")")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or ndjson")

	return cmd
}

func runOutstanding(cmd *cobra.Command, search, sortExpr, output string) error {
	format, err := resolveOutputFormat(output)
	if err != nil {
		return err
	}
	sorter := pagination.NewOrderSorter()
	def := report.DefaultOrderSort()
	field, dir, err := pagination.ResolveSort(sortExpr, sorter, def.Field, def.Direction)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	run := newCommandRun("report_outstanding", map[string]string{
		"search": search,
		"sort":   field + ":" + string(dir),
	})

	api, err := newAPIClient(cmd)
	if err != nil {
		return err
	}
	list, err := api.Outstanding(ctx)
	if err != nil {
		run.logFailure(ctx, err)
		return err
	}

	shown := sorter.Sort(report.FilterOrders(list.Orders, search), field, string(dir))
	run.logSuccess(ctx, len(shown))

	out := cmd.OutOrStdout()
	switch format {
	case OutputJSON:
		return writeJSON(out, outstandingOutput{Orders: shown, Count: len(shown), Total: len(list.Orders)})
	case OutputNDJSON:
		return ignoreBrokenPipe(writeNDJSON(out, shown))
	case OutputTable:
	}

	mode := detectOutputMode(out)
	display := view.OrdersDisplay(len(shown), len(list.Orders))
	if display.State == view.StateEmpty {
		renderNotice(out, mode, display.Message)
		return nil
	}
	if err = renderOrderRows(out, mode, shown); err != nil {
		return ignoreBrokenPipe(err)
	}
	summary := view.OutstandingCount(len(list.Orders))
	if info := view.FilteredInfo(len(shown), len(list.Orders)); info != "" {
		summary = info
	}
	renderNotice(out, mode, "\n"+summary)
	return nil
}
