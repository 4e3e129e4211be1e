// Package pagination provides paging and sort-flag helpers for the report commands.
//
// This package contains:
//   - Params: --limit/--offset/--page/--sort flag parsing and validation
//   - FieldValidator/OrderSorter: sort field validation and client-side order sorting
//
// Page indexes are zero-based everywhere except the --page flag, which is 1-based.
package pagination
