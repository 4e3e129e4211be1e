// Package view builds the display model of the reports: which panel to show, formatted
// row cells and the summary lines. It holds no terminal or styling code, so the same
// output feeds the interactive UI and the plain CLI tables.
package view
