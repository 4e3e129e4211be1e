// Package listview provides a virtually scrolled list for Bubble Tea views.
//
// Only the rows around the viewport are rendered, so views stay responsive with
// thousands of items. The list supports up/down (j/k), pgup/pgdown and home/end
// navigation, and its items can be replaced in place when a filter changes.
package listview
