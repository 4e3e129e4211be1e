// Package batch splits work over a slice into fixed-size batches.
//
// Processor runs batches sequentially with a progress callback; WalkPages builds on it to
// fetch paginated results a batch of pages at a time, fetching the pages of one batch
// concurrently and delivering every page in offset order.
package batch
