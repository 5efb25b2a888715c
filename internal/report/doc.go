// Package report aggregates content validation records into the merge request
// report.
//
// Records are grouped by exact message ([Group]), each group is sorted and
// formatted into one [Row] whose cells merge the group's content, folder,
// model and explore values, and the rows are rendered as a markdown table
// ([RenderTable]) or, for a clean run, the [Banner]. [Build] ties this together
// and substitutes the result into a [Template] loaded from disk.
//
// Everything here is pure and deterministic: identical records in any input
// order produce byte-identical output.
package report
