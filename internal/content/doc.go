// Package content models the Looker content validator's response and flattens
// it into one [Record] per error.
//
// Each validated item is resolved to a [Variant] through a fixed table:
// scheduled plan, then dashboard filter, then dashboard tile, then plain
// dashboard or look. The variant decides which sub-object supplies the id,
// title and folder, how the title is decorated, and the tooltip shown in the
// report. Items whose sub-objects do not fit any variant are returned as
// malformed-input faults instead of being skipped.
package content
