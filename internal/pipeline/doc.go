// Package pipeline runs a content validation end to end.
//
// [Render] is the pure core: extract records from the validator result, group
// them by message, format rows, render the table and fill the template. [Run]
// wraps it with the Looker checkout and validation calls before and the
// GitLab note update after, strictly in that order.
package pipeline
