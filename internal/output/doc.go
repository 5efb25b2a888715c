// Package output writes a rendered report document for local use.
//
// Three formats are supported:
//   - markdown: the filled comment template, byte for byte what is posted
//   - json: the structured document with run id, stats and grouped rows
//   - text: a terminal table
//
// Use [GetWriter] to obtain a [Writer] for a given format string, or
// [WriteReport] to write to a file or stdout in one call.
package output
