// Package textbuf provides the text accumulation buffer shared by the
// extraction parsers.
//
// A [Buffer] collects extracted characters one run at a time and keeps a
// parallel diagnostic log for non-fatal anomalies encountered during a
// scan. The two halves are independent: clearing the text does not touch
// the log, and vice versa.
//
// # Accumulating Text
//
// The zero value is ready to use:
//
//	var buf textbuf.Buffer
//	buf.Allocate(len(src))
//	buf.AddString("recovered ")
//	buf.AddRune('t')
//	buf.Trim()
//	text := buf.String()
//
// Allocate starts a fresh extraction session: it discards any previous
// content and reserves capacity, so repeated sessions on one Buffer never
// run together.
//
// # Diagnostics
//
// Parsers record recoverable problems as log messages rather than errors:
//
//	buf.LogMessage("embedded document not terminated")
//	report := buf.Log()
//
// Messages are joined with a configurable separator (newline by default),
// inserted only between messages.
package textbuf
