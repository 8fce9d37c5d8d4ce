// Package parser turns raw statement text into normalized transactions.
//
// Each format parser implements the same contract: it consumes decoded text
// plus the detected document type and returns a model.ImportResult variant.
// Recoverable format problems are expressed as result variants, never as
// panics; a single bad row is skipped, never fatal.
package parser
