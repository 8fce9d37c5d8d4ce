package model

// ImportResult is the output contract of every format parser. Recoverable
// format ambiguity is expressed as a variant, never a panic or an error
// return: parsers return ImportError for structurally unreadable input,
// ImportNeedsUserInput when the caller must supply a column mapping, and
// ImportSuccess otherwise.
type ImportResult interface {
	isImportResult()
}

// ImportSuccess carries the parsed transactions and an aggregate confidence
// over how many fields were structurally certain vs. inferred.
type ImportSuccess struct {
	DocumentType DocumentType
	Transactions []ImportedTransaction
	Confidence   float64
}

// ImportError reports unreadable or empty input. Partial holds any rows
// parsed before the failure so callers can still show them.
type ImportError struct {
	DocumentType DocumentType
	Message      string
	Partial      []ImportedTransaction
}

// ImportNeedsUserInput is returned when parsing succeeded structurally but
// semantic column roles could not be inferred. Columns lists the raw header
// names so a caller can map them manually.
type ImportNeedsUserInput struct {
	DocumentType DocumentType
	Transactions []ImportedTransaction
	Issues       []string
	Columns      []string
}

func (ImportSuccess) isImportResult()        {}
func (ImportError) isImportResult()          {}
func (ImportNeedsUserInput) isImportResult() {}
