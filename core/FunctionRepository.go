package core

// LogPointwise and LogUnmodified name the two build logs a FunctionRecord can
// originate from.
const (
	LogPointwise  = "pointwise"
	LogUnmodified = "unmodified"
)

// FunctionRecord is one parsed log line: which log it came from, the function
// identifier and the error count reported for it.
type FunctionRecord struct {
	Log    string `json:"log"`
	Name   string `json:"name"`
	Errors int    `json:"errors"`
}

type FunctionRepository interface {
	Store(records []FunctionRecord) error
	NewIterator() FunctionIterator
	Close() error
}

type FunctionIterator interface {
	HasNext() bool
	Next() (FunctionRecord, error)
	Reset() error
}
