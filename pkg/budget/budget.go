package budget

// Document is the whole persisted store: one JSON document mapping
// "YYYY-MM" month keys to their budget records.
type Document struct {
	Months map[string]MonthRecord `json:"months"`
}

type MonthRecord struct {
	Income   Income        `json:"income"`
	Expenses []ExpenseItem `json:"expenses"`
	Notes    string        `json:"notes"`
}

type Income struct {
	Planned float64  `json:"planned"`
	Actual  *float64 `json:"actual"`
}

// ExpenseItem is one categorized expense line. Within a month, categories
// are unique by their lower-cased trimmed form; the stored string keeps the
// most recently written casing.
type ExpenseItem struct {
	Category string   `json:"category"`
	Planned  float64  `json:"planned"`
	Actual   *float64 `json:"actual"`
}

// ExpenseInput is a caller-supplied expense line before normalization.
// A nil Planned defaults to 0; a nil Actual means "unknown", not zero.
type ExpenseInput struct {
	Category string
	Planned  *float64
	Actual   *float64
}

func NewDocument() *Document {
	return &Document{Months: map[string]MonthRecord{}}
}

func f64(v float64) *float64 {
	return &v
}
