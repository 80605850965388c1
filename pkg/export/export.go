package export

// TransactionRow is a flattened transaction ready for file rendering.
type TransactionRow struct {
	Date     string
	Category string
	Type     string
	Amount   float64
	RawText  string
}

const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

func IsValidFormat(format string) bool {
	return format == FormatCSV || format == FormatPDF
}
