package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

func BuildCSV(rows []TransactionRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"date", "category", "type", "amount", "description"}); err != nil {
		return nil, err
	}

	for _, row := range rows {
		record := []string{
			row.Date,
			row.Category,
			row.Type,
			strconv.FormatFloat(row.Amount, 'f', 2, 64),
			row.RawText,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
