package offers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

var fixedHeader = []string{"cabin", "destination", "city", "airline", "stops", "price", "currency", "deal", "booking_url"}

var flexibleHeader = []string{"cabin", "destination", "city", "airline", "stops", "price", "currency", "date", "savings", "dates_checked", "booking_url"}

// WriteCSV streams the report rows to w, one record per destination per
// cabin. Flexible reports carry the extra date columns.
func WriteCSV(w io.Writer, report Report) error {
	cw := csv.NewWriter(w)

	header := fixedHeader
	if report.Flexible {
		header = flexibleHeader
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, section := range report.Sections {
		for _, row := range section.Rows {
			record := []string{
				strings.ToLower(string(section.Cabin)),
				row.Destination,
				row.City,
				row.Airline,
				fmt.Sprintf("%d", row.Stops),
				fmt.Sprintf("%.2f", row.Price),
				report.Currency,
			}
			if report.Flexible {
				record = append(record,
					row.Date,
					fmt.Sprintf("%.2f", row.Savings),
					fmt.Sprintf("%d", row.DatesChecked),
				)
			} else {
				record = append(record, row.Deal)
			}
			record = append(record, row.URL)

			if err := cw.Write(record); err != nil {
				return fmt.Errorf("write csv record: %w", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}
