package trackersdk

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteSummaryCSV renders a summary report as CSV with one row per
// user/project pair, in the order the service returned them.
func WriteSummaryCSV(w io.Writer, summary SummaryResponse) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"User", "Project", "Total Hours"}); err != nil {
		return err
	}
	for _, row := range summary.Rows {
		record := []string{
			row.User,
			row.Project,
			strconv.FormatFloat(row.Hours, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
