// Package export renders scored research results for external tools.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inklight/keyscout/pkg/keyscout/signal"
)

var csvHeader = []string{
	"keyword",
	"difficulty_score",
	"profitability_score",
	"band",
	"search_results_count",
	"avg_price",
	"avg_reviews",
	"average_interest",
	"categories",
}

// WriteCSV writes one row per scored keyword in a stable column order.
func WriteCSV(w io.Writer, scored []signal.Scored) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, sk := range scored {
		row := []string{
			sk.Keyword,
			formatFloat(sk.Difficulty),
			formatFloat(sk.Profitability),
			string(sk.Band),
			strconv.FormatInt(sk.Signal.SearchResultsCount, 10),
			formatFloat(sk.Signal.AveragePrice),
			formatFloat(sk.Signal.AverageReviews),
			formatFloat(sk.Signal.AverageInterest),
			strings.Join(sk.Signal.Categories, ", "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row for %q: %w", sk.Keyword, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
