package export

import (
	"fmt"

	"github.com/go-analyze/charts"

	"github.com/antoninaarc/finanzapp/internal/report"
)

// CategoryPieChart renders the expense breakdown as a pie chart PNG.
// The breakdown comes pre-sorted from the report package, so slice
// order is stable across renders.
func CategoryPieChart(breakdown []report.CategoryTotal, title string) ([]byte, error) {
	if len(breakdown) == 0 {
		return nil, fmt.Errorf("no expenses to chart")
	}

	values := make([]float64, 0, len(breakdown))
	names := make([]string, 0, len(breakdown))
	for _, row := range breakdown {
		values = append(values, row.Total.InexactFloat64())
		names = append(names, row.Name)
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{Text: title}),
		charts.LegendLabelsOptionFunc(names),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return buf, nil
}
