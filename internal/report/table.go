package report

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/vacancystats/internal/models"
	"github.com/fr4nk3nst1ner/vacancystats/internal/ui"
)

// Header is the fixed column header of every report table
var Header = []string{"Language", "Vacancies found", "Vacancies processed", "Average salary"}

// NoAverage is shown when no listing of a language had a usable salary
const NoAverage = "-"

// TableOptions controls terminal rendering
type TableOptions struct {
	// Colorize colors the average salary column by value.
	Colorize bool
}

// Rows returns one row per language, in report order, columns as in Header
func Rows(r models.SourceReport) [][]string {
	rows := make([][]string, 0, len(r.Languages))
	for _, st := range r.Languages {
		rows = append(rows, []string{
			st.Language,
			strconv.Itoa(st.Found),
			strconv.Itoa(st.Processed),
			formatAverage(st.AverageSalary),
		})
	}
	return rows
}

func formatAverage(avg *int64) string {
	if avg == nil {
		return NoAverage
	}
	return humanize.Comma(*avg)
}

// Table renders the report as a boxed pterm table titled with the source name
func Table(r models.SourceReport, opts TableOptions) (string, error) {
	data := pterm.TableData{Header}
	for i, row := range Rows(r) {
		if opts.Colorize {
			if avg := r.Languages[i].AverageSalary; avg != nil {
				row[3] = ui.ColorizeSalary(row[3], *avg)
			}
		}
		data = append(data, row)
	}

	table, err := pterm.DefaultTable.
		WithHasHeader().
		WithData(data).
		Srender()
	if err != nil {
		return "", err
	}

	return pterm.DefaultBox.
		WithTitle(r.Source).
		Sprint(table), nil
}
