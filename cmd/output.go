package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/naka-gawa/ncu/internal/domain"
	"github.com/naka-gawa/ncu/internal/summary"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	valueStyle = lipgloss.NewStyle().Padding(0, 1)
)

// terminalOutput prints summary lines as-is and the table with lipgloss.
type terminalOutput struct {
	w io.Writer
}

var _ summary.Output = (*terminalOutput)(nil)

func (o *terminalOutput) Log(line string) {
	fmt.Fprintln(o.w, line)
}

func (o *terminalOutput) Table(rows []domain.ReportRow) {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{r.Label, r.Value})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return labelStyle
			}
			return valueStyle
		}).
		Rows(data...)
	fmt.Fprintln(o.w, t.String())
}
