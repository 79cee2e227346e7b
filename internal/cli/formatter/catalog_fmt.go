package formatter

import (
	"strings"

	"github.com/alexanderramin/siterisk/internal/domain"
)

// FormatCatalog lists the work-type catalog and the process taxonomy.
func FormatCatalog() string {
	rows := make([][]string, 0, len(domain.WorkTypeCatalog))
	for _, wt := range domain.WorkTypeCatalog {
		rows = append(rows, []string{Bold(wt.Large), Dim(wt.Key), strings.Join(wt.Medium, ", ")})
	}
	types := RenderTable([]string{"CATEGORY", "KEY", "SUBCATEGORIES"}, rows)

	procRows := make([][]string, 0, len(domain.AllWorkProcesses))
	for _, p := range domain.AllWorkProcesses {
		procRows = append(procRows, []string{Bold(p.Title()), Dim(string(p))})
	}
	procs := RenderTable([]string{"PROCESS", "KEY"}, procRows)

	return RenderBox("Work types", types) + "\n" + RenderBox("Processes", procs)
}
