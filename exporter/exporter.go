package exporter

import (
	"errors"
	"fmt"
	"time"

	"CopiaTrack/catalog"
	"CopiaTrack/models"
	"CopiaTrack/services"

	"github.com/xuri/excelize/v2"
)

// ErrExportFailed marks any failure while building or serializing the
// workbook. No partial file is ever produced: the workbook is written to a
// buffer and only handed out whole.
var ErrExportFailed = errors.New("export failed")

const (
	sheetName  = "Copias de Seguridad"
	windowDays = 30
	dateLayout = "02/01/2006"
)

// Filename returns the dated name of the export artifact.
func Filename(now time.Time) string {
	return fmt.Sprintf("copias_seguridad_%s.xlsx", now.Format("2006-01-02"))
}

// Export builds the 30-day attendance matrix plus the summary block and
// serializes it into a single-sheet workbook.
func Export(statuses map[string]map[string]models.ItemStatus, now time.Time) ([]byte, error) {
	rows := buildRows(statuses, now)

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
		}
	}

	if err := setColumnWidths(f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return buf.Bytes(), nil
}

// buildRows lays out the header, one matrix row per catalog pair, and the
// summary block, in catalog order.
func buildRows(statuses map[string]map[string]models.ItemStatus, now time.Time) [][]interface{} {
	window := lastDays(now, windowDays)

	header := []interface{}{"Categoría", "Elemento"}
	for _, day := range window {
		header = append(header, day.Format(dateLayout))
	}
	rows := [][]interface{}{header}

	forEachItem(statuses, func(title string, status models.ItemStatus) {
		row := []interface{}{title, status.Item}
		for _, day := range window {
			if backedUpOn(status.History, day) {
				row = append(row, "YES")
			} else {
				row = append(row, "NO")
			}
		}
		rows = append(rows, row)
	})

	rows = append(rows, []interface{}{}, []interface{}{"RESUMEN"}, []interface{}{})

	forEachItem(statuses, func(title string, status models.ItemStatus) {
		last := "Never"
		since := "no backups"
		label := "UP TO DATE"
		if status.LastBackup != nil {
			last = services.FormatDisplay(*status.LastBackup)
		}
		if status.DaysSince != nil {
			since = fmt.Sprintf("%d days", *status.DaysSince)
		}
		if status.Overdue {
			label = "OVERDUE"
		}
		rows = append(rows, []interface{}{title, status.Item, last, since, label})
	})

	return rows
}

func forEachItem(statuses map[string]map[string]models.ItemStatus, fn func(title string, status models.ItemStatus)) {
	for _, categoria := range catalog.Categories() {
		title := catalog.Title(categoria)
		for _, item := range catalog.ItemsOf(categoria) {
			status, ok := statuses[categoria][item]
			if !ok {
				status = models.ItemStatus{Categoria: categoria, Item: item}
			}
			fn(title, status)
		}
	}
}

// lastDays returns the n calendar days ending today, oldest first.
func lastDays(now time.Time, n int) []time.Time {
	days := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, now.AddDate(0, 0, -i))
	}
	return days
}

// backedUpOn compares calendar dates only; time of day is ignored.
func backedUpOn(history []time.Time, day time.Time) bool {
	y, m, d := day.Date()
	for _, ts := range history {
		ty, tm, td := ts.Date()
		if ty == y && tm == m && td == d {
			return true
		}
	}
	return false
}

func setColumnWidths(f *excelize.File) error {
	if err := f.SetColWidth(sheetName, "A", "A", 15); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(2 + windowDays)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheetName, "B", lastCol, 12)
}
