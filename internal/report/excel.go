package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"dredge/internal/errors"
)

const summarySheet = "Summary"

// WriteWorkbook writes the run summary to an Excel workbook with the
// two-category bar chart the visualization contract asks for.
func WriteWorkbook(s Summary, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(summarySheet)
	if err != nil {
		return errors.Wrap(err, "creating summary sheet")
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.Wrap(err, "removing default sheet")
	}

	rows := [][]interface{}{
		{"Outcome", "Trials"},
		{"Flagged", s.FlaggedCount},
		{"Not flagged", s.NotFlaggedCount()},
		{},
		{"Trials", s.TrialCount},
		{"Observations", s.Config.Observations},
		{"Covariates", s.Config.Covariates},
		{"Alpha", s.Config.Alpha},
		{"Seed", s.Config.Seed},
		{"Flagged fraction", s.Fraction},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.Wrap(err, "computing cell name")
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return errors.Wrap(err, "writing summary row")
		}
	}

	chart := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", summarySheet),
			Categories: fmt.Sprintf("%s!$A$2:$A$3", summarySheet),
			Values:     fmt.Sprintf("%s!$B$2:$B$3", summarySheet),
		}},
		Title: []excelize.RichTextRun{{
			Text: fmt.Sprintf("Trials with at least one significant result (%.1f%%)", 100*s.Fraction),
		}},
	}
	if err := f.AddChart(summarySheet, "D2", chart); err != nil {
		return errors.Wrap(err, "adding bar chart")
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "saving workbook to %s", path)
	}
	return nil
}
