// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"

	"github.com/mirova/fluxquiz/internal/model"
)

// RenderSummary prints aggregate figures for the filtered rounds.
func RenderSummary(w io.Writer, report Report) error {
	if len(report.Rounds) == 0 {
		_, err := fmt.Fprintln(w, "No rounds found.")
		return err
	}
	s := report.Summary
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Rounds: %d\n", s.Rounds); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Accuracy: %.1f%%\n", s.AccuracyPct); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg response: %.0f ms (±%.0f)\n", s.AvgResponseMs, s.StdResponseMs); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best streak: %d\n", s.BestStreak); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "All-time: %d/%d correct\n", report.Totals.TotalCorrect, report.Totals.TotalAnswered); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderCurves prints accuracy and response-time curves over round history.
func RenderCurves(w io.Writer, rounds []model.RoundAggregate, window int) error {
	return RenderCurvesWithSize(w, rounds, window, 0, defaultPlotHeight, false)
}

// RenderCurvesWithSize prints the curves sized to a given total width.
func RenderCurvesWithSize(w io.Writer, rounds []model.RoundAggregate, window, totalWidth, height int, useColor bool) error {
	if len(rounds) == 0 {
		return nil
	}
	acc := MovingAverage(AccuracySeries(rounds), window)
	resp := MovingAverage(ResponseSeries(rounds), window)

	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, "Training Curves", []Series{
		{Name: "Accuracy %", Values: acc},
		{Name: "Response ms", Values: resp},
	}, width, height, useColor)
}

// RenderHistory prints a table of rounds, most recent last.
func RenderHistory(w io.Writer, rounds []model.RoundAggregate) error {
	if len(rounds) == 0 {
		_, err := fmt.Fprintln(w, "No rounds found.")
		return err
	}
	headers := []string{"Answered", "Result", "Response (ms)"}
	rows := make([][]string, 0, len(rounds))
	for _, r := range rounds {
		result := "miss"
		if r.Correct {
			result = "hit"
		}
		rows = append(rows, []string{
			r.AnsweredAt.Format("2006-01-02 15:04:05"),
			result,
			fmt.Sprintf("%d", r.ResponseMs),
		})
	}
	rightAlign := map[int]bool{2: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}
