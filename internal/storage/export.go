package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/rootlab/internal/experiment"
	"github.com/san-kum/rootlab/internal/solver"
)

type ExportData struct {
	Method     string             `json:"method"`
	Formula    string             `json:"formula"`
	X0         float64            `json:"x0"`
	Tolerance  float64            `json:"tolerance"`
	Status     solver.Status      `json:"status"`
	X          float64            `json:"x"`
	FX         float64            `json:"fx"`
	Iterations int                `json:"iterations"`
	History    solver.History     `json:"history"`
	Metrics    map[string]float64 `json:"metrics"`
}

func exportData(run *experiment.Run) ExportData {
	res := run.Result
	return ExportData{
		Method:     run.Request.Method,
		Formula:    run.Request.Formula,
		X0:         run.Request.X0,
		Tolerance:  run.Request.Tolerance,
		Status:     res.Status,
		X:          res.X,
		FX:         res.FX,
		Iterations: res.Iterations,
		History:    res.History,
		Metrics:    run.Metrics,
	}
}

func ExportJSON(w io.Writer, run *experiment.Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData(run))
}

func ExportJSONFile(path string, run *experiment.Run) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ExportJSON(f, run)
}

// WriteHistoryCSV writes an iteration,error table with full float64
// precision.
func WriteHistoryCSV(w io.Writer, h solver.History) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"iteration", "error"}); err != nil {
		return err
	}
	for _, p := range h {
		row := []string{strconv.Itoa(p.Iteration), strconv.FormatFloat(p.Error, 'g', -1, 64)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
