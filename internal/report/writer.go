// FILENAME: internal/report/writer.go
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xkilldash9x/round-table/internal/models"
)

// Writer handles artifact generation.
type Writer struct {
	BaseDir string
	now     func() time.Time
}

func NewWriter(baseDir string) *Writer {
	return &Writer{BaseDir: baseDir, now: time.Now}
}

// Summary is the JSON document written at the end of a run.
type Summary struct {
	Rounds int                `json:"rounds"`
	Seats  []models.SeatStats `json:"seats"`
}

// WriteArtifacts saves the per-seat meal counts to disk and returns the
// base path (without extension) of the files written.
func (w *Writer) WriteArtifacts(stats []models.SeatStats, rounds int, prefix string) (string, error) {
	if err := os.MkdirAll(w.BaseDir, 0755); err != nil {
		return "", err
	}

	timestamp := w.now().Format("20060102-150405")
	base := filepath.Join(w.BaseDir, fmt.Sprintf("%s-%s", prefix, timestamp))

	// 1. JSON Report
	if err := w.writeJSON(Summary{Rounds: rounds, Seats: stats}, base+".json"); err != nil {
		return "", err
	}

	// 2. CSV Report
	if err := w.writeCSV(stats, base+".csv"); err != nil {
		return "", err
	}

	return base, nil
}

func (w *Writer) writeJSON(summary Summary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

func (w *Writer) writeCSV(stats []models.SeatStats, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	// Header
	header := []string{"Seat", "Name", "Meals", "EatTime(ms)"}
	if err := cw.Write(header); err != nil {
		return err
	}

	// Rows
	for _, s := range stats {
		row := []string{
			strconv.Itoa(s.Seat),
			s.Name,
			strconv.FormatInt(s.Meals, 10),
			strconv.FormatInt(s.EatTime.Milliseconds(), 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return nil
}
