package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/sparks/internal/metrics"
)

type ExportData struct {
	Run     RunMetadata          `json:"run"`
	Summary metrics.Summary      `json:"summary"`
	Ticks   []metrics.TickSample `json:"ticks"`
}

// ExportJSON writes a run, its summary and its tick log as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata, samples []metrics.TickSample) error {
	data := ExportData{
		Run:     meta,
		Summary: metrics.Summarize(samples),
		Ticks:   samples,
	}
	if data.Ticks == nil {
		data.Ticks = []metrics.TickSample{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportRun loads runID from the store and exports it.
func (s *Store) ExportRun(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadTicks(runID)
	if err != nil {
		return err
	}
	return ExportJSON(w, *meta, samples)
}
