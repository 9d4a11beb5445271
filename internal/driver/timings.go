package driver

import (
	"encoding/json"
	"fmt"
	"io"

	"borrowck/internal/observ"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	Cached  bool                 `json:"cached,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// WriteTimings prints the phase timings of every result, as text tables
// or as one JSON object per line.
func WriteTimings(w io.Writer, results []*Result, asJSON bool) error {
	for _, res := range results {
		if res == nil {
			continue
		}
		if asJSON {
			data, err := json.Marshal(timingPayload{
				Kind:    "file",
				Path:    res.Path,
				Cached:  res.Cached,
				TotalMS: res.Timing.TotalMS,
				Phases:  res.Timing.Phases,
			})
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\n%s", res.Path, res.Timing.String()); err != nil {
			return err
		}
	}
	return nil
}
