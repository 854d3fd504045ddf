package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/fluidsim/internal/metrics"
)

// ExportData is a self-contained JSON view of a stored run.
type ExportData struct {
	Run    RunMetadata          `json:"run"`
	Frames []metrics.FrameStats `json:"frames"`
	Final  string               `json:"final_token,omitempty"`
}

// Export writes run runID as indented JSON. The last stored token is
// included when withToken is set and the run has one.
func (s *Store) Export(w io.Writer, runID string, withToken bool) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	stats, err := s.LoadStats(runID)
	if err != nil {
		return err
	}

	data := ExportData{Run: *meta, Frames: stats}
	if withToken {
		if tok, err := s.LastToken(runID); err == nil {
			data.Final = tok
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (s *Store) ExportFile(path, runID string, withToken bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.Export(f, runID, withToken)
}
