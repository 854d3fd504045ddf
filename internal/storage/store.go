package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/fluidsim/internal/metrics"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	tokensFile   = "tokens.b64"
	finalFile    = "final.png"

	maxTokenLen = 64 << 20
)

var ErrNoTokens = errors.New("storage: run has no stored frames")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Timestamp     time.Time          `json:"timestamp"`
	Width         int                `json:"width"`
	Height        int                `json:"height"`
	Viscosity     float64            `json:"viscosity"`
	ForceStrength float64            `json:"force_strength"`
	Palette       []string           `json:"palette"`
	Path          string             `json:"path"`
	Frames        int                `json:"frames"`
	Metrics       map[string]float64 `json:"metrics"`
}

// RunWriter streams one run to disk: a CSV row and optionally a token per
// frame, then the final image and metadata on Close.
type RunWriter struct {
	dir        string
	meta       RunMetadata
	framesFile *os.File
	tokensFile *os.File
	tokens     *bufio.Writer

	headerWritten bool
}

// Create allocates a run directory named after meta.Name and the current
// time. The assigned ID is stored in the returned writer's metadata.
func (s *Store) Create(meta RunMetadata) (*RunWriter, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}

	meta.Timestamp = time.Now()
	base := fmt.Sprintf("%s_%d", meta.Name, meta.Timestamp.Unix())
	runID := base
	for i := 1; ; i++ {
		if err := os.Mkdir(filepath.Join(s.baseDir, runID), 0755); err == nil {
			break
		} else if !os.IsExist(err) {
			return nil, err
		}
		runID = fmt.Sprintf("%s_%d", base, i)
	}
	meta.ID = runID

	w := &RunWriter{dir: filepath.Join(s.baseDir, runID), meta: meta}

	f, err := os.Create(filepath.Join(w.dir, framesFile))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", framesFile, err)
	}
	w.framesFile = f

	f, err = os.Create(filepath.Join(w.dir, tokensFile))
	if err != nil {
		w.framesFile.Close()
		return nil, fmt.Errorf("creating %s: %w", tokensFile, err)
	}
	w.tokensFile = f
	w.tokens = bufio.NewWriter(f)

	if err := w.writeMeta(); err != nil {
		w.framesFile.Close()
		w.tokensFile.Close()
		return nil, err
	}
	return w, nil
}

func (w *RunWriter) ID() string  { return w.meta.ID }
func (w *RunWriter) Dir() string { return w.dir }

// WriteFrame appends one telemetry row. An empty token is not stored.
func (w *RunWriter) WriteFrame(fs metrics.FrameStats, token string) error {
	records := []metrics.FrameStats{fs}
	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.framesFile); err != nil {
			return fmt.Errorf("writing frame: %w", err)
		}
		w.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, w.framesFile); err != nil {
			return fmt.Errorf("writing frame: %w", err)
		}
	}

	if token == "" {
		return nil
	}
	if _, err := w.tokens.WriteString(token); err != nil {
		return err
	}
	return w.tokens.WriteByte('\n')
}

// WriteImage stores the PNG bytes of the last frame.
func (w *RunWriter) WriteImage(png []byte) error {
	return os.WriteFile(filepath.Join(w.dir, finalFile), png, 0644)
}

// Close records the frame count and summary metrics and closes all files.
func (w *RunWriter) Close(frames int, summary map[string]float64) error {
	w.meta.Frames = frames
	w.meta.Metrics = summary

	flushErr := w.tokens.Flush()
	tokErr := w.tokensFile.Close()
	frameErr := w.framesFile.Close()
	metaErr := w.writeMeta()

	return errors.Join(flushErr, tokErr, frameErr, metaErr)
}

func (w *RunWriter) writeMeta() error {
	f, err := os.Create(filepath.Join(w.dir, metadataFile))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(w.meta)
}

// List returns all runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadStats(runID string) ([]metrics.FrameStats, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []metrics.FrameStats
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []metrics.FrameStats{}, nil
		}
		return nil, err
	}
	return rows, nil
}

// LoadTokens returns every stored frame token in order.
func (s *Store) LoadTokens(runID string) ([]string, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, tokensFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64<<10), maxTokenLen)

	var tokens []string
	for sc.Scan() {
		if line := sc.Text(); line != "" {
			tokens = append(tokens, line)
		}
	}
	return tokens, sc.Err()
}

// LastToken returns the most recent stored token.
func (s *Store) LastToken(runID string) (string, error) {
	tokens, err := s.LoadTokens(runID)
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoTokens, runID)
	}
	return tokens[len(tokens)-1], nil
}
