package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/polyroot/internal/newton"
	"github.com/san-kum/polyroot/internal/poly"
)

const (
	metadataFile = "metadata.json"
	stepsFile    = "steps.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
	newID   func() string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, newID: newRunID}
}

func newRunID() string {
	return "root_" + uuid.NewString()
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Run describes one root search: the polynomial, where it started and how the
// solver was configured.
type Run struct {
	Poly   poly.Poly
	Guess  float64
	Config newton.Config
}

type RunMetadata struct {
	ID            string      `json:"id"`
	Polynomial    string      `json:"polynomial"`
	Terms         []poly.Term `json:"terms"`
	Derivative    string      `json:"derivative"`
	Timestamp     time.Time   `json:"timestamp"`
	Guess         float64     `json:"guess"`
	Epsilon       float64     `json:"epsilon"`
	MaxIterations int         `json:"max_iterations"`
	Root          float64     `json:"root"`
	Residual      float64     `json:"residual"`
	Iterations    int         `json:"iterations"`
	Converged     bool        `json:"converged"`
	Error         string      `json:"error,omitempty"`
}

// Save writes the run and its iteration trace under a fresh run id. solveErr
// is the error Solve returned, if any; failed runs are kept too.
// A run that cannot be written completely is removed again.
func (s *Store) Save(run Run, res *newton.Result, solveErr error) (string, error) {
	runID := s.newID()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Polynomial:    run.Poly.String(),
		Terms:         run.Poly.Terms(),
		Derivative:    run.Poly.Differentiate().String(),
		Timestamp:     time.Now(),
		Guess:         run.Guess,
		Epsilon:       run.Config.Epsilon,
		MaxIterations: run.Config.MaxIterations,
	}
	if res != nil {
		meta.Root = jsonSafe(res.Root)
		meta.Residual = jsonSafe(res.Residual)
		meta.Iterations = res.Iterations
		meta.Converged = res.Converged
	}
	if solveErr != nil {
		meta.Error = solveErr.Error()
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	var steps []newton.Step
	if res != nil {
		steps = res.Steps
	}
	if err := writeSteps(filepath.Join(runDir, stepsFile), steps); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSteps(path string, steps []newton.Step) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"iteration", "guess", "value", "slope", "next"}); err != nil {
		return err
	}
	for _, st := range steps {
		row := []string{
			strconv.Itoa(st.Iteration),
			strconv.FormatFloat(st.Guess, 'g', -1, 64),
			strconv.FormatFloat(st.Value, 'g', -1, 64),
			strconv.FormatFloat(st.Slope, 'g', -1, 64),
			strconv.FormatFloat(st.Next, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// jsonSafe maps NaN and Inf, which encoding/json rejects, to 0. The Converged
// flag and Error field tell the two apart.
func jsonSafe(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// List returns every stored run, oldest first. Directories without readable
// metadata are skipped.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadSteps(runID string) ([]newton.Step, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, stepsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 5

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	steps := make([]newton.Step, 0, len(records))
	for i := 1; i < len(records); i++ {
		rec := records[i]
		it, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("run %s line %d: %w", runID, i+1, err)
		}
		vals := make([]float64, 4)
		for j := range vals {
			vals[j], err = strconv.ParseFloat(rec[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("run %s line %d: %w", runID, i+1, err)
			}
		}
		steps = append(steps, newton.Step{
			Iteration: it,
			Guess:     vals[0],
			Value:     vals[1],
			Slope:     vals[2],
			Next:      vals[3],
		})
	}

	return steps, nil
}
