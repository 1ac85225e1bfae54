package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/polyroot/internal/newton"
	"github.com/san-kum/polyroot/internal/storage"
)

// RunData is a stored run together with its full iteration trace.
type RunData struct {
	storage.RunMetadata
	Steps []newton.Step `json:"steps"`
}

func WriteJSON(w io.Writer, meta *storage.RunMetadata, steps []newton.Step) error {
	if steps == nil {
		steps = []newton.Step{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(RunData{RunMetadata: *meta, Steps: steps})
}

func ExportJSON(path string, meta *storage.RunMetadata, steps []newton.Step) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(f, meta, steps)
}
