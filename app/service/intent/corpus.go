package intent

import (
	"encoding/json"
	"log/slog"
	"os"

	_ "embed"
)

//go:embed corpus.json
var defaultCorpus []byte

type corpusFile struct {
	TrainingDataset struct {
		Data []TrainingExample `json:"data"`
	} `json:"training_dataset"`
}

// loadCorpus reads the training corpus from path, falling back to the
// embedded corpus. A missing or broken corpus is never fatal: the classifier
// degrades to an empty index and every message routes to general_inquiry.
func loadCorpus(path string) []TrainingExample {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("Training corpus not readable, using embedded corpus",
				"path", path,
				"error", err)
		} else if examples, err := parseCorpus(data); err != nil {
			slog.Warn("Training corpus not parsable, using embedded corpus",
				"path", path,
				"error", err)
		} else {
			return examples
		}
	}

	examples, err := parseCorpus(defaultCorpus)
	if err != nil {
		slog.Error("Embedded training corpus is broken", "error", err)
		return nil
	}

	return examples
}

// DefaultCorpus returns the embedded training corpus.
func DefaultCorpus() []TrainingExample {
	examples, _ := parseCorpus(defaultCorpus)
	return examples
}

func parseCorpus(data []byte) ([]TrainingExample, error) {
	var file corpusFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	return file.TrainingDataset.Data, nil
}
