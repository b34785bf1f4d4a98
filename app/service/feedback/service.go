package feedback

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/do"
)

var dbFilePath = filepath.Join("data", "feedback.jsonl")

// Service persists training feedback as JSON lines. Volume is tiny, so the
// whole file is rewritten-free: records are only ever appended.
type Service struct {
	mu   sync.RWMutex
	path string
}

func New(_ *do.Injector) (*Service, error) {
	return NewService(dbFilePath)
}

func NewService(path string) (*Service, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create feedback dir: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open feedback file: %w", err)
	}
	defer file.Close()

	return &Service{path: path}, nil
}

// Add stamps and appends one feedback record.
func (s *Service) Add(req SubmitRequest) (*Record, error) {
	record := Record{
		ID:              uuid.NewString(),
		Query:           req.Query,
		Intent:          req.Intent,
		CorrectResponse: req.CorrectResponse,
		Feedback:        req.Feedback,
		CreatedAt:       time.Now(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal feedback record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open feedback file: %w", err)
	}
	defer file.Close()

	if _, err = file.WriteString(string(data) + "\n"); err != nil {
		return nil, fmt.Errorf("failed to write feedback record: %w", err)
	}

	slog.Info("Stored training feedback",
		"id", record.ID,
		"intent", record.Intent)

	return &record, nil
}

// List returns every stored record in insertion order.
func (s *Service) List() ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := os.OpenFile(s.path, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open feedback file: %w", err)
	}
	defer file.Close()

	records := make([]Record, 0)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var record Record
		if err = json.Unmarshal([]byte(line), &record); err != nil {
			return nil, fmt.Errorf("failed to parse feedback line: %w", err)
		}

		records = append(records, record)
	}

	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading feedback file: %w", err)
	}

	return records, nil
}
