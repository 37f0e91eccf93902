package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/Bencode92/smartmoney-scraper-sub001/internal/model"
)

// ErrNotFound indicates the input source does not exist.
var ErrNotFound = errors.New("input source not found")

// SchemaError reports a record that fails validation. A single bad record
// aborts the whole load; there is no per-record recovery.
type SchemaError struct {
	FundID string
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error in fund %q, field %s: %s", e.FundID, e.Field, e.Reason)
}

// Source supplies already-parsed fund records to the pipeline.
type Source interface {
	Funds() ([]model.FundRecord, error)
	Name() string
}

// FileSource reads the manually collected fund snapshot JSON file.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource { return &FileSource{Path: path} }

func (s *FileSource) Name() string { return "file:" + s.Path }

func (s *FileSource) Funds() ([]model.FundRecord, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.Path)
		}
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	var doc struct {
		Funds []model.FundRecord `json:"funds"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	return doc.Funds, nil
}

// MockSource returns fixed records for development and testing.
type MockSource struct {
	Records []model.FundRecord
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Funds() ([]model.FundRecord, error) { return m.Records, nil }

var validate = validator.New()

// Load fetches records from the source and validates every fund and holding.
func Load(src Source) ([]model.FundRecord, error) {
	funds, err := src.Funds()
	if err != nil {
		return nil, err
	}
	if err := Validate(funds); err != nil {
		return nil, err
	}
	holdings := 0
	for _, f := range funds {
		holdings += len(f.Holdings)
	}
	log.Debug().Str("source", src.Name()).Int("funds", len(funds)).Int("holdings", holdings).Msg("loaded fund records")
	return funds, nil
}

// Validate checks the batch against the record schema, stopping at the first
// bad record.
func Validate(funds []model.FundRecord) error {
	for _, f := range funds {
		if err := validate.Struct(f); err != nil {
			var verrs validator.ValidationErrors
			field := "?"
			reason := err.Error()
			if errors.As(err, &verrs) && len(verrs) > 0 {
				field = verrs[0].Namespace()
				reason = fmt.Sprintf("failed %q constraint", verrs[0].Tag())
			}
			return &SchemaError{FundID: f.FundID, Field: field, Reason: reason}
		}
	}
	return nil
}
