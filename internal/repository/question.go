package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aliskhannn/quizmentor/internal/domain/entities"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrEmptyBank        = errors.New("question bank has no categories")
	ErrTooManyOptions   = errors.New("question has too many options")
)

// MaxOptions is the most options a question may have; clients bind them to keys 1-9.
const MaxOptions = 9

// bankFile is the on-disk layout of a question bank.
type bankFile struct {
	Categories []categoryFile `json:"categories" yaml:"categories"`
}

type categoryFile struct {
	Name      string              `json:"name" yaml:"name"`
	Questions []entities.Question `json:"questions" yaml:"questions"`
}

// QuestionRepository provides read access to question banks grouped by category.
// The whole bank is loaded into memory once.
type QuestionRepository struct {
	categories map[string][]entities.Question // keyed by lowercase name
	names      []string                       // display names, sorted
}

// NewQuestionRepository loads a bank from a YAML or JSON file.
func NewQuestionRepository(path string) (*QuestionRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}

	bank, err := parseBank(data, path)
	if err != nil {
		return nil, err
	}

	return newFromBank(bank)
}

func newFromBank(bank bankFile) (*QuestionRepository, error) {
	if len(bank.Categories) == 0 {
		return nil, ErrEmptyBank
	}

	r := &QuestionRepository{categories: make(map[string][]entities.Question)}
	for _, c := range bank.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("question bank: category without a name")
		}
		key := strings.ToLower(name)
		if _, dup := r.categories[key]; dup {
			return nil, fmt.Errorf("question bank: duplicate category %q", name)
		}

		questions := make([]entities.Question, 0, len(c.Questions))
		for _, q := range c.Questions {
			if len(q.Options) > MaxOptions {
				return nil, fmt.Errorf("question bank: %q in %q: %w (%d > %d)",
					q.ID, name, ErrTooManyOptions, len(q.Options), MaxOptions)
			}
			q.Category = name
			questions = append(questions, q)
		}
		r.categories[key] = questions
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)

	return r, nil
}

func parseBank(data []byte, path string) (bankFile, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		return parseJSONBank(data)
	}
	return parseYAMLBank(data)
}

func parseJSONBank(data []byte) (bankFile, error) {
	var bank bankFile
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&bank); err != nil {
		return bankFile{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return bankFile{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return bankFile{}, fmt.Errorf("parse json: %w", err)
	}
	return bank, nil
}

func parseYAMLBank(data []byte) (bankFile, error) {
	var bank bankFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bank); err != nil {
		return bankFile{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return bankFile{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return bankFile{}, fmt.Errorf("parse yaml: %w", err)
	}
	return bank, nil
}

// Categories returns the category names in alphabetical order.
func (r *QuestionRepository) Categories() []string {
	return append([]string(nil), r.names...)
}

// GetByCategory returns a copy of the questions in a category.
// Matching ignores case and surrounding spaces.
// Questions are returned as stored; validation is the session's job.
func (r *QuestionRepository) GetByCategory(category string) ([]entities.Question, error) {
	qs, ok := r.categories[strings.ToLower(strings.TrimSpace(category))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCategoryNotFound, category)
	}

	result := make([]entities.Question, 0, len(qs))
	for _, q := range qs {
		result = append(result, q.Clone())
	}
	return result, nil
}

// DisplayName returns the canonical spelling of a category.
func (r *QuestionRepository) DisplayName(category string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(category))
	qs, ok := r.categories[key]
	if !ok {
		return "", false
	}
	for _, n := range r.names {
		if strings.ToLower(n) == key {
			return n, true
		}
	}
	if len(qs) > 0 {
		return qs[0].Category, true
	}
	return "", false
}
