package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"compta/internal/core"
)

// Mapping declares which source columns feed which transaction fields.
// Optional columns may be empty; every parsed row then carries an empty
// value for the corresponding field.
type Mapping struct {
	DateColumn          string `yaml:"date_column"`
	LabelColumn         string `yaml:"label_column"`
	AmountColumn        string `yaml:"amount_column"`
	CategoryID          int64  `yaml:"category_id"`
	CounterpartyColumn  string `yaml:"counterparty_column,omitempty"`
	PaymentMethodColumn string `yaml:"payment_method_column,omitempty"`
	NoteColumn          string `yaml:"note_column,omitempty"`
	AttachmentColumn    string `yaml:"attachment_column,omitempty"`
	InvertAmount        bool   `yaml:"invert_amount"`
}

func (m Mapping) Validate() error {
	if m.DateColumn == "" || m.LabelColumn == "" || m.AmountColumn == "" {
		return fmt.Errorf("mapping needs date, label and amount columns: %w", core.ErrValidation)
	}
	if m.CategoryID <= 0 {
		return fmt.Errorf("mapping needs a category id: %w", core.ErrValidation)
	}
	return nil
}

// LoadMapping reads a reusable import profile from a YAML file.
func LoadMapping(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Mapping{}, fmt.Errorf("read mapping file: %w", err)
	}
	var m Mapping
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Mapping{}, fmt.Errorf("parse mapping file: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Mapping{}, err
	}
	return m, nil
}
