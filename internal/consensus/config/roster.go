package config

import (
	"fmt"

	"github.com/polyneurons/polyneurons-backend/pkg/yaml"
)

// RosterFile is the on-disk validator roster.
//
//	required_confirmations: 3
//	validators:
//	  - identity: "0xf39F..."
//	    name: alpha
type RosterFile struct {
	RequiredConfirmations uint32            `yaml:"required_confirmations"`
	Validators            []RosterValidator `yaml:"validators" validate:"min=1"`
}

type RosterValidator struct {
	Identity string `yaml:"identity" validate:"required"`
	Name     string `yaml:"name" validate:"max=64"`
}

// LoadRoster reads and validates a roster file.
func LoadRoster(path string) (*RosterFile, error) {
	var roster RosterFile
	if err := yaml.LoadAndValidate(path, &roster); err != nil {
		return nil, fmt.Errorf("failed to load validator roster: %w", err)
	}
	return &roster, nil
}

// Identities returns the roster identities in file order.
func (r *RosterFile) Identities() []string {
	identities := make([]string, 0, len(r.Validators))
	for _, v := range r.Validators {
		identities = append(identities, v.Identity)
	}
	return identities
}
