// Package clashconfig models named Clash configuration profiles and the
// engine that applies them to a generated subscription document.
package clashconfig

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/orris-inc/subhub/internal/domain/clashconfig/document"
	"github.com/orris-inc/subhub/internal/shared/errors"
)

var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9]{2,50}$`)

// Profile is a stored set of global overrides and custom rules, selected at
// request time by its Key.
type Profile struct {
	id           string
	key          string
	name         string
	globalConfig *string
	rules        *string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewProfile validates the inputs and creates a profile. Blank globalConfig
// or rules are stored as absent.
func NewProfile(key, name, globalConfig, rules string) (*Profile, error) {
	p := &Profile{}
	if err := p.apply(key, name, globalConfig, rules); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p.createdAt = now
	p.updatedAt = now
	return p, nil
}

// ReconstructProfile rebuilds a profile from storage without validation.
func ReconstructProfile(id, key, name string, globalConfig, rules *string, createdAt, updatedAt time.Time) *Profile {
	return &Profile{
		id:           id,
		key:          key,
		name:         name,
		globalConfig: globalConfig,
		rules:        rules,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Update replaces every editable field, with the same checks as NewProfile.
func (p *Profile) Update(key, name, globalConfig, rules string) error {
	next := *p
	if err := next.apply(key, name, globalConfig, rules); err != nil {
		return err
	}
	next.updatedAt = time.Now().UTC()
	*p = next
	return nil
}

func (p *Profile) apply(key, name, globalConfig, rules string) error {
	key = strings.TrimSpace(key)
	name = strings.TrimSpace(name)

	if err := ValidateKey(key); err != nil {
		return err
	}
	if name == "" {
		return errors.NewValidationError("name is required")
	}
	if err := ValidateGlobalConfig(globalConfig); err != nil {
		return err
	}
	if _, err := CompileRules(rules); err != nil {
		return err
	}

	p.key = key
	p.name = name
	p.globalConfig = optional(globalConfig)
	p.rules = optional(rules)
	return nil
}

// ValidateKey checks the profile key format.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return errors.NewValidationError(
			"invalid profile key",
			"key must be 2-50 letters or digits",
		)
	}
	return nil
}

// ValidateGlobalConfig checks that text is blank or a YAML mapping.
func ValidateGlobalConfig(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if _, err := document.Parse(text); err != nil {
		return errors.NewValidationError("globalConfig must be a YAML mapping", err.Error())
	}
	return nil
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func (p *Profile) ID() string { return p.id }

func (p *Profile) Key() string { return p.key }

func (p *Profile) Name() string { return p.name }

// GlobalConfig returns the YAML override fragment, or nil.
func (p *Profile) GlobalConfig() *string { return p.globalConfig }

// Rules returns the newline-delimited rule lines, or nil.
func (p *Profile) Rules() *string { return p.rules }

func (p *Profile) CreatedAt() time.Time { return p.createdAt }

func (p *Profile) UpdatedAt() time.Time { return p.updatedAt }

// SetID assigns the storage identifier once the profile is persisted.
func (p *Profile) SetID(id string) error {
	if p.id != "" {
		return fmt.Errorf("profile ID is already set")
	}
	p.id = id
	return nil
}
