// Package config defines the JSON run configuration of the morph tool.
package config

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/blowekamp/itkBinaryMorphologyPerformance/logging"
	"github.com/blowekamp/itkBinaryMorphologyPerformance/morphology"
)

// Config describes one morphology run.
type Config struct {
	Operation string `json:"operation" jsonschema:"enum=dilate,enum=erode,enum=open,enum=close"`
	Radius    Radius `json:"radius"`
	// Foreground and Background default to the largest and lowest value of the pixel type.
	Foreground *float64 `json:"foreground,omitempty"`
	Background *float64 `json:"background,omitempty"`
	// BoundaryToForeground overrides the operation default for pixels beyond the image.
	BoundaryToForeground *bool  `json:"boundary_to_foreground,omitempty"`
	Workers              int    `json:"workers,omitempty"`
	InPlace              bool   `json:"in_place,omitempty"`
	Input                string `json:"input,omitempty"`
	Output               string `json:"output,omitempty"`
	LogLevel             string `json:"log_level,omitempty"`

	ConfigFilePath string `json:"-"`
}

// Radius is the box half width along each axis. In JSON it is either a list or a single number
// applied to every axis.
type Radius []int

// UnmarshalJSON accepts a number or a list of numbers.
func (r *Radius) UnmarshalJSON(data []byte) error {
	var single int
	if err := json.Unmarshal(data, &single); err == nil {
		*r = Radius{single}
		return nil
	}
	var list []int
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.Wrap(err, "radius must be a number or a list of numbers")
	}
	*r = list
	return nil
}

// Validate ensures all parts of the config are valid. path names the config in errors.
func (cfg *Config) Validate(path string) error {
	if cfg.Operation == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "operation")
	}
	if _, err := morphology.ParseOperation(cfg.Operation); err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	if len(cfg.Radius) == 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "radius")
	}
	for i, r := range cfg.Radius {
		if r < 0 {
			return utils.NewConfigValidationError(fmt.Sprintf("%s.radius.%d", path, i),
				errors.Errorf("radius must not be negative but got %d", r))
		}
	}
	if err := validateValue(path, "foreground", cfg.Foreground); err != nil {
		return err
	}
	if err := validateValue(path, "background", cfg.Background); err != nil {
		return err
	}
	if cfg.Workers < 0 {
		return utils.NewConfigValidationError(fmt.Sprintf("%s.workers", path),
			errors.Errorf("workers must not be negative but got %d", cfg.Workers))
	}
	if cfg.LogLevel != "" {
		if _, err := logging.LevelFromString(cfg.LogLevel); err != nil {
			return utils.NewConfigValidationError(fmt.Sprintf("%s.log_level", path), err)
		}
	}
	return nil
}

func validateValue(path, name string, v *float64) error {
	if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
		return utils.NewConfigValidationError(fmt.Sprintf("%s.%s", path, name),
			errors.Errorf("must be a finite number but got %v", *v))
	}
	return nil
}

// Op returns the parsed operation. The config must have been validated.
func (cfg *Config) Op() morphology.Operation {
	op, err := morphology.ParseOperation(cfg.Operation)
	if err != nil {
		return morphology.Dilate
	}
	return op
}

// Schema returns the JSON schema of Config.
func Schema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
