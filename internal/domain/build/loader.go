package build

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/types"
	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// stepFile is the on-disk layout of a custom step table:
//
//	steps:
//	  - message: "[SDK] Resolving..."
//	    delay_ms: 800
//	    progress: 10
type stepFile struct {
	Steps []stepRecord `json:"steps" yaml:"steps" toml:"steps"`
}

type stepRecord struct {
	Message  string `json:"message" yaml:"message" toml:"message"`
	DelayMS  int64  `json:"delay_ms" yaml:"delay_ms" toml:"delay_ms"`
	Progress int    `json:"progress" yaml:"progress" toml:"progress"`
}

// LoadSteps reads and validates a step table. The format is chosen by file
// extension: .yaml/.yml, .toml or .json.
func LoadSteps(path string) ([]types.BuildStep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read step file: %w", err)
	}

	steps, err := ParseSteps(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return steps, nil
}

// ParseSteps decodes a step table in the format named by ext
func ParseSteps(ext string, data []byte) ([]types.BuildStep, error) {
	var file stepFile

	var err error
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	case ".toml":
		err = toml.Unmarshal(data, &file)
	case ".json":
		err = sonic.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("%w: unsupported step file format %q", types.ErrInvalidArgument, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decode steps: %v", types.ErrInvalidArgument, err)
	}

	steps := make([]types.BuildStep, len(file.Steps))
	for i, rec := range file.Steps {
		steps[i] = types.BuildStep{
			Message:  rec.Message,
			Delay:    time.Duration(rec.DelayMS) * time.Millisecond,
			Progress: rec.Progress,
		}
	}

	if err := ValidateSteps(steps); err != nil {
		return nil, err
	}
	return steps, nil
}
