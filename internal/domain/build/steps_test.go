package build

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStepsAreValid(t *testing.T) {
	steps := DefaultSteps()
	require.NoError(t, ValidateSteps(steps))
	assert.Len(t, steps, 8)
	assert.Equal(t, 800*time.Millisecond, steps[0].Delay)
	assert.Equal(t, 100, steps[len(steps)-1].Progress)
}

func TestValidateSteps(t *testing.T) {
	tests := []struct {
		name  string
		steps []types.BuildStep
	}{
		{name: "empty", steps: nil},
		{name: "progress above 100", steps: []types.BuildStep{{Progress: 101}}},
		{name: "negative progress", steps: []types.BuildStep{{Progress: -1}, {Progress: 100}}},
		{name: "decreasing", steps: []types.BuildStep{{Progress: 50}, {Progress: 40}, {Progress: 100}}},
		{name: "does not finish", steps: []types.BuildStep{{Progress: 10}, {Progress: 90}}},
		{name: "negative delay", steps: []types.BuildStep{{Progress: 100, Delay: -time.Second}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSteps(tt.steps)
			assert.ErrorIs(t, err, types.ErrInvalidArgument)

			_, err = NewOrchestrator(tt.steps, nil)
			assert.ErrorIs(t, err, types.ErrInvalidArgument)
		})
	}
}

func TestScaleSteps(t *testing.T) {
	steps := DefaultSteps()

	instant := ScaleSteps(steps, 0)
	for _, step := range instant {
		assert.Zero(t, step.Delay)
	}

	half := ScaleSteps(steps, 0.5)
	assert.Equal(t, 400*time.Millisecond, half[0].Delay)
	assert.Equal(t, 800*time.Millisecond, steps[0].Delay, "input is not modified")
}

func TestParseSteps(t *testing.T) {
	tests := []struct {
		ext  string
		data string
	}{
		{
			ext: ".yaml",
			data: `steps:
  - message: "[SDK] Fetching"
    delay_ms: 250
    progress: 50
  - message: "[SUCCESS] Done"
    delay_ms: 0
    progress: 100
`,
		},
		{
			ext: ".toml",
			data: `[[steps]]
message = "[SDK] Fetching"
delay_ms = 250
progress = 50

[[steps]]
message = "[SUCCESS] Done"
delay_ms = 0
progress = 100
`,
		},
		{
			ext:  ".json",
			data: `{"steps":[{"message":"[SDK] Fetching","delay_ms":250,"progress":50},{"message":"[SUCCESS] Done","delay_ms":0,"progress":100}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			steps, err := ParseSteps(tt.ext, []byte(tt.data))
			require.NoError(t, err)
			require.Len(t, steps, 2)
			assert.Equal(t, "[SDK] Fetching", steps[0].Message)
			assert.Equal(t, 250*time.Millisecond, steps[0].Delay)
			assert.Equal(t, 100, steps[1].Progress)
		})
	}
}

func TestParseStepsRejects(t *testing.T) {
	_, err := ParseSteps(".ini", []byte("steps=1"))
	assert.ErrorIs(t, err, types.ErrInvalidArgument)

	_, err = ParseSteps(".json", []byte(`{"steps":[{"message":"half","progress":50}]}`))
	assert.ErrorIs(t, err, types.ErrInvalidArgument)

	_, err = ParseSteps(".yaml", []byte("steps: [unterminated"))
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestLoadSteps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steps.yml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - message: done\n    progress: 100\n"), 0o644))

	steps, err := LoadSteps(path)
	require.NoError(t, err)
	assert.Equal(t, "done", steps[0].Message)

	_, err = LoadSteps(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
