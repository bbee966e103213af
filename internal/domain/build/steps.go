package build

import (
	"fmt"
	"time"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/types"
)

// InitialLine opens every build log
const InitialLine = "[SYSTEM] Cloud Build Instance initialized by SMA Systems Engine..."

// DefaultSteps returns the stock Android pipeline
func DefaultSteps() []types.BuildStep {
	return []types.BuildStep{
		{Message: "[SDK] Resolving Gradle dependencies (Android 14 API 34)...", Delay: 800 * time.Millisecond, Progress: 10},
		{Message: "[ASSETS] Vectorizing launcher icon for multiple DPIs...", Delay: 1000 * time.Millisecond, Progress: 25},
		{Message: "[BRIDGE] Injecting WebView Javascript Interface v4.0...", Delay: 700 * time.Millisecond, Progress: 40},
		{Message: "[CONFIG] Generating R.java and ProGuard mapping files...", Delay: 1200 * time.Millisecond, Progress: 55},
		{Message: "[NATIVE] Compiling ARM64-v8a and X86_64 binary modules...", Delay: 1500 * time.Millisecond, Progress: 75},
		{Message: "[SECURITY] Signing APK with Production Keystore (v2 Scheme)...", Delay: 1800 * time.Millisecond, Progress: 90},
		{Message: "[COMPRESS] Optimizing resources for 0-install deployment...", Delay: 900 * time.Millisecond, Progress: 100},
		{Message: "[SUCCESS] APK Build Compiled by Sayed Mohsin Ali.", Delay: 500 * time.Millisecond, Progress: 100},
	}
}

// ValidateSteps checks that a step table can drive a build to 100%
func ValidateSteps(steps []types.BuildStep) error {
	if len(steps) == 0 {
		return fmt.Errorf("%w: step list is empty", types.ErrInvalidArgument)
	}

	prev := 0
	for i, step := range steps {
		if step.Progress < 0 || step.Progress > 100 {
			return fmt.Errorf("%w: step %d progress %d out of range", types.ErrInvalidArgument, i, step.Progress)
		}
		if step.Progress < prev {
			return fmt.Errorf("%w: step %d progress %d below previous %d", types.ErrInvalidArgument, i, step.Progress, prev)
		}
		if step.Delay < 0 {
			return fmt.Errorf("%w: step %d has negative delay", types.ErrInvalidArgument, i)
		}
		prev = step.Progress
	}

	if prev != 100 {
		return fmt.Errorf("%w: final progress is %d, want 100", types.ErrInvalidArgument, prev)
	}
	return nil
}

// ScaleSteps returns a copy of steps with every delay multiplied by factor.
// A factor of 0 makes builds instant.
func ScaleSteps(steps []types.BuildStep, factor float64) []types.BuildStep {
	out := make([]types.BuildStep, len(steps))
	copy(out, steps)
	if factor == 1 {
		return out
	}
	for i := range out {
		out[i].Delay = time.Duration(float64(out[i].Delay) * factor)
	}
	return out
}
