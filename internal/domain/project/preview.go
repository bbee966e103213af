package project

import (
	"strings"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/types"
)

// SandboxAttributes is the sandbox token list of the phone-frame preview
const SandboxAttributes = "allow-scripts allow-same-origin allow-forms allow-popups allow-modals allow-presentation allow-downloads"

// alwaysAllowed sensors are delegated regardless of feature toggles
var alwaysAllowed = []string{
	"accelerometer *",
	"gyroscope *",
	"magnetometer *",
	"payment *",
	"usb *",
}

// FeaturePolicy builds the iframe allow attribute for a project's toggles
func FeaturePolicy(f types.Features) string {
	directives := make([]string, 0, 8)
	if f.CameraAccess {
		directives = append(directives, "camera *")
	}
	if f.MicAccess {
		directives = append(directives, "microphone *")
	}
	if f.LocationAccess {
		directives = append(directives, "geolocation *")
	}
	directives = append(directives, alwaysAllowed...)
	return strings.Join(directives, "; ")
}
