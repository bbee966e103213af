package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/types"
)

// String length limits
const (
	MaxNameLength        = 256
	MaxURLLength         = 2048
	MaxDescriptionLength = 2048
	MaxColorLength       = 64
	MaxPromptLength      = 16 * 1024
	MaxImageSourceLength = 8 * 1024 * 1024 // data URL of an icon being edited
)

// ValidateString validates a string field with length and content checks.
// Errors wrap types.ErrInvalidArgument.
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%w: %s is required", types.ErrInvalidArgument, fieldName)
	}

	if value == "" && !required {
		return nil // Optional field, empty is OK
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%w: %s must be at least %d characters", types.ErrInvalidArgument, fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%w: %s must not exceed %d characters", types.ErrInvalidArgument, fieldName, maxLen)
	}

	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%w: %s contains invalid characters", types.ErrInvalidArgument, fieldName)
	}

	return nil
}

// ValidateProject bounds the free-text fields of a project config. Empty
// name and url are allowed: they only keep a build from starting.
func ValidateProject(cfg types.ProjectConfig) error {
	fields := []struct {
		value, name string
		max         int
	}{
		{cfg.Name, "name", MaxNameLength},
		{cfg.URL, "url", MaxURLLength},
		{cfg.Description, "description", MaxDescriptionLength},
		{cfg.PrimaryColor, "primaryColor", MaxColorLength},
		{cfg.SecondaryColor, "secondaryColor", MaxColorLength},
		{cfg.AccentColor, "accentColor", MaxColorLength},
		{cfg.UserAgent, "userAgent", MaxDescriptionLength},
	}
	for _, f := range fields {
		if err := ValidateString(f.value, f.name, 0, f.max, false); err != nil {
			return err
		}
	}

	// Icons are often inline data URLs
	return ValidateString(cfg.Icon, "icon", 0, MaxImageSourceLength, false)
}

// ValidatePrompt validates an icon prompt
func ValidatePrompt(prompt string) error {
	if err := ValidateString(prompt, "prompt", 1, MaxPromptLength, true); err != nil {
		return err
	}
	if strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("%w: prompt is blank", types.ErrInvalidArgument)
	}
	return nil
}

// ValidateImageSource validates the image handed to an icon edit
func ValidateImageSource(source string) error {
	return ValidateString(source, "image", 1, MaxImageSourceLength, true)
}
