package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate validates the configuration using struct tags and custom rules.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	if err := validateCustomRules(cfg); err != nil {
		return err
	}

	return nil
}

// validateCustomRules performs custom validation beyond struct tags.
func validateCustomRules(cfg *Config) error {
	// Option strings are comma-separated mount options; whitespace would
	// split the mount command's -o argument.
	for name, opts := range map[string]string{
		"default_options": cfg.Mount.DefaultOptions,
		"ssd_options":     cfg.Mount.SSDOptions,
	} {
		if strings.ContainsAny(opts, " \t") {
			return fmt.Errorf("mount.%s: option string %q must not contain whitespace", name, opts)
		}
	}

	if cfg.Mount.StagingRoot == "/" {
		return fmt.Errorf("mount.staging_root: refusing to stage mounts directly under /")
	}

	return nil
}

// formatValidationError converts validator errors into readable messages.
func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, fmt.Sprintf(
			"%s: failed %q validation (value: %v)",
			fieldErr.Namespace(), fieldErr.Tag(), fieldErr.Value(),
		))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}
