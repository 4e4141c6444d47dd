package config

import (
	"fmt"
	"net/url"
	"strings"

	"alertstate/pkg/logging"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// ValidateRequired checks if a required string field is not empty
func ValidateRequired(field, value, entityType string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf("is required for %s", entityType),
		}
	}
	return nil
}

// ValidateOneOf checks if a value is in a list of allowed values
func ValidateOneOf(field, value string, allowed []string) error {
	for _, allowedValue := range allowed {
		if value == allowedValue {
			return nil
		}
	}
	return ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// Validate checks the configuration and reports every problem at once.
// Datadog keys are checked when the client is opened, not here.
func Validate(cfg AlertstateConfig) error {
	var errs ValidationErrors

	if err := ValidateRequired("project.name", cfg.Project.Name, "config"); err != nil {
		errs = append(errs, err.(ValidationError))
	} else if strings.ContainsAny(cfg.Project.Name, ", ") {
		errs.Add("project.name", "must be a single tag without spaces or commas", cfg.Project.Name)
	}
	if err := ValidateRequired("project.dir", cfg.Project.Dir, "config"); err != nil {
		errs = append(errs, err.(ValidationError))
	}
	if err := ValidateRequired("datadog.site", cfg.Datadog.Site, "config"); err != nil {
		errs = append(errs, err.(ValidationError))
	}
	if cfg.Datadog.PageSize < 1 || cfg.Datadog.PageSize > MaxPageSize {
		errs.Add("datadog.pageSize", fmt.Sprintf("must be between 1 and %d", MaxPageSize), cfg.Datadog.PageSize)
	}
	if cfg.Datadog.Timeout < 0 {
		errs.Add("datadog.timeout", "must not be negative", cfg.Datadog.Timeout)
	}
	if cfg.Retry.MaxRetries < 0 {
		errs.Add("retry.maxRetries", "must not be negative", cfg.Retry.MaxRetries)
	}
	if cfg.Retry.Cooldown < 0 {
		errs.Add("retry.cooldown", "must not be negative", cfg.Retry.Cooldown)
	}
	if cfg.Metrics.PushgatewayURL != "" {
		if u, err := url.Parse(cfg.Metrics.PushgatewayURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs.Add("metrics.pushgatewayURL", "must be an absolute URL", cfg.Metrics.PushgatewayURL)
		}
	}
	if _, err := logging.ParseLevel(cfg.Logging.Level); err != nil {
		errs.Add("logging.level", err.Error(), cfg.Logging.Level)
	}
	if err := ValidateOneOf("logging.format", cfg.Logging.Format, []string{"text", "json"}); err != nil {
		errs = append(errs, err.(ValidationError))
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
