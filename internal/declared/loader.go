package declared

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"

	"alertstate/internal/config"
	"alertstate/internal/monitor"
	"alertstate/pkg/logging"
)

const errorCategory = "monitors"

// Loader reads the declared monitors of one project.
type Loader struct {
	store        *Store
	project      string
	notification string
}

// NewLoader creates a loader for the project. Every loaded record is tagged
// with project and has notification appended to its messages.
func NewLoader(store *Store, project, notification string) *Loader {
	return &Loader{
		store:        store,
		project:      project,
		notification: notification,
	}
}

// Load parses every monitor file of the project directory, in file name
// order. All malformed, invalid or duplicate definitions are collected and
// returned together as a *config.ConfigurationErrorCollection.
func (l *Loader) Load() ([]monitor.Record, error) {
	files, err := l.store.Files()
	if err != nil {
		return nil, err
	}

	errs := config.NewConfigurationErrorCollection()
	seen := make(map[string]string, len(files))
	records := make([]monitor.Record, 0, len(files))

	for _, path := range files {
		fileName := filepath.Base(path)

		data, err := l.store.Read(path)
		if err != nil {
			errs.AddError(path, fileName, errorCategory, config.ErrorTypeIO, err.Error())
			continue
		}

		record, err := parseRecord(path, data)
		if err != nil {
			errs.Add(config.NewConfigurationErrorWithDetails(path, fileName, errorCategory, config.ErrorTypeParse,
				"invalid monitor definition", err.Error(), []string{"Check the file is valid JSON or YAML"}))
			continue
		}

		if err := validateRecord(record); err != nil {
			errs.AddError(path, fileName, errorCategory, config.ErrorTypeValidation, err.Error())
			continue
		}

		if first, ok := seen[record.Name]; ok {
			errs.Add(config.NewConfigurationErrorWithDetails(path, fileName, errorCategory, config.ErrorTypeDuplicate,
				fmt.Sprintf("duplicate monitor name %q", record.Name),
				fmt.Sprintf("also declared in %s", first),
				[]string{"Monitor names identify monitors remotely and must be unique per project"}))
			continue
		}
		seen[record.Name] = fileName

		if record.HasID() {
			logging.Warn("Loader", "Ignoring id %d in %s, declared monitors are matched by name", record.RemoteID(), fileName)
			record.ID = nil
		}

		records = append(records, l.Normalize(record))
	}

	if err := errs.ErrOrNil(); err != nil {
		return nil, err
	}

	logging.Info("Loader", "Loaded %d declared monitors for project %s from %s", len(records), l.project, l.store.Dir())
	return records, nil
}

// Normalize tags the record with the project and appends the notification
// to the message and to a present escalation message. Already normalized
// values are left alone.
func (l *Loader) Normalize(r monitor.Record) monitor.Record {
	out := r.Clone()

	if !out.HasTag(l.project) {
		out.Tags = append(out.Tags, l.project)
	}

	if l.notification != "" {
		out.Message = appendNotification(out.Message, l.notification)
		if msg, ok := out.EscalationMessage(); ok {
			out.Options[monitor.EscalationMessageKey] = appendNotification(msg, l.notification)
		}
	}

	return out
}

// Denormalize reverses Normalize so that a remote monitor can be written back
// as a declared file.
func (l *Loader) Denormalize(r monitor.Record) monitor.Record {
	out := r.Clone()
	out.ID = nil

	tags := out.Tags[:0]
	for _, tag := range out.Tags {
		if tag != l.project {
			tags = append(tags, tag)
		}
	}
	out.Tags = tags

	if l.notification != "" {
		out.Message = stripNotification(out.Message, l.notification)
		if msg, ok := out.EscalationMessage(); ok {
			out.Options[monitor.EscalationMessageKey] = stripNotification(msg, l.notification)
		}
	}

	return out
}

func appendNotification(msg, notification string) string {
	if strings.HasSuffix(msg, notification) {
		return msg
	}
	return fmt.Sprintf("%s %s", msg, notification)
}

func stripNotification(msg, notification string) string {
	if !strings.HasSuffix(msg, notification) {
		return msg
	}
	return strings.TrimSuffix(strings.TrimSuffix(msg, notification), " ")
}

// parseRecord decodes a JSON or YAML monitor definition, by file extension.
func parseRecord(path string, data []byte) (monitor.Record, error) {
	var record monitor.Record
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &record); err != nil {
			return monitor.Record{}, err
		}
		return record, nil
	}
	if err := yaml.Unmarshal(data, &record); err != nil {
		return monitor.Record{}, err
	}
	return record, nil
}

func validateRecord(r monitor.Record) error {
	var errs []error
	if err := config.ValidateRequired("name", r.Name, "monitor"); err != nil {
		errs = append(errs, err)
	}
	if err := config.ValidateRequired("query", r.Query, "monitor"); err != nil {
		errs = append(errs, err)
	}
	if err := config.ValidateRequired("type", r.Type, "monitor"); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
