package declared

import (
	"encoding/json"
	"errors"
	"fmt"

	"alertstate/internal/monitor"
	"alertstate/pkg/logging"
)

// ExportResult lists what Export did with each remote monitor.
type ExportResult struct {
	Written []string
	Skipped []string
}

// Export writes remote monitors into the project directory as declared JSON
// files, undoing the normalization the loader applies. Files that existed
// before the export are skipped unless overwrite is set.
//
// Names that sanitize to a file already used by this export get the remote
// id appended, so every monitor ends up in its own file.
func (l *Loader) Export(records []monitor.Record, overwrite bool) (ExportResult, error) {
	var result ExportResult

	fileNames, err := l.fileNames(records)
	if err != nil {
		return result, err
	}

	for i, r := range records {
		data, err := json.MarshalIndent(l.Denormalize(r), "", "  ")
		if err != nil {
			return result, fmt.Errorf("failed to encode monitor %q: %w", r.Name, err)
		}
		data = append(data, '\n')

		path, err := l.store.Save(fileNames[i], data, overwrite)
		if err != nil {
			if errors.Is(err, ErrFileExists) {
				result.Skipped = append(result.Skipped, path)
				continue
			}
			return result, err
		}
		result.Written = append(result.Written, path)
	}

	return result, nil
}

// fileNames picks the name each record is saved under, before anything is
// written.
func (l *Loader) fileNames(records []monitor.Record) ([]string, error) {
	names := make([]string, len(records))
	claimed := make(map[string]string, len(records))

	for i, r := range records {
		name := r.Name
		if other, ok := claimed[l.store.Path(name)]; ok {
			name = fmt.Sprintf("%s %d", r.Name, r.RemoteID())
			if again, ok := claimed[l.store.Path(name)]; ok {
				return nil, fmt.Errorf("monitors %q and %q would both be exported to %s", r.Name, again, l.store.Path(name))
			}
			logging.Warn("Export", "Monitor %q shares its file name with %q, writing %s", r.Name, other, l.store.Path(name))
		}
		claimed[l.store.Path(name)] = r.Name
		names[i] = name
	}
	return names, nil
}
