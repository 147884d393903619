package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/pong/config"
)

// Output handles structured match output with CSV logging.
type Output struct {
	dir         string
	goalsFile   *os.File
	ralliesFile *os.File

	// Track if headers have been written
	goalsHeaderWritten   bool
	ralliesHeaderWritten bool
}

// NewOutput creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled); every method accepts a nil receiver.
func NewOutput(dir string) (*Output, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	o := &Output{dir: dir}

	f, err := os.Create(filepath.Join(dir, "goals.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating goals.csv: %w", err)
	}
	o.goalsFile = f

	f, err = os.Create(filepath.Join(dir, "rallies.csv"))
	if err != nil {
		o.goalsFile.Close()
		return nil, fmt.Errorf("creating rallies.csv: %w", err)
	}
	o.ralliesFile = f

	return o, nil
}

// WriteConfig saves the configuration the run used as YAML.
func (o *Output) WriteConfig(cfg *config.Config) error {
	if o == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(o.dir, "config.yaml"))
}

// WriteGoal appends a goal record to goals.csv.
func (o *Output) WriteGoal(g GoalRecord) error {
	if o == nil {
		return nil
	}
	if err := writeRecord(o.goalsFile, &o.goalsHeaderWritten, g); err != nil {
		return fmt.Errorf("writing goal: %w", err)
	}
	return nil
}

// WriteRallies appends a match summary to rallies.csv.
func (o *Output) WriteRallies(s RallyStats) error {
	if o == nil {
		return nil
	}
	if err := writeRecord(o.ralliesFile, &o.ralliesHeaderWritten, s); err != nil {
		return fmt.Errorf("writing rallies: %w", err)
	}
	return nil
}

// writeRecord writes rec, with the header row on the first write only.
func writeRecord[T any](f *os.File, headerWritten *bool, rec T) error {
	records := []T{rec}
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// Dir returns the output directory path.
func (o *Output) Dir() string {
	if o == nil {
		return ""
	}
	return o.dir
}

// Close flushes and closes all output files.
func (o *Output) Close() error {
	if o == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{o.goalsFile, o.ralliesFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
