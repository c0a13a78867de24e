package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rgehrsitz/regime7/internal/domain"
)

// Formatter renders a set of projection tables into bytes
type Formatter interface {
	Name() string
	Format(set *domain.ProjectionSet) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(set *domain.ProjectionSet) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(set *domain.ProjectionSet) ([]byte, error) { return f.F(set) }

var formatters = map[string]Formatter{
	"console":     ConsoleFormatter{},
	"csv":         CSVFormatter{View: ViewFull},
	"csv-regime":  CSVFormatter{View: ViewRegime},
	"csv-post":    CSVFormatter{View: ViewPost},
	"csv-sources": CSVFormatter{View: ViewSources},
	"json":        JSONFormatter{},
	"html":        HTMLFormatter{},
	"pdf":         PDFFormatter{},
}

var formatAliases = map[string]string{
	"table":   "console",
	"text":    "console",
	"regime":  "csv-regime",
	"post":    "csv-post",
	"sources": "csv-sources",
}

// AvailableFormatterNames lists the registered formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted alternative names, sorted
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}

// GetFormatterByName resolves a formatter or alias; nil when unknown
func GetFormatterByName(name string) Formatter {
	if target, ok := formatAliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// WriteFormatted formats the set and writes it to a timestamped file in the
// working directory, returning the file name
func WriteFormatted(f Formatter, set *domain.ProjectionSet, ext string) (string, error) {
	filename := fmt.Sprintf("regime7_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := WriteFormattedFile(f, set, filename); err != nil {
		return "", err
	}
	return filename, nil
}

// WriteFormattedFile formats the set and writes it to path
func WriteFormattedFile(f Formatter, set *domain.ProjectionSet, path string) error {
	data, err := f.Format(set)
	if err != nil {
		return fmt.Errorf("%s formatter failed: %w", f.Name(), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
