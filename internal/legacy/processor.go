package legacy

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"git.home.luguber.info/inful/autosite/internal/config"
	"git.home.luguber.info/inful/autosite/internal/foundation/errors"
	"git.home.luguber.info/inful/autosite/internal/listindex"
	"git.home.luguber.info/inful/autosite/internal/markdown"
)

// MainContentKey is the template key holding the converted body.
const MainContentKey = "main_content"

// Header keys copied into the list record.
var requiredKeys = []string{"url", "title", "data", "description"}

// Result describes one processed entry.
type Result struct {
	Output string
	Record listindex.Entry
	// Raw is the unmodified source file.
	Raw []byte
}

// Processor renders legacy entries.
type Processor struct {
	converter *markdown.Converter
}

// NewProcessor returns a Processor whose code blocks carry
// data-enlighter-language attributes.
func NewProcessor() *Processor {
	return &Processor{converter: markdown.New(markdown.WithEnlighterCodeBlocks())}
}

// Process renders entry and appends it to its list file.
func (p *Processor) Process(entry config.Entry) (Result, error) {
	// #nosec G304 -- entry paths come from the operator's configuration.
	raw, err := os.ReadFile(entry.Source)
	if os.IsNotExist(err) {
		return Result{}, errors.NotFoundError("entry source not found").
			WithContext("path", entry.Source).Build()
	}
	if err != nil {
		return Result{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to read entry source").
			WithContext("path", entry.Source).Build()
	}

	src, err := ParseSource(raw)
	if err != nil {
		return Result{}, withPath(err, entry.Source)
	}
	if missing := missingKeys(src.Header); len(missing) > 0 {
		return Result{}, errors.ValidationError("entry header is missing required keys: "+strings.Join(missing, ", ")).
			WithContext("path", entry.Source).Build()
	}

	html, err := p.converter.Convert(src.Body)
	if err != nil {
		return Result{}, withPath(err, entry.Source)
	}

	ctx := make(map[string]string, len(src.Header)+1)
	for k, v := range src.Header {
		ctx[k] = v
	}
	ctx[MainContentKey] = html

	rendered, err := renderTemplateFile(entry.Template, ctx)
	if err != nil {
		return Result{}, err
	}
	if err := writeOutput(entry.Output, rendered); err != nil {
		return Result{}, err
	}

	list, err := listindex.Open(entry.List)
	if err != nil {
		return Result{}, err
	}
	record, err := list.Add(src.Header["url"], src.Header["title"], src.Header["data"], src.Header["description"])
	if err != nil {
		return Result{}, err
	}
	return Result{Output: entry.Output, Record: record, Raw: raw}, nil
}

func missingKeys(header map[string]string) []string {
	var missing []string
	for _, k := range requiredKeys {
		if _, ok := header[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// renderTemplateFile executes the template at path with data. Unknown keys
// render as empty strings.
func renderTemplateFile(path string, data map[string]string) ([]byte, error) {
	// #nosec G304 -- template paths come from the operator's configuration.
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryTemplate, "failed to read entry template").
			WithContext("path", path).Build()
	}
	tpl, err := template.New(filepath.Base(path)).Option("missingkey=zero").Parse(string(body))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryTemplate, "failed to parse entry template").
			WithContext("path", path).Build()
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, errors.WrapError(err, errors.CategoryTemplate, "failed to render entry template").
			WithContext("path", path).Build()
	}
	return buf.Bytes(), nil
}

func writeOutput(path string, data []byte) error {
	// #nosec G301 -- entry pages are published
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create entry output directory").
			WithContext("path", filepath.Dir(path)).Build()
	}
	// #nosec G306 -- entry pages are published
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write entry output").
			WithContext("path", path).Build()
	}
	return nil
}

func withPath(err error, path string) error {
	if classified, ok := errors.AsClassified(err); ok {
		return classified.WithContext("path", path)
	}
	return errors.WrapError(err, errors.CategoryInternal, "entry processing failed").
		WithContext("path", path).Build()
}
