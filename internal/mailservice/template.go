package mailservice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// each template file defines these three blocks
var templateBlocks = [...]string{"subject", "plainBody", "htmlBody"}

// NewTemplate parses every embedded template up front. The set is fixed at
// build time, so a parse failure is a programming error.
func NewTemplate() *Template {
	names, err := fs.Glob(templateFS, "templates/*.tmpl")
	if err != nil {
		panic(err)
	}

	tp := &Template{set: make(map[string]*template.Template, len(names))}
	for _, path := range names {
		t := template.Must(template.New("email").ParseFS(templateFS, path))
		tp.set[path[len("templates/"):]] = t
	}

	return tp
}

// ParseTemplate renders the subject, plainBody and htmlBody blocks of the named template.
func (tp *Template) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	t, ok := tp.set[name]
	if !ok {
		return nil, nil, nil, fmt.Errorf("unknown mail template %q", name)
	}

	var out [len(templateBlocks)]*bytes.Buffer
	for i, block := range templateBlocks {
		out[i] = new(bytes.Buffer)
		if err := t.ExecuteTemplate(out[i], block, data); err != nil {
			return nil, nil, nil, fmt.Errorf("render %s of %s: %w", block, name, err)
		}
	}

	return out[0], out[1], out[2], nil
}
