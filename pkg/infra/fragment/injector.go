package fragment

import (
	"html/template"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

var scriptTemplate = template.Must(template.New("scripts").Parse(
	`{{range $i, $src := .}}{{if $i}}
{{end}}<script src="{{$src}}" defer></script>{{end}}`))

// Injector returns a fixed fragment computed when it is created
type Injector struct {
	fragment string
}

// Inject returns the fragment
func (x *Injector) Inject() string {
	return x.fragment
}

// NewStatic returns an Injector for a literal HTML fragment
func NewStatic(html string) *Injector {
	return &Injector{fragment: html}
}

// NewScripts returns an Injector emitting one deferred script tag per source, in order
func NewScripts(srcs ...string) (*Injector, error) {
	var b strings.Builder
	if err := scriptTemplate.Execute(&b, srcs); err != nil {
		return nil, goerr.Wrap(err, "failed to render script tags", goerr.V("srcs", srcs))
	}
	return &Injector{fragment: b.String()}, nil
}

// LoadFile returns an Injector for the contents of an HTML fragment file
func LoadFile(path string) (*Injector, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read fragment file", goerr.V("path", path))
	}
	return &Injector{fragment: strings.TrimRight(string(raw), "\n")}, nil
}
