// Package prompt renders the fixed interview prompts sent to the completion provider.
package prompt

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"interview-coach/internal/domain/apperr"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultCatalogue []byte

const (
	TemplateStart    = "start"
	TemplateContinue = "continue"
	TemplateSummary  = "summary"

	VarTopic       = "topic"
	VarChatHistory = "chat_history"
	VarAnswer      = "answer"
)

type templateDef struct {
	Variables []string `yaml:"variables"`
	Text      string   `yaml:"text"`
}

type compiled struct {
	variables []string
	tmpl      *template.Template
}

type Renderer struct {
	templates map[string]compiled
}

// NewRenderer loads the embedded prompt catalogue.
func NewRenderer() (*Renderer, error) {
	return NewRendererFromYAML(defaultCatalogue)
}

// NewRendererFromYAML compiles a catalogue of the form
// name: {variables: [...], text: "..."}.
func NewRendererFromYAML(data []byte) (*Renderer, error) {
	var defs map[string]templateDef
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse prompt catalogue: %w", err)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("prompt catalogue is empty")
	}

	r := &Renderer{templates: make(map[string]compiled, len(defs))}
	for name, def := range defs {
		tmpl, err := template.New(name).Option("missingkey=error").Parse(def.Text)
		if err != nil {
			return nil, fmt.Errorf("parse prompt %q: %w", name, err)
		}
		r.templates[name] = compiled{variables: def.Variables, tmpl: tmpl}
	}
	return r, nil
}

// Render fills template name with vars. Every declared variable must be
// present; an empty value is allowed.
func (r *Renderer) Render(name string, vars map[string]string) (string, error) {
	const op = "prompt.Render"

	c, ok := r.templates[name]
	if !ok {
		return "", apperr.New(apperr.KindInvalidInput, op, fmt.Sprintf("unknown prompt template %q", name))
	}

	for _, v := range c.variables {
		if _, ok := vars[v]; !ok {
			return "", apperr.New(apperr.KindMissingVariable, op, fmt.Sprintf("prompt %q is missing variable %q", name, v))
		}
	}

	var b strings.Builder
	if err := c.tmpl.Execute(&b, vars); err != nil {
		return "", apperr.Wrap(apperr.KindMissingVariable, op, err, fmt.Sprintf("render prompt %q", name))
	}
	return b.String(), nil
}

// Names lists the available templates in sorted order.
func (r *Renderer) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
