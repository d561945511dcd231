package main

import (
	"fmt"
	"strconv"

	"github.com/dlclark/regexp2"

	"github.com/alnah/go-textformatter/internal/assets"
	"github.com/alnah/go-textformatter/internal/pipeline"
	"github.com/alnah/go-textformatter/internal/yamlutil"
)

// quotedScalar is always written as a double-quoted YAML scalar.
// The encoder's plain style turns a value like "\n" into a literal block
// that its own parser rejects.
type quotedScalar string

func (q quotedScalar) MarshalYAML() ([]byte, error) {
	return []byte(strconv.Quote(string(q))), nil
}

// ruleView is the printed form of a formatting rule.
type ruleView struct {
	Name        string       `yaml:"name"`
	Pattern     quotedScalar `yaml:"pattern"`
	Replacement quotedScalar `yaml:"replacement"`
	Options     []string     `yaml:"options,omitempty"`
}

// runRules prints the formatting rule table as YAML.
func runRules(env *Environment) error {
	rules := pipeline.Rules()
	views := make([]ruleView, 0, len(rules))
	for _, r := range rules {
		views = append(views, ruleView{
			Name:        r.Name,
			Pattern:     quotedScalar(r.Pattern),
			Replacement: quotedScalar(r.Replacement),
			Options:     optionNames(r.Options),
		})
	}

	out, err := yamlutil.Marshal(views)
	if err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	_, err = env.Stdout.Write(out)
	return err
}

func optionNames(opts regexp2.RegexOptions) []string {
	var names []string
	if opts&regexp2.IgnoreCase != 0 {
		names = append(names, "ignorecase")
	}
	if opts&regexp2.Multiline != 0 {
		names = append(names, "multiline")
	}
	if opts&regexp2.Singleline != 0 {
		names = append(names, "singleline")
	}
	return names
}

// runTemplates lists the built-in templates, or prints the named one.
func runTemplates(args []string, env *Environment) error {
	loader := assets.NewEmbeddedLoader()

	if len(args) == 0 {
		for _, name := range loader.Names() {
			fmt.Fprintln(env.Stdout, name)
		}
		return nil
	}

	content, err := loader.LoadTemplate(args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(env.Stdout, content)
	return nil
}
