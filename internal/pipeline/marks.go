package pipeline

import (
	"github.com/dlclark/regexp2"
)

// Rule is one step of the mark substitution table: every match of the
// pattern in the body is replaced, then the next rule runs on the result.
type Rule struct {
	Name        string
	Pattern     string
	Replacement string
	Options     regexp2.RegexOptions

	re *regexp2.Regexp
}

// newRule compiles a rule. Patterns are constants, so a compile failure is a
// programming error and panics at init.
func newRule(name, pattern, replacement string, opts regexp2.RegexOptions) Rule {
	return Rule{
		Name:        name,
		Pattern:     pattern,
		Replacement: replacement,
		Options:     opts,
		re:          regexp2.MustCompile(pattern, opts),
	}
}

// apply replaces every match of the rule in content.
// regexp2 only fails on match timeouts, which are never set here.
func (r Rule) apply(content string) string {
	out, err := r.re.Replace(content, r.Replacement, -1, -1)
	if err != nil {
		return content
	}
	return out
}

// markRules is applied in order. Each rule depends on the output of the
// previous ones: whitespace is normalized before marks are matched, "**" is
// consumed before "*", and paragraphs are wrapped last so that lines already
// turned into headings or stanza tags are skipped.
var markRules = []Rule{
	newRule("blank-lines", `\n{2,}`, "\n", regexp2.None),
	newRule("spaces", ` {2,}`, " ", regexp2.None),
	newRule("trim", `^\s+|\s+$`, "", regexp2.None),
	newRule("final-newline", `\n*$`, "\n", regexp2.None),
	newRule("bold", `\*\*(.*?)\*\*`, "<b>$1</b>", regexp2.None),
	newRule("italic", `\*(.*?)\*`, "<i>$1</i>", regexp2.None),
	newRule("italic-underscore", `_(.*?)_`, "<i>$1</i>", regexp2.None),
	newRule("strikethrough", `~~(.*?)~~`, "<s>$1</s>", regexp2.None),
	newRule("heading", `^#[ \t]*(.*)`, "<h1>$1</h1>", regexp2.Multiline),
	newRule("stanza", `^/\n(.*?)\n/$`, "<div class=stanza>\n$1\n</div>", regexp2.Multiline|regexp2.Singleline),
	// A line starting with "<" or ending with ">" already carries markup.
	newRule("paragraph", `^(?!<)(?!.*>\n)(.*?)\n`, "<p>$1</p>", regexp2.Multiline),
}

// FormatBody applies the mark rules to a document body and returns the
// resulting HTML fragment. It never fails: marks without a closing
// counterpart are left as literal text.
func FormatBody(content string) string {
	for _, r := range markRules {
		content = r.apply(content)
	}
	return content
}

// Rules returns a copy of the mark rule table in application order.
func Rules() []Rule {
	out := make([]Rule, len(markRules))
	copy(out, markRules)
	return out
}
