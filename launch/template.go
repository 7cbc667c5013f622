package launch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

var ErrEmptyTemplate = errors.New("empty command template")

// Template is a command line split into program and arguments. The
// placeholders {label} and {path} are replaced inside each argument after
// splitting, so substituted values never split into several arguments.
type Template struct {
	Program string
	Args    []string
}

// ParseTemplate splits line with shell quoting rules. A blank line yields
// the zero Template, which disables its step.
func ParseTemplate(line string) (Template, error) {
	if strings.TrimSpace(line) == "" {
		return Template{}, nil
	}
	words, err := shellquote.Split(line)
	if err != nil {
		return Template{}, fmt.Errorf("failed to parse command %q: %w", line, err)
	}
	if len(words) == 0 || words[0] == "" {
		return Template{}, fmt.Errorf("%w: %q", ErrEmptyTemplate, line)
	}
	return Template{Program: words[0], Args: words[1:]}, nil
}

func (t Template) Enabled() bool { return t.Program != "" }

// Expand substitutes the placeholders.
func (t Template) Expand(label, path string) (string, []string) {
	r := strings.NewReplacer("{label}", label, "{path}", path)
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = r.Replace(a)
	}
	return r.Replace(t.Program), args
}
