package tags

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"file-processing-tasks/internal/model"
)

// Expander expands "<Tag>" and "$Function(arg, ...)" path templates.
type Expander struct {
	fpsDir    string
	now       func() time.Time
	lookupEnv func(string) (string, bool)
}

// New creates an Expander. Zero options use the process clock and environment.
func New(opts Options) *Expander {
	e := &Expander{fpsDir: opts.FPSFileDir, now: opts.Now, lookupEnv: opts.LookupEnv}
	if e.now == nil {
		e.now = time.Now
	}
	if e.lookupEnv == nil {
		e.lookupEnv = os.LookupEnv
	}
	return e
}

// Expand resolves every tag and function in template for rec.
func (e *Expander) Expand(template string, rec model.FileRecord) (string, error) {
	p := &parser{src: template, e: e, rec: rec}
	out, err := p.text(false)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", template, err)
	}
	return out, nil
}

type parser struct {
	src string
	pos int
	e   *Expander
	rec model.FileRecord
}

// text consumes literal text, tags and function calls. Inside an argument list
// it stops at a top-level ',' or ')'.
func (p *parser) text(inArgs bool) (string, error) {
	var sb strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case inArgs && (c == ',' || c == ')'):
			return sb.String(), nil
		case c == '<':
			v, ok, err := p.tag()
			if err != nil {
				return "", err
			}
			if !ok {
				sb.WriteByte(c)
				p.pos++
				continue
			}
			sb.WriteString(v)
		case c == '$' && p.functionAhead():
			v, err := p.call()
			if err != nil {
				return "", err
			}
			sb.WriteString(v)
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	if inArgs {
		return "", ErrUnterminated
	}
	return sb.String(), nil
}

func (p *parser) tag() (string, bool, error) {
	end := strings.IndexByte(p.src[p.pos:], '>')
	if end < 0 {
		return "", false, nil
	}
	name := p.src[p.pos : p.pos+end+1]
	p.pos += end + 1
	switch name {
	case TagSourceDocName:
		return p.rec.Name, true, nil
	case TagFPSFileDir:
		return p.e.fpsDir, true, nil
	}
	return "", false, fmt.Errorf("%w: %s", ErrUnknownTag, name)
}

func (p *parser) functionAhead() bool {
	i := p.pos + 1
	for i < len(p.src) && isIdent(p.src[i]) {
		i++
	}
	return i > p.pos+1 && i < len(p.src) && p.src[i] == '('
}

func isIdent(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func (p *parser) call() (string, error) {
	start := p.pos + 1
	open := start + strings.IndexByte(p.src[start:], '(')
	name := p.src[start:open]
	p.pos = open + 1

	var args []string
	for {
		arg, err := p.text(true)
		if err != nil {
			return "", fmt.Errorf("$%s: %w", name, err)
		}
		args = append(args, strings.TrimSpace(arg))
		closing := p.src[p.pos] == ')'
		p.pos++
		if closing {
			break
		}
	}
	if len(args) == 1 && args[0] == "" {
		args = nil
	}
	return p.e.apply(name, args)
}

func (e *Expander) apply(name string, args []string) (string, error) {
	fn, ok := functions[name]
	if !ok {
		return "", fmt.Errorf("%w: $%s", ErrUnknownFunction, name)
	}
	if len(args) < fn.minArgs || len(args) > fn.maxArgs {
		return "", fmt.Errorf("$%s: %w: got %d", name, ErrArgCount, len(args))
	}
	return fn.eval(e, args)
}

type function struct {
	minArgs, maxArgs int
	eval             func(e *Expander, args []string) (string, error)
}

var functions = map[string]function{
	"DirOf": {1, 1, func(_ *Expander, a []string) (string, error) {
		return filepath.Dir(a[0]), nil
	}},
	"FileOf": {1, 1, func(_ *Expander, a []string) (string, error) {
		return filepath.Base(a[0]), nil
	}},
	"FileNoExtOf": {1, 1, func(_ *Expander, a []string) (string, error) {
		base := filepath.Base(a[0])
		return strings.TrimSuffix(base, filepath.Ext(base)), nil
	}},
	"ExtOf": {1, 1, func(_ *Expander, a []string) (string, error) {
		return filepath.Ext(a[0]), nil
	}},
	"ChangeExt": {2, 2, func(_ *Expander, a []string) (string, error) {
		ext := a[1]
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		return strings.TrimSuffix(a[0], filepath.Ext(a[0])) + ext, nil
	}},
	"InsertBeforeExt": {2, 2, func(_ *Expander, a []string) (string, error) {
		ext := filepath.Ext(a[0])
		return strings.TrimSuffix(a[0], ext) + a[1] + ext, nil
	}},
	"Env": {1, 1, func(e *Expander, a []string) (string, error) {
		v, ok := e.lookupEnv(a[0])
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrEnvNotSet, a[0])
		}
		return v, nil
	}},
	"Now": {0, 1, func(e *Expander, a []string) (string, error) {
		layout := DefaultNowLayout
		if len(a) == 1 {
			layout = a[0]
		}
		return e.now().Format(layout), nil
	}},
}
