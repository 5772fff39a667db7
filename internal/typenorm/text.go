package typenorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"update-object-generator/internal/model"
)

// unresolvedNames are the placeholders host compilers emit for types they could not resolve.
var unresolvedNames = map[string]bool{
	"error.NonExistentClass": true,
	"NonExistentClass":       true,
	"<error>":                true,
	"<any>":                  true,
	"void":                   true,
	"kotlin.Unit":            true,
	"kotlin.Nothing":         true,
}

type textParser struct {
	src string
	pos int
}

func parseText(src string) (Result, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return Result{}, unresolved("empty type")
	}

	p := &textParser{src: src}

	r, err := p.parseType()
	if err != nil {
		return Result{}, err
	}

	p.skipSpace()

	if p.pos != len(p.src) {
		return Result{}, unresolved(src)
	}

	return r, nil
}

func (p *textParser) parseType() (Result, error) {
	p.skipSpace()

	switch p.peek() {
	case '*':
		// Kotlin star projection.
		p.pos++
		return Result{Type: model.Scalar(model.ScalarAny).WithNullable(true)}, nil
	case '?':
		return p.parseWildcard()
	case '<':
		return Result{}, unresolved(p.placeholder())
	}

	name := p.ident()
	if name == "" {
		return Result{}, unresolved(p.src)
	}

	// Declaration-site variance: "out T", "in T".
	if (name == "out" || name == "in") && p.peek() == ' ' {
		return p.parseType()
	}

	var args []model.SemanticType

	if p.peek() == '<' {
		p.pos++

		for {
			arg, err := p.parseType()
			if err != nil {
				return Result{}, err
			}

			args = append(args, arg.Type)

			p.skipSpace()

			if p.peek() == ',' {
				p.pos++
				continue
			}

			if p.peek() != '>' {
				return Result{}, unresolved(p.src)
			}

			p.pos++

			break
		}
	}

	r, err := resolveName(name, args)
	if err != nil {
		return Result{}, err
	}

	for {
		p.skipSpace()

		switch {
		case strings.HasPrefix(p.src[p.pos:], "[]"):
			p.pos += 2
		case strings.HasPrefix(p.src[p.pos:], "..."):
			p.pos += 3
		default:
			if p.peek() == '?' {
				p.pos++
				r.Type.Nullable = true
				r.Primitive = false
			}

			return r, nil
		}

		r = Result{Type: model.Generic("", model.GenericArray, r.Type)}
	}
}

// parseWildcard handles "?", "? extends T" and "? super T".
func (p *textParser) parseWildcard() (Result, error) {
	p.pos++
	p.skipSpace()

	rest := p.src[p.pos:]

	switch {
	case strings.HasPrefix(rest, "extends "):
		p.pos += len("extends ")
		return p.parseType()
	case strings.HasPrefix(rest, "super "):
		p.pos += len("super ")
		if _, err := p.parseType(); err != nil {
			return Result{}, err
		}
	}

	return Result{Type: model.Scalar(model.ScalarAny).WithNullable(true)}, nil
}

func resolveName(name string, args []model.SemanticType) (Result, error) {
	if unresolvedNames[name] || strings.HasSuffix(name, ".NonExistentClass") {
		return Result{}, unresolved(name)
	}

	if scalar, ok := primitives[name]; ok {
		if len(args) > 0 {
			return Result{}, unresolved(name)
		}

		return Result{Type: model.Scalar(scalar), Primitive: true}, nil
	}

	if a, ok := lookupAlias(name); ok {
		return fromAlias(name, a, args)
	}

	if !isQualified(name) && !startsUpper(name) {
		// Lower-case simple names are primitives the model does not know.
		return Result{}, unresolved(name)
	}

	pkg, simple := splitQualified(name)
	if len(args) > 0 {
		return Result{Type: model.Generic(pkg, simple, args...)}, nil
	}

	return Result{Type: model.Nominal(pkg, simple)}, nil
}

func fromAlias(name string, a alias, args []model.SemanticType) (Result, error) {
	if a.kind == model.TypeKindScalar {
		if len(args) > 0 {
			return Result{}, unresolved(name)
		}

		return Result{Type: model.Scalar(a.name)}, nil
	}

	switch {
	case len(args) == 0:
		// Raw type: every argument is an unknown, nullable value.
		args = make([]model.SemanticType, a.arity)
		for i := range args {
			args[i] = model.Scalar(model.ScalarAny).WithNullable(true)
		}
	case len(args) != a.arity:
		return Result{}, unresolved(name)
	}

	return Result{Type: model.Generic("", a.name, args...)}, nil
}

func splitQualified(name string) (pkg, simple string) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return "", name
	}

	return name[:i], name[i+1:]
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

func (p *textParser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		c, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if c == '.' && strings.HasPrefix(p.src[p.pos:], "...") {
			break
		}

		if !(unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '$' || c == '.') {
			break
		}

		p.pos += size
	}

	return p.src[start:p.pos]
}

// placeholder consumes an angle-bracketed compiler placeholder such as "<error>".
func (p *textParser) placeholder() string {
	end := strings.IndexByte(p.src[p.pos:], '>')
	if end < 0 {
		return p.src[p.pos:]
	}

	s := p.src[p.pos : p.pos+end+1]
	p.pos += end + 1

	return s
}

func (p *textParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}

	return p.src[p.pos]
}

func (p *textParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}
