package pathexpr

import (
	"strconv"
	"strings"
)

const rootMarker = "$"

const blanks = " \t\r\n"

// Parse turns a textual path expression into a Path. The empty expression
// and a bare $ both denote the root. Any syntax error yields a *PathError of
// kind MalformedExpression and no partial result.
func Parse(expr string) (Path, error) {
	p := &parser{
		expr: expr,
		pos:  len(expr) - len(strings.TrimLeft(expr, blanks)),
		end:  len(strings.TrimRight(expr, blanks)),
	}
	return p.parse()
}

// MustParse is like Parse but panics on error. It is intended for fixed
// expressions in tests and package-level variables.
func MustParse(expr string) Path {
	path, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return path
}

type parser struct {
	expr string
	pos  int
	end  int
}

func (p *parser) parse() (Path, error) {
	path := Path{}
	if p.pos >= p.end {
		return path, nil
	}

	if p.atRootMarker() {
		p.pos++
		if p.pos == p.end {
			return path, nil
		}
		if p.expr[p.pos] == '.' {
			p.pos++
			seg, err := p.field()
			if err != nil {
				return nil, err
			}
			path = append(path, seg)
		}
	} else if p.expr[p.pos] != '[' {
		seg, err := p.field()
		if err != nil {
			return nil, err
		}
		path = append(path, seg)
	}

	for p.pos < p.end {
		var (
			seg Segment
			err error
		)
		switch p.expr[p.pos] {
		case '.':
			p.pos++
			seg, err = p.field()
		case '[':
			seg, err = p.bracket()
		case ']':
			err = malformed(p.expr, p.pos, "unexpected ']'")
		default:
			err = malformed(p.expr, p.pos, "expected '.' or '['")
		}
		if err != nil {
			return nil, err
		}
		path = append(path, seg)
	}

	return path, nil
}

// atRootMarker reports a $ that stands on its own rather than starting a
// field name such as $ref.
func (p *parser) atRootMarker() bool {
	if p.expr[p.pos] != rootMarker[0] {
		return false
	}
	next := p.pos + 1
	return next == p.end || p.expr[next] == '.' || p.expr[next] == '['
}

func (p *parser) field() (Segment, error) {
	start := p.pos
	for p.pos < p.end && !strings.ContainsRune(".[]", rune(p.expr[p.pos])) {
		p.pos++
	}
	if p.pos == start {
		return Segment{}, malformed(p.expr, start, "empty field name")
	}
	return Field(p.expr[start:p.pos]), nil
}

func (p *parser) bracket() (Segment, error) {
	open := p.pos
	p.pos++
	if p.pos >= p.end {
		return Segment{}, malformed(p.expr, open, "unclosed '['")
	}

	var (
		seg Segment
		err error
	)
	switch c := p.expr[p.pos]; {
	case c == '"':
		seg, err = p.doubleQuoted()
	case c == '\'':
		seg, err = p.singleQuoted()
	case c >= '0' && c <= '9':
		seg, err = p.index()
	case c == '-':
		err = malformed(p.expr, p.pos, "negative index")
	case c == ']':
		err = malformed(p.expr, p.pos, "empty brackets")
	default:
		err = malformed(p.expr, p.pos, "expected index or quoted field name")
	}
	if err != nil {
		return Segment{}, err
	}

	if p.pos >= p.end || p.expr[p.pos] != ']' {
		return Segment{}, malformed(p.expr, p.pos, "expected ']'")
	}
	p.pos++
	return seg, nil
}

func (p *parser) index() (Segment, error) {
	start := p.pos
	for p.pos < p.end && p.expr[p.pos] >= '0' && p.expr[p.pos] <= '9' {
		p.pos++
	}
	n, err := strconv.Atoi(p.expr[start:p.pos])
	if err != nil {
		return Segment{}, malformed(p.expr, start, "index out of range")
	}
	return Elem(n), nil
}

func (p *parser) doubleQuoted() (Segment, error) {
	start := p.pos
	for i := start + 1; i < p.end; i++ {
		switch p.expr[i] {
		case '\\':
			i++
		case '"':
			name, err := strconv.Unquote(p.expr[start : i+1])
			if err != nil {
				return Segment{}, malformed(p.expr, start, "invalid quoted field name")
			}
			p.pos = i + 1
			return Field(name), nil
		}
	}
	return Segment{}, malformed(p.expr, start, "unterminated quoted field name")
}

// singleQuoted accepts \' and \\ escapes; any other escaped byte is kept as is.
func (p *parser) singleQuoted() (Segment, error) {
	start := p.pos
	var b strings.Builder
	for i := start + 1; i < p.end; i++ {
		c := p.expr[i]
		switch {
		case c == '\\' && i+1 < p.end:
			i++
			b.WriteByte(p.expr[i])
		case c == '\'':
			p.pos = i + 1
			return Field(b.String()), nil
		default:
			b.WriteByte(c)
		}
	}
	return Segment{}, malformed(p.expr, start, "unterminated quoted field name")
}
