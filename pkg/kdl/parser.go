package kdl

import (
	"fmt"
	"strings"
)

// Diag is a single parse diagnostic with a 1-based source position.
type Diag struct {
	Line int
	Col  int
	Msg  string
}

func (d Diag) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Col, d.Msg)
}

// ParseError aggregates every diagnostic produced while parsing a document.
// The parser recovers at node boundaries, so one pass reports all errors.
type ParseError struct {
	Diags []Diag
}

func (e *ParseError) Error() string {
	if e == nil || len(e.Diags) == 0 {
		return "kdl: parse error"
	}
	lines := make([]string, 0, len(e.Diags))
	for _, d := range e.Diags {
		lines = append(lines, d.String())
	}
	return "kdl: " + strings.Join(lines, "; ")
}

// Parse parses src as a KDL document. On syntax errors it returns a *ParseError
// carrying the full diagnostic list; the partial document is discarded.
func Parse(src string) (*Document, error) {
	p := &parser{src: []rune(src), line: 1, col: 1}
	nodes := p.parseNodes(false)
	if len(p.diags) > 0 {
		return nil, &ParseError{Diags: p.diags}
	}
	return &Document{Nodes: nodes}, nil
}

type parser struct {
	src  []rune
	pos  int
	line int
	col  int

	diags []Diag
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(off int) rune {
	if p.pos+off >= len(p.src) {
		return 0
	}
	return p.src[p.pos+off]
}

func (p *parser) next() rune {
	if p.eof() {
		return 0
	}
	r := p.src[p.pos]
	p.pos++
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	return r
}

func (p *parser) errorf(format string, args ...any) {
	p.diags = append(p.diags, Diag{Line: p.line, Col: p.col, Msg: fmt.Sprintf(format, args...)})
}

// skipInline consumes spaces, tabs, block comments, and escaped newlines,
// but stops at a newline (which terminates the current node).
func (p *parser) skipInline() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\r':
			p.next()
		case '\\':
			// Line continuation: backslash, optional trailing space, newline.
			p.next()
			for p.peek() == ' ' || p.peek() == '\t' || p.peek() == '\r' {
				p.next()
			}
			if p.peek() == '\n' {
				p.next()
			} else if !p.eof() {
				p.errorf("unexpected %q after line continuation", p.peek())
				return
			}
		case '/':
			if p.peekAt(1) == '*' {
				p.skipBlockComment()
				continue
			}
			return
		default:
			return
		}
	}
}

// skipLinespace consumes everything between nodes: whitespace, newlines,
// line comments, and block comments.
func (p *parser) skipLinespace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\r', '\n', ';':
			p.next()
		case '/':
			switch p.peekAt(1) {
			case '/':
				p.skipLineComment()
			case '*':
				p.skipBlockComment()
			default:
				return
			}
		default:
			return
		}
	}
}

func (p *parser) skipLineComment() {
	for !p.eof() && p.peek() != '\n' {
		p.next()
	}
}

func (p *parser) skipBlockComment() {
	start := Diag{Line: p.line, Col: p.col}
	p.next() // '/'
	p.next() // '*'
	depth := 1
	for !p.eof() {
		if p.peek() == '/' && p.peekAt(1) == '*' {
			p.next()
			p.next()
			depth++
			continue
		}
		if p.peek() == '*' && p.peekAt(1) == '/' {
			p.next()
			p.next()
			depth--
			if depth == 0 {
				return
			}
			continue
		}
		p.next()
	}
	p.diags = append(p.diags, Diag{Line: start.Line, Col: start.Col, Msg: "unterminated block comment"})
}

// parseNodes parses a sequence of nodes until EOF or, when inBlock is true,
// the closing '}' of a children block.
func (p *parser) parseNodes(inBlock bool) []*Node {
	var nodes []*Node
	for {
		p.skipLinespace()
		if p.eof() {
			if inBlock {
				p.errorf("unexpected end of input inside children block (missing '}')")
			}
			return nodes
		}
		if p.peek() == '}' {
			if inBlock {
				p.next()
				return nodes
			}
			p.errorf("unexpected '}' at top level")
			p.next()
			continue
		}

		skip := false
		if p.peek() == '/' && p.peekAt(1) == '-' {
			p.next()
			p.next()
			p.skipInline()
			skip = true
		}

		n := p.parseNode()
		if n != nil && !skip {
			nodes = append(nodes, n)
		}
	}
}

// parseNode parses one node: name, entries, optional children block, terminator.
// It returns nil after recovering from a syntax error.
func (p *parser) parseNode() *Node {
	name, ok := p.parseName()
	if !ok {
		p.errorf("expected node name, found %q", p.peek())
		p.recover()
		return nil
	}

	n := &Node{Name: name}
	for {
		p.skipInline()
		c := p.peek()
		switch {
		case p.eof(), c == '\n', c == ';':
			if !p.eof() {
				p.next()
			}
			return n

		case c == '}':
			// Closes the enclosing children block; the caller consumes it.
			return n

		case c == '/' && p.peekAt(1) == '/':
			p.skipLineComment()

		case c == '/' && p.peekAt(1) == '-':
			// Slash-dash entry: parse and discard.
			p.next()
			p.next()
			p.skipInline()
			if p.peek() == '{' {
				p.next()
				p.parseNodes(true)
				continue
			}
			p.parseEntry(&Node{})

		case c == '{':
			p.next()
			n.Children = p.parseNodes(true)

		default:
			if !p.parseEntry(n) {
				p.recover()
				return n
			}
		}
	}
}

// parseName accepts a bare identifier or a quoted string as the node name.
func (p *parser) parseName() (string, bool) {
	if p.peek() == '"' {
		s, ok := p.parseQuoted()
		return s, ok
	}
	t := p.readBareToken()
	return t, t != ""
}

// parseEntry parses one property (key=value) or positional value into n.
func (p *parser) parseEntry(n *Node) bool {
	if p.peek() == '"' {
		s, ok := p.parseQuoted()
		if !ok {
			return false
		}
		if p.peek() == '=' {
			p.next()
			return p.parsePropValue(n, s)
		}
		n.Args = append(n.Args, s)
		return true
	}

	t := p.readBareToken()
	if t == "" {
		p.errorf("unexpected character %q", p.peek())
		return false
	}
	if p.peek() == '=' {
		p.next()
		return p.parsePropValue(n, t)
	}
	n.Args = append(n.Args, t)
	return true
}

func (p *parser) parsePropValue(n *Node, key string) bool {
	var val string
	if p.peek() == '"' {
		s, ok := p.parseQuoted()
		if !ok {
			return false
		}
		val = s
	} else {
		val = p.readBareToken()
		if val == "" {
			p.errorf("missing value for property %q", key)
			return false
		}
	}
	if n.Props == nil {
		n.Props = make(map[string]string)
	}
	n.Props[key] = val
	return true
}

// readBareToken reads an unquoted token: numbers, booleans, identifiers.
// It stops at structural characters and at the start of a comment.
func (p *parser) readBareToken() string {
	var b strings.Builder
	for !p.eof() {
		c := p.peek()
		switch c {
		case ' ', '\t', '\r', '\n', '=', '{', '}', ';', '"', '\\':
			return b.String()
		case '/':
			if next := p.peekAt(1); next == '/' || next == '*' || next == '-' {
				return b.String()
			}
		}
		b.WriteRune(p.next())
	}
	return b.String()
}

// parseQuoted parses a double-quoted string with escape handling.
func (p *parser) parseQuoted() (string, bool) {
	start := Diag{Line: p.line, Col: p.col}
	p.next() // opening quote

	var b strings.Builder
	for !p.eof() {
		c := p.next()
		switch c {
		case '"':
			return b.String(), true
		case '\\':
			if p.eof() {
				break
			}
			e := p.next()
			switch e {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 'r':
				b.WriteRune('\r')
			case '\\', '"', '/':
				b.WriteRune(e)
			case 'b':
				b.WriteRune('\b')
			case 'f':
				b.WriteRune('\f')
			default:
				p.errorf("unsupported escape \\%c", e)
				b.WriteRune(e)
			}
		case '\n':
			p.diags = append(p.diags, Diag{Line: start.Line, Col: start.Col, Msg: "unterminated string"})
			return b.String(), false
		default:
			b.WriteRune(c)
		}
	}
	p.diags = append(p.diags, Diag{Line: start.Line, Col: start.Col, Msg: "unterminated string"})
	return b.String(), false
}

// recover skips to the next plausible node boundary after a syntax error.
// It does not consume a closing '}' so the enclosing block can still end cleanly.
func (p *parser) recover() {
	for !p.eof() {
		switch p.peek() {
		case '\n', ';':
			p.next()
			return
		case '}':
			return
		default:
			p.next()
		}
	}
}
