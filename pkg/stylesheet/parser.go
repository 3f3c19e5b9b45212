package stylesheet

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// token is a lexed CSS token with its source range.
type token struct {
	typ        css.TokenType
	data       string
	start, end Position
}

// Parser parses CSS source into a Root.
//
// The parser is lenient: it recovers from unbalanced braces and statements it
// cannot interpret, so one broken rule never hides the rest of the sheet.
type Parser struct {
	log *slog.Logger
}

// NewParser creates a new parser. A nil logger discards output.
func NewParser(log *slog.Logger) *Parser {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Parser{log: log.With("component", "stylesheet-parser")}
}

// Parse is a convenience wrapper around NewParser(nil).Parse.
func Parse(data []byte, source ...string) (*Root, error) {
	return NewParser(nil).Parse(data, source...)
}

// Parse parses CSS text into a Root.
// The optional source parameter identifies what's being parsed (for logging and diagnostics).
func (p *Parser) Parse(data []byte, source ...string) (*Root, error) {
	root := &Root{src: append([]byte(nil), data...)}
	if len(source) > 0 {
		root.Source = source[0]
	}

	toks, err := lex(root.src)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize %s: %w", sourceName(root.Source), err)
	}

	st := &state{toks: toks, log: p.log}
	root.Nodes = st.parseNodes(false)

	p.log.Debug("parsed stylesheet",
		slog.String("source", sourceName(root.Source)),
		slog.Int("bytes", len(data)),
		slog.Int("tokens", len(toks)),
		slog.Int("nodes", len(root.Nodes)))
	return root, nil
}

func sourceName(s string) string {
	if s == "" {
		return "<input>"
	}
	return s
}

// lex tokenizes the full input. Tokens cover every byte, so offsets can be
// accumulated from token lengths.
func lex(src []byte) ([]token, error) {
	l := css.NewLexer(parse.NewInputBytes(src))
	pos := Position{Offset: 0, Line: 1, Column: 1}

	var toks []token
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			if err := l.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
			return toks, nil
		}
		text := string(data)
		end := advance(pos, text)
		toks = append(toks, token{typ: tt, data: text, start: pos, end: end})
		pos = end
	}
}

// advance returns the position after text starting at pos.
func advance(pos Position, text string) Position {
	pos.Offset += len(text)
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			break
		}
		pos.Line++
		pos.Column = 1
		text = text[i+1:]
	}
	pos.Column += utf8.RuneCountInString(text)
	return pos
}

// state is the recursive-descent cursor over the token slice.
type state struct {
	toks []token
	i    int
	log  *slog.Logger
}

func (s *state) eof() bool { return s.i >= len(s.toks) }

func (s *state) peek() token { return s.toks[s.i] }

// parseNodes parses statements until EOF or, inside a block, the closing brace.
func (s *state) parseNodes(inBlock bool) []Node {
	var nodes []Node
	for !s.eof() {
		t := s.peek()
		switch t.typ {
		case css.WhitespaceToken, css.CDOToken, css.CDCToken, css.SemicolonToken:
			s.i++
		case css.CommentToken:
			nodes = append(nodes, &Comment{Text: t.data, start: t.start, end: t.end})
			s.i++
		case css.RightBraceToken:
			if inBlock {
				return nodes
			}
			s.log.Debug("ignoring stray closing brace", slog.String("pos", t.start.String()))
			s.i++
		case css.AtKeywordToken:
			nodes = append(nodes, s.parseAtRule())
		default:
			if n := s.parseStatement(); n != nil {
				nodes = append(nodes, n)
			}
		}
	}
	return nodes
}

// scanStatement returns the index of the token ending the statement starting at
// s.i: a ';', '{' or '}' outside parentheses and brackets, or len(toks).
func (s *state) scanStatement() int {
	depth := 0
	for j := s.i; j < len(s.toks); j++ {
		switch s.toks[j].typ {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.SemicolonToken, css.LeftBraceToken, css.RightBraceToken:
			if depth == 0 {
				return j
			}
		}
	}
	return len(s.toks)
}

// parseBlock consumes '{', the block contents and the matching '}'.
// An unterminated block ends at EOF.
func (s *state) parseBlock() ([]Node, Position) {
	s.i++ // '{'
	nodes := s.parseNodes(true)
	if s.eof() {
		return nodes, s.toks[len(s.toks)-1].end
	}
	end := s.peek().end
	s.i++ // '}'
	return nodes, end
}

func (s *state) parseAtRule() *AtRule {
	kw := s.peek()
	s.i++
	at := &AtRule{Name: strings.TrimPrefix(kw.data, "@"), start: kw.start, end: kw.end}

	j := s.scanStatement()
	at.Params = joinTokens(s.toks[s.i:j], false)
	if last, ok := lastSignificant(s.toks[s.i:j]); ok {
		at.end = last.end
	}
	s.i = j
	if s.eof() {
		return at
	}

	switch s.peek().typ {
	case css.LeftBraceToken:
		at.HasBlock = true
		at.Nodes, at.end = s.parseBlock()
	case css.SemicolonToken:
		at.end = s.peek().end
		s.i++
	}
	return at
}

// parseStatement parses a qualified rule or a declaration. It returns nil for
// statements that are neither, which are skipped.
func (s *state) parseStatement() Node {
	j := s.scanStatement()
	stmt := s.toks[s.i:j]
	s.i = j

	if !s.eof() && s.peek().typ == css.LeftBraceToken {
		rule := &Rule{Selector: joinTokens(stmt, true), start: s.peek().start}
		if len(stmt) > 0 {
			rule.start = stmt[0].start
		}
		rule.Nodes, rule.end = s.parseBlock()
		return rule
	}

	if !s.eof() && s.peek().typ == css.SemicolonToken {
		s.i++
	}
	decl := parseDeclaration(stmt)
	if decl == nil {
		s.log.Debug("skipping unrecognized statement",
			slog.String("pos", stmt[0].start.String()),
			slog.String("text", joinTokens(stmt, false)))
		return nil
	}
	return decl
}

// parseDeclaration interprets stmt as "property: value [!important]".
func parseDeclaration(stmt []token) *Declaration {
	if len(stmt) == 0 || (stmt[0].typ != css.IdentToken && stmt[0].typ != css.CustomPropertyNameToken) {
		return nil
	}
	k := skipInsignificant(stmt, 1)
	if k >= len(stmt) || stmt[k].typ != css.ColonToken {
		return nil
	}
	colon := stmt[k]

	d := &Declaration{Property: stmt[0].data, start: stmt[0].start, end: colon.end}
	if last, ok := lastSignificant(stmt); ok {
		d.end = last.end
	}

	vals := stmt[skipInsignificant(stmt, k+1):]
	vals, d.Important = trimImportant(vals)
	vals = trimTrailingInsignificant(vals)
	if len(vals) == 0 {
		d.value = span{start: colon.end, end: colon.end}
		return d
	}

	d.value = span{start: vals[0].start, end: vals[len(vals)-1].end}
	d.Value = sourceText(vals)
	d.original = d.Value
	return d
}

// trimImportant strips a trailing "!important" from value tokens.
func trimImportant(vals []token) ([]token, bool) {
	vals = trimTrailingInsignificant(vals)
	n := len(vals)
	if n == 0 || vals[n-1].typ != css.IdentToken || !strings.EqualFold(vals[n-1].data, "important") {
		return vals, false
	}
	rest := trimTrailingInsignificant(vals[:n-1])
	m := len(rest)
	if m == 0 || rest[m-1].typ != css.DelimToken || rest[m-1].data != "!" {
		return vals, false
	}
	return rest[:m-1], true
}

func isInsignificant(t token) bool {
	return t.typ == css.WhitespaceToken || t.typ == css.CommentToken
}

func skipInsignificant(toks []token, from int) int {
	for from < len(toks) && isInsignificant(toks[from]) {
		from++
	}
	return from
}

func trimTrailingInsignificant(toks []token) []token {
	for len(toks) > 0 && isInsignificant(toks[len(toks)-1]) {
		toks = toks[:len(toks)-1]
	}
	return toks
}

func lastSignificant(toks []token) (token, bool) {
	toks = trimTrailingInsignificant(toks)
	if len(toks) == 0 {
		return token{}, false
	}
	return toks[len(toks)-1], true
}

// sourceText concatenates token text as written.
func sourceText(toks []token) string {
	var sb strings.Builder
	for _, t := range toks {
		sb.WriteString(t.data)
	}
	return sb.String()
}

// joinTokens concatenates token text, dropping comments and trimming the
// result. With collapse, whitespace runs become a single space.
func joinTokens(toks []token, collapse bool) string {
	var sb strings.Builder
	for _, t := range toks {
		switch {
		case t.typ == css.CommentToken:
			continue
		case collapse && t.typ == css.WhitespaceToken:
			sb.WriteByte(' ')
		default:
			sb.WriteString(t.data)
		}
	}
	return strings.TrimSpace(sb.String())
}
