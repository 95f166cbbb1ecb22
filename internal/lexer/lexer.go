// Package lexer turns gosimpl source text into a stream of tokens (C5 of
// SPEC_FULL.md). Grounded on the file-splitting and position-tracking
// idiom of the teacher's internal/lexer, but the token set and scanning
// rules are gosimpl's own — a much smaller grammar than DWScript's.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/gosimpl-lang/gosimpl/internal/errors"
	"github.com/gosimpl-lang/gosimpl/internal/token"
)

// opChars is the set of characters that can start or extend an operator
// run (spec.md §4.5). '%' and '^' are not listed in §4.5's prose but are
// required by the precedence table of §4.6 ("*, /, %" and "^ exponent").
const opChars = "+-*/=!<>&|.%^"

// validOps is the set of complete operator lexemes the scanner recognizes
// (spec.md §4.5's "Recognized operators"), plus '%' and '^' per the
// resolution above.
var validOps = []string{
	"+", "-", "*", "/", "%", "^",
	"=", "==", "!=",
	"<", "<=", ">", ">=",
	"&", "&&", "||",
	"...", "++", "--",
	".",
}

func isValidOp(s string) bool {
	for _, v := range validOps {
		if v == s {
			return true
		}
	}
	return false
}

func isOpPrefix(s string) bool {
	for _, v := range validOps {
		if len(v) > len(s) && strings.HasPrefix(v, s) {
			return true
		}
	}
	return false
}

// state is the saveable/restorable scanning position, used to implement
// Peek and Reverse (spec.md §4.5: "Peek is one-token lookahead;
// reverse(token) rewinds to that token's start").
type state struct {
	pos    int // byte offset of ch
	rdPos  int // byte offset of the next rune to read
	line   int
	column int
	ch     rune
}

// Lexer is a scanner over a string of gosimpl source text.
type Lexer struct {
	input string
	state
	lastStart state // position at the start of the most recently returned token
}

// New creates a Lexer over already-decoded UTF-8 source. Hosts reading
// from a file should run the bytes through DecodeSource first so the
// lexer never has to think about BOMs or UTF-16.
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.state = state{pos: 0, rdPos: 0, line: 1, column: 0}
	l.readRune()
	return l
}

func (l *Lexer) readRune() {
	if l.rdPos >= len(l.input) {
		l.pos = l.rdPos
		l.ch = 0
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.rdPos:])
	if r == utf8.RuneError && size == 1 {
		r = rune(l.input[l.rdPos])
	}
	l.pos = l.rdPos
	l.rdPos += size
	l.ch = r
	l.column++
}

func (l *Lexer) newline() {
	l.line++
	l.column = 1
}

// NextToken scans and returns the next token, advancing the lexer. The
// returned token's position is saved so a subsequent Reverse(tok) call
// can rewind exactly to its start.
func (l *Lexer) NextToken() (token.Token, *errors.Error) {
	l.skipSpaceAndComments()

	l.lastStart = l.state
	pos := token.Position{Line: l.line, Column: l.column}

	switch {
	case l.ch == 0:
		return token.Token{Kind: token.EOF, Pos: pos}, nil

	case isIdentStart(l.ch):
		lit := l.scanIdentifier()
		return token.Token{Kind: token.LookupIdent(lit), Literal: lit, Pos: pos}, nil

	case unicode.IsDigit(l.ch):
		lit := l.scanNumber()
		return token.Token{Kind: token.NUMBER, Literal: lit, Pos: pos}, nil

	case l.ch == '"':
		lit, err := l.scanString(pos)
		if err != nil {
			return token.Token{}, err
		}
		return token.Token{Kind: token.STRING, Literal: lit, Pos: pos}, nil

	case strings.ContainsRune(opChars, l.ch):
		lit := l.scanOperator()
		if lit == "." {
			return token.Token{Kind: token.DOT, Literal: lit, Pos: pos}, nil
		}
		return token.Token{Kind: token.OP, Literal: lit, Pos: pos}, nil

	default:
		kind, ok := singleCharKind(l.ch)
		if !ok {
			err := errors.At(errors.LexError, pos, "unrecognized character %q", l.ch)
			l.readRune()
			return token.Token{}, err
		}
		lit := string(l.ch)
		l.readRune()
		return token.Token{Kind: kind, Literal: lit, Pos: pos}, nil
	}
}

func singleCharKind(ch rune) (token.Kind, bool) {
	switch ch {
	case '(':
		return token.LPAREN, true
	case ')':
		return token.RPAREN, true
	case '{':
		return token.LBRACE, true
	case '}':
		return token.RBRACE, true
	case '[':
		return token.LBRACKET, true
	case ']':
		return token.RBRACKET, true
	case ',':
		return token.COMMA, true
	case ';':
		return token.SEMICOLON, true
	case '@':
		return token.AT, true
	}
	return 0, false
}

func (l *Lexer) skipSpaceAndComments() {
	for {
		switch {
		case l.ch == '\r':
			l.readRune()
			if l.ch == '\n' {
				l.readRune()
			}
			l.newline()
		case l.ch == '\n':
			l.readRune()
			l.newline()
		case l.ch == ' ' || l.ch == '\t':
			l.readRune()
		case l.ch == '#':
			for l.ch != '\n' && l.ch != '\r' && l.ch != 0 {
				l.readRune()
			}
		default:
			return
		}
	}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

func (l *Lexer) scanIdentifier() string {
	start := l.pos
	for isIdentPart(l.ch) {
		l.readRune()
	}
	return l.input[start:l.pos]
}

// scanNumber consumes a run of decimal digits. spec.md §9 note 2: the
// grammar has no fractional or negative literals; the parser synthesizes
// unary minus and decimals are simply unsupported.
func (l *Lexer) scanNumber() string {
	start := l.pos
	for unicode.IsDigit(l.ch) {
		l.readRune()
	}
	return l.input[start:l.pos]
}

// scanString consumes a double-quoted literal with no escape sequences
// (spec.md §9 note 3): a '"' always closes the string.
func (l *Lexer) scanString(pos token.Position) (string, *errors.Error) {
	l.readRune() // consume opening quote
	start := l.pos
	for l.ch != '"' {
		if l.ch == 0 {
			return "", errors.At(errors.LexError, pos, "unterminated string literal")
		}
		if l.ch == '\n' || l.ch == '\r' {
			return "", errors.At(errors.LexError, pos, "unterminated string literal")
		}
		l.readRune()
	}
	lit := l.input[start:l.pos]
	l.readRune() // consume closing quote
	// NFC-normalize the literal's contents so two visually-identical
	// scripts whose source bytes differ by Unicode composition compare
	// and coerce equal (SPEC_FULL §12).
	return norm.NFC.String(lit), nil
}

// scanOperator implements the maximal-munch policy of spec.md §4.5: the
// run grows while it remains a prefix of some recognized operator (or a
// complete one itself); once growth stalls, a run longer than one
// character that isn't itself a recognized operator backtracks by one.
func (l *Lexer) scanOperator() string {
	start := l.pos
	l.readRune() // the first character is already known to be an op-char
	run := l.input[start:l.pos]

	for strings.ContainsRune(opChars, l.ch) {
		candidate := run + string(l.ch)
		if isValidOp(candidate) || isOpPrefix(candidate) {
			l.readRune()
			run = l.input[start:l.pos]
			continue
		}
		break
	}

	if len(run) > 1 && !isValidOp(run) {
		// back off the last rune: re-derive the byte length of the run
		// minus its final rune and rewind the scanner to that offset.
		_, size := utf8.DecodeLastRuneInString(run)
		newEnd := start + len(run) - size
		l.rewindTo(newEnd)
		run = l.input[start:newEnd]
	}
	return run
}

// rewindTo resets scanning to byte offset target, recomputing the current
// rune directly (not via readRune, which would double-count the column).
// column is adjusted by the number of runes given back; line never needs
// adjustment since operator runs never cross a newline.
func (l *Lexer) rewindTo(target int) {
	backRunes := utf8.RuneCountInString(l.input[target:l.pos])
	l.column -= backRunes
	r, size := utf8.DecodeRuneInString(l.input[target:])
	l.pos = target
	l.rdPos = target + size
	l.ch = r
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (token.Token, *errors.Error) {
	saved := l.state
	savedStart := l.lastStart
	tok, err := l.NextToken()
	l.state = saved
	l.lastStart = savedStart
	return tok, err
}

// Reverse rewinds the lexer to the start of the most recently returned
// token, so the next NextToken call re-scans it. Only one level of
// reversal is supported, matching the reference tokenizer's reverse().
func (l *Lexer) Reverse() {
	l.state = l.lastStart
}

// Position returns the lexer's current line/column, useful for error
// reporting when no token has been scanned yet (e.g. empty input).
func (l *Lexer) Position() token.Position {
	return token.Position{Line: l.line, Column: l.column}
}
