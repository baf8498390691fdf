package pgb

import (
	"strings"
	"unicode/utf8"
)

/*
Partial SQL tokenizer used internally by `ProcessNamedParams` to find named
parameters. Splits the source into plain text, named parameters such as
":ident", and identifier parameters such as ":!ident".

A parameter name consists of ASCII letters, digits and underscores. A colon
preceded by another colon never starts a parameter, which leaves Postgres casts
such as "::text" untouched.

Non-goals:

	* Full SQL parser.

Notable limitations:

	* Doesn't skip quoted strings or comments: a ":ident" inside a string literal
	  is still a parameter.
*/
type Tokenizer struct {
	Source string
	cursor int
	next   Token
}

/*
Returns the next token if possible. When the tokenizer reaches the end, this
returns an empty `Token{}`. Call `Token.IsInvalid` to detect the end.
*/
func (self *Tokenizer) Next() Token {
	next := self.next
	if !next.IsInvalid() {
		self.next = Token{}
		return next
	}

	start := self.cursor

	for self.more() {
		mid := self.cursor
		if self.maybeDdlParam(); self.cursor > mid {
			return self.choose(start, mid, TokenTypeDdlParam)
		}
		if self.maybeNamedParam(); self.cursor > mid {
			return self.choose(start, mid, TokenTypeNamedParam)
		}
		self.skipChar()
	}

	if self.cursor > start {
		return Token{self.from(start), TokenTypeText}
	}
	return Token{}
}

func (self *Tokenizer) choose(start, mid int, typ TokenType) Token {
	tok := Token{self.from(mid), typ}
	if mid > start {
		self.next = tok
		return Token{self.Source[start:mid], TokenTypeText}
	}
	return tok
}

func (self *Tokenizer) maybeDdlParam() {
	start := self.cursor
	if !self.skippedParamPrefix() {
		return
	}
	if !self.skippedByte(ddlParamMarker) || !self.skippedIdent() {
		self.cursor = start
	}
}

func (self *Tokenizer) maybeNamedParam() {
	start := self.cursor
	if !self.skippedParamPrefix() {
		return
	}
	if !self.skippedIdent() {
		self.cursor = start
	}
}

// Equivalent of the lookbehind `(?<!:):`.
func (self *Tokenizer) skippedParamPrefix() bool {
	if self.cursor > 0 && self.Source[self.cursor-1] == namedParamPrefix {
		return false
	}
	return self.skippedByte(namedParamPrefix)
}

func (self *Tokenizer) skippedIdent() bool {
	start := self.cursor
	for self.more() && charsetIdent.has(self.headByte()) {
		self.skipBytes(1)
	}
	return self.cursor > start
}

func (self *Tokenizer) skipChar() {
	_, size := utf8.DecodeRuneInString(self.rest())
	self.skipBytes(size)
}

func (self *Tokenizer) skipBytes(val int) {
	self.cursor += val
}

func (self *Tokenizer) more() bool {
	return self.cursor < len(self.Source)
}

func (self *Tokenizer) rest() string {
	return self.Source[self.cursor:]
}

func (self *Tokenizer) from(start int) string {
	return self.Source[start:self.cursor]
}

func (self *Tokenizer) headByte() byte {
	return self.Source[self.cursor]
}

func (self *Tokenizer) skippedByte(val byte) bool {
	if self.more() && self.headByte() == val {
		self.skipBytes(1)
		return true
	}
	return false
}

const (
	TokenTypeInvalid TokenType = iota
	TokenTypeText
	TokenTypeNamedParam
	TokenTypeDdlParam
)

// Part of `Token`.
type TokenType byte

// Represents an arbitrary chunk of SQL text parsed by `Tokenizer`.
type Token struct {
	Text string
	Type TokenType
}

/*
True if the token's type is `TokenTypeInvalid`. This is used to detect end of
iteration when calling `(*Tokenizer).Next`.
*/
func (self Token) IsInvalid() bool {
	return self.Type == TokenTypeInvalid
}

// Implement `fmt.Stringer` for debug purposes.
func (self Token) String() string { return self.Text }

/*
Assumes that the token has `TokenTypeNamedParam` or `TokenTypeDdlParam` and
returns the parameter's name without the leading ":" or ":!".
*/
func (self Token) ParamName() string {
	name := strings.TrimPrefix(self.Text, string(namedParamPrefix))
	if self.Type == TokenTypeDdlParam {
		name = strings.TrimPrefix(name, string(ddlParamMarker))
	}
	return name
}
