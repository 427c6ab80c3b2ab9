package sf

import (
	"encoding/base64"
	"strconv"
	"strings"
)

// ParseOptions configures the optional, forward-compatible behavior of
// the parser.
type ParseOptions struct {
	dateExtension bool
}

// ParseOption configures a parse call.
type ParseOption func(*ParseOptions)

// WithDateExtension enables parsing of the optional Date bare value
// (`@<integer>`). Date is a later, opt-in addition to the structured-field
// type system; without this option a leading `@` is a syntax error so that
// callers who haven't been updated to expect dates keep rejecting them.
func WithDateExtension() ParseOption {
	return func(o *ParseOptions) { o.dateExtension = true }
}

func buildOptions(opts []ParseOption) ParseOptions {
	var o ParseOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// joinFields folds multiple field lines into one, the way RFC 9110
// Section 5.2 combines field lines of the same name: trim surrounding SP
// from each line, discard lines left empty, then join with ", ". Other
// whitespace such as TAB is kept, so the parser still rejects it.
func joinFields(fields []string) string {
	nonEmpty := make([]string, 0, len(fields))
	for _, f := range fields {
		if trimmed := strings.Trim(f, " "); trimmed != "" {
			nonEmpty = append(nonEmpty, trimmed)
		}
	}
	return strings.Join(nonEmpty, ", ")
}

// ParseItem parses field as a single structured-field Item.
func ParseItem(field string, opts ...ParseOption) (Item, error) {
	p := &parser{input: []byte(field), opts: buildOptions(opts)}
	if err := p.start(); err != nil {
		return Item{}, err
	}
	it, err := p.parseItem()
	if err != nil {
		return Item{}, err
	}
	p.pos = skipSP(p.input, p.pos)
	if p.pos != len(p.input) {
		return Item{}, syntaxError(p.pos, ErrUnrecognized, "unexpected trailing data")
	}
	return it, nil
}

// ParseItemFields parses fields, folded as one field line, as a single
// structured-field Item.
func ParseItemFields(fields []string, opts ...ParseOption) (Item, error) {
	return ParseItem(joinFields(fields), opts...)
}

// ParseList parses field as a structured-field List.
func ParseList(field string, opts ...ParseOption) (OuterList, error) {
	p := &parser{input: []byte(field), opts: buildOptions(opts)}
	if err := p.start(); err != nil {
		return OuterList{}, err
	}
	if p.pos >= len(p.input) {
		return OuterList{}, nil
	}
	var members []Member
	for {
		m, err := p.parseMember()
		if err != nil {
			return OuterList{}, err
		}
		members = append(members, m)
		p.pos = skipSP(p.input, p.pos)
		if p.pos >= len(p.input) {
			break
		}
		if p.input[p.pos] != ',' {
			return OuterList{}, syntaxError(p.pos, ErrUnrecognized, "expected ',' between list members")
		}
		p.pos++
		if p.eof() {
			return OuterList{}, syntaxError(p.pos, ErrUnexpectedEOL, "trailing comma")
		}
		if err := p.requireOWS(); err != nil {
			return OuterList{}, err
		}
		if p.eof() {
			return OuterList{}, syntaxError(p.pos, ErrUnexpectedEOL, "trailing comma")
		}
	}
	return OuterList{members: members}, nil
}

// ParseListFields parses fields, folded as one field line, as a
// structured-field List.
func ParseListFields(fields []string, opts ...ParseOption) (OuterList, error) {
	return ParseList(joinFields(fields), opts...)
}

// ParseDictionary parses field as a structured-field Dictionary.
func ParseDictionary(field string, opts ...ParseOption) (Dictionary, error) {
	p := &parser{input: []byte(field), opts: buildOptions(opts)}
	if err := p.start(); err != nil {
		return Dictionary{}, err
	}
	if p.pos >= len(p.input) {
		return Dictionary{}, nil
	}
	dict := Dictionary{}
	for {
		key, err := p.parseKey()
		if err != nil {
			return Dictionary{}, err
		}
		var member Member
		if p.pos < len(p.input) && p.input[p.pos] == '=' {
			p.pos++
			member, err = p.parseMember()
			if err != nil {
				return Dictionary{}, err
			}
		} else {
			params, err := p.parseParams()
			if err != nil {
				return Dictionary{}, err
			}
			member = Item{value: Boolean(true), params: params}
		}
		dict, err = dict.Add(key, member)
		if err != nil {
			return Dictionary{}, err
		}
		p.pos = skipSP(p.input, p.pos)
		if p.pos >= len(p.input) {
			break
		}
		if p.input[p.pos] != ',' {
			return Dictionary{}, syntaxError(p.pos, ErrUnrecognized, "expected ',' between dictionary members")
		}
		p.pos++
		if p.eof() {
			return Dictionary{}, syntaxError(p.pos, ErrUnexpectedEOL, "trailing comma")
		}
		if err := p.requireOWS(); err != nil {
			return Dictionary{}, err
		}
		if p.eof() {
			return Dictionary{}, syntaxError(p.pos, ErrUnexpectedEOL, "trailing comma")
		}
	}
	return dict, nil
}

// ParseDictionaryFields parses fields, folded as one field line, as a
// structured-field Dictionary.
func ParseDictionaryFields(fields []string, opts ...ParseOption) (Dictionary, error) {
	return ParseDictionary(joinFields(fields), opts...)
}

type parser struct {
	input []byte
	pos   int
	opts  ParseOptions
}

// start discards leading SP and rejects a leading TAB or control byte,
// per RFC 8941 Section 4.2's top-level parsing algorithm.
func (p *parser) start() error {
	if p.pos < len(p.input) && isControl(p.input[p.pos]) {
		return syntaxError(p.pos, ErrUnrecognized, "leading control character")
	}
	p.pos = skipSP(p.input, p.pos)
	return nil
}

func skipSP(input []byte, pos int) int {
	for pos < len(input) && input[pos] == ' ' {
		pos++
	}
	return pos
}

func (p *parser) eof() bool { return p.pos >= len(p.input) }

// requireOWS consumes the mandatory run of one-or-more SP that RFC 8941
// requires between a list/dictionary separator comma and the member
// that follows it.
func (p *parser) requireOWS() error {
	if p.eof() {
		return syntaxError(p.pos, ErrUnexpectedEOL, "expected space after ','")
	}
	if p.input[p.pos] != ' ' {
		return syntaxError(p.pos, ErrUnrecognized, "expected space after ','")
	}
	p.pos = skipSP(p.input, p.pos)
	return nil
}

func (p *parser) parseMember() (Member, error) {
	p.pos = skipSP(p.input, p.pos)
	if p.eof() {
		return nil, syntaxError(p.pos, ErrUnexpectedEOL, "unexpected end of input")
	}
	if p.input[p.pos] == '(' {
		return p.parseInnerList()
	}
	it, err := p.parseItem()
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (p *parser) parseInnerList() (InnerList, error) {
	if p.eof() {
		return InnerList{}, syntaxError(p.pos, ErrUnexpectedEOL, "expected '('")
	}
	if p.input[p.pos] != '(' {
		return InnerList{}, syntaxError(p.pos, ErrUnrecognized, "expected '('")
	}
	p.pos++
	var items []Item
	for {
		p.pos = skipSP(p.input, p.pos)
		if p.eof() {
			return InnerList{}, syntaxError(p.pos, ErrUnexpectedEOL, "unterminated inner list")
		}
		if p.input[p.pos] == ')' {
			p.pos++
			break
		}
		it, err := p.parseItem()
		if err != nil {
			return InnerList{}, err
		}
		items = append(items, it)
		if !p.eof() && p.input[p.pos] != ' ' && p.input[p.pos] != ')' {
			return InnerList{}, syntaxError(p.pos, ErrUnrecognized, "expected space or ')' after inner list item")
		}
	}
	params, err := p.parseParams()
	if err != nil {
		return InnerList{}, err
	}
	return InnerList{items: items, params: params}, nil
}

func (p *parser) parseItem() (Item, error) {
	v, err := p.parseBareItem()
	if err != nil {
		return Item{}, err
	}
	params, err := p.parseParams()
	if err != nil {
		return Item{}, err
	}
	return Item{value: v, params: params}, nil
}

func (p *parser) parseParams() (Parameters, error) {
	var pairs []ParamPair
	for !p.eof() && p.input[p.pos] == ';' {
		p.pos++
		p.pos = skipSP(p.input, p.pos)
		key, err := p.parseKey()
		if err != nil {
			return Parameters{}, err
		}
		var value BareValue = Boolean(true)
		if !p.eof() && p.input[p.pos] == '=' {
			p.pos++
			value, err = p.parseBareItem()
			if err != nil {
				return Parameters{}, err
			}
		}
		replaced := false
		for i, pair := range pairs {
			if pair.Key == key {
				pairs[i].Value = value
				replaced = true
				break
			}
		}
		if !replaced {
			pairs = append(pairs, ParamPair{Key: key, Value: value})
		}
	}
	return Parameters{pairs: pairs}, nil
}

func (p *parser) parseKey() (string, error) {
	if p.eof() {
		return "", syntaxError(p.pos, ErrUnexpectedEOL, "expected key")
	}
	c := p.input[p.pos]
	if c != '*' && !isLower(c) {
		return "", syntaxError(p.pos, ErrUnrecognized, "key must start with a lowercase letter or '*'")
	}
	start := p.pos
	for !p.eof() && isKeyChar(p.input[p.pos]) {
		p.pos++
	}
	return string(p.input[start:p.pos]), nil
}

func (p *parser) parseBareItem() (BareValue, error) {
	if p.eof() {
		return nil, syntaxError(p.pos, ErrUnexpectedEOL, "expected a bare item")
	}
	switch c := p.input[p.pos]; {
	case c == '-' || isDigit(c):
		return p.parseNumber()
	case c == '"':
		return p.parseString()
	case c == '*' || isAlpha(c):
		return p.parseToken()
	case c == ':':
		return p.parseByteSequence()
	case c == '?':
		return p.parseBoolean()
	case c == '@' && p.opts.dateExtension:
		return p.parseDate()
	default:
		return nil, syntaxError(p.pos, ErrUnrecognized, "unrecognized character %q", c)
	}
}

func (p *parser) parseNumber() (BareValue, error) {
	start := p.pos
	sign := int64(1)
	if p.input[p.pos] == '-' {
		sign = -1
		p.pos++
	}
	if p.eof() {
		return nil, syntaxError(p.pos, ErrUnexpectedEOL, "expected digit")
	}
	if !isDigit(p.input[p.pos]) {
		return nil, syntaxError(p.pos, ErrUnrecognized, "expected digit")
	}
	var digits strings.Builder
	decimalPlaces := -1
	for !p.eof() {
		c := p.input[p.pos]
		if isDigit(c) {
			if digits.Len() == 15 {
				return nil, syntaxError(start, ErrTooManyDigits, "too many digits")
			}
			digits.WriteByte(c)
			if decimalPlaces >= 0 {
				if decimalPlaces == 3 {
					return nil, syntaxError(start, ErrTooManyDigits, "too many fractional digits")
				}
				decimalPlaces++
			}
		} else if c == '.' {
			if decimalPlaces != -1 {
				break
			}
			if digits.Len() > 12 {
				return nil, syntaxError(start, ErrTooManyDigits, "too many integer digits before decimal point")
			}
			decimalPlaces = 0
		} else {
			break
		}
		p.pos++
	}
	if decimalPlaces == 0 {
		if p.eof() {
			return nil, syntaxError(p.pos, ErrUnexpectedEOL, "expected a digit after decimal point")
		}
		return nil, syntaxError(p.pos, ErrUnrecognized, "expected a digit after decimal point")
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return nil, syntaxError(start, err, "malformed number")
	}
	if decimalPlaces == -1 {
		return Integer(sign * n), nil
	}
	var milli int64
	switch decimalPlaces {
	case 1:
		milli = sign * n * 100
	case 2:
		milli = sign * n * 10
	case 3:
		milli = sign * n
	}
	d, err := newDecimalFromMilli(milli)
	if err != nil {
		return nil, syntaxError(start, err, "decimal out of range")
	}
	return d, nil
}

func (p *parser) parseString() (BareValue, error) {
	start := p.pos
	p.pos++ // opening quote
	var b strings.Builder
	for {
		if p.eof() {
			return nil, syntaxError(start, ErrUnexpectedEOL, "unterminated string")
		}
		c := p.input[p.pos]
		if c == '"' {
			p.pos++
			return String(b.String()), nil
		}
		if c == '\\' {
			p.pos++
			if p.eof() {
				return nil, syntaxError(p.pos, ErrUnexpectedEOL, "unterminated escape sequence")
			}
			next := p.input[p.pos]
			if next != '"' && next != '\\' {
				return nil, syntaxError(p.pos, ErrUnrecognized, "invalid escape sequence")
			}
			b.WriteByte(next)
			p.pos++
			continue
		}
		if !isPrint(c) {
			return nil, syntaxError(p.pos, ErrUnrecognized, "invalid character in string")
		}
		b.WriteByte(c)
		p.pos++
	}
}

func (p *parser) parseToken() (BareValue, error) {
	start := p.pos
	p.pos++
	for !p.eof() && isTokenChar(p.input[p.pos]) {
		p.pos++
	}
	return Token(p.input[start:p.pos]), nil
}

func (p *parser) parseByteSequence() (BareValue, error) {
	start := p.pos
	p.pos++ // opening colon
	contentStart := p.pos
	for !p.eof() && p.input[p.pos] != ':' {
		if !isBase64Char(p.input[p.pos]) {
			return nil, syntaxError(p.pos, ErrUnrecognized, "invalid base64 character")
		}
		p.pos++
	}
	if p.eof() {
		return nil, syntaxError(start, ErrUnexpectedEOL, "unterminated byte sequence")
	}
	decoded, err := base64.StdEncoding.DecodeString(string(p.input[contentStart:p.pos]))
	if err != nil {
		return nil, syntaxError(contentStart, err, "invalid base64 content")
	}
	p.pos++ // closing colon
	return ByteSequence(decoded), nil
}

func (p *parser) parseBoolean() (BareValue, error) {
	start := p.pos
	p.pos++ // '?'
	if p.eof() {
		return nil, syntaxError(start, ErrUnexpectedEOL, "unterminated boolean")
	}
	c := p.input[p.pos]
	p.pos++
	switch c {
	case '0':
		return Boolean(false), nil
	case '1':
		return Boolean(true), nil
	default:
		return nil, syntaxError(p.pos-1, ErrUnrecognized, "invalid boolean value")
	}
}

func (p *parser) parseDate() (BareValue, error) {
	start := p.pos
	p.pos++ // '@'
	if p.eof() {
		return nil, syntaxError(p.pos, ErrUnexpectedEOL, "expected integer after '@'")
	}
	v, err := p.parseNumber()
	if err != nil {
		return nil, err
	}
	i, ok := v.(Integer)
	if !ok {
		return nil, syntaxError(start, ErrUnrecognized, "date must be an integer")
	}
	return Date(i), nil
}
