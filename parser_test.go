package sf

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ExampleParseDictionary() {
	d, err := ParseDictionary(`a=?0,   b,   c; foo=bar`)
	if err != nil {
		fmt.Println(err)
	} else {
		fmt.Println(d.Canonical())
	}

	// Output:
	// a=?0, b, c;foo=bar
}

func ExampleParseList() {
	l, err := ParseList(`("foo"; a=1;b=2);lvl=5, ("bar" "baz");lvl=1`)
	if err != nil {
		fmt.Println(err)
	} else {
		fmt.Println(l.Canonical())
	}

	// Output:
	// ("foo";a=1;b=2);lvl=5, ("bar" "baz");lvl=1
}

func ExampleParseItem() {
	it, err := ParseItem(`"foo";a=1;b=2`)
	if err != nil {
		fmt.Println(err)
	} else {
		fmt.Println(it.Canonical())
	}

	// Output:
	// "foo";a=1;b=2
}

func ExampleParseItemFields() {
	fields := []string{`5; foo=bar`}
	for _, f := range fields {
		it, err := ParseItemFields([]string{f})
		if err != nil {
			fmt.Println(err)
		} else {
			fmt.Println(it.Canonical())
		}
	}

	// Output:
	// 5;foo=bar
}

func TestParseItem_Scenarios(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`5; foo=bar`, "5;foo=bar"},
		{`4.5`, "4.5"},
		{`"hello world"`, `"hello world"`},
		{`foo123/456`, "foo123/456"},
		{`:SGVsbG8gV29ybGQ=:`, ":SGVsbG8gV29ybGQ=:"},
	}
	for _, tt := range tests {
		it, err := ParseItem(tt.in)
		require.NoErrorf(t, err, "ParseItem(%q)", tt.in)
		assert.Equalf(t, tt.want, it.Canonical(), "ParseItem(%q)", tt.in)
	}
}

func TestParseItem_ByteSequenceDecodesToRawBytes(t *testing.T) {
	it, err := ParseItem(`:SGVsbG8gV29ybGQ=:`)
	require.NoError(t, err)
	bs, ok := it.Value().(ByteSequence)
	require.True(t, ok)
	assert.Equal(t, "Hello World", string(bs))
}

func TestParseList_FourMembers(t *testing.T) {
	l, err := ParseList(`token, "string", ?1; parameter, (42 42.0)`)
	require.NoError(t, err)
	require.Equal(t, 4, l.Len())

	third, err := l.Get(2)
	require.NoError(t, err)
	thirdItem, ok := third.(Item)
	require.True(t, ok)
	assert.Equal(t, Boolean(true), thirdItem.Value())
	assert.True(t, thirdItem.Parameters().Has("parameter"))

	fourth, err := l.Get(3)
	require.NoError(t, err)
	fourthInner, ok := fourth.(InnerList)
	require.True(t, ok)
	assert.Equal(t, 2, fourthInner.Len())
}

func TestParseDictionary_EntryShapes(t *testing.T) {
	d, err := ParseDictionary(`a=?0,   b,   c; foo=bar`)
	require.NoError(t, err)
	require.Equal(t, 3, d.Len())

	b, err := d.Get("b")
	require.NoError(t, err)
	bItem, ok := b.(Item)
	require.True(t, ok)
	assert.Equal(t, Boolean(true), bItem.Value())
	assert.True(t, bItem.Parameters().IsEmpty())

	c, err := d.Get("c")
	require.NoError(t, err)
	cItem, ok := c.(Item)
	require.True(t, ok)
	assert.Equal(t, Boolean(true), cItem.Value())
	fooValue, err := cItem.Parameters().Get("foo")
	require.NoError(t, err)
	assert.Equal(t, Token("bar"), fooValue)
}

func TestParseDictionary_Example(t *testing.T) {
	d, err := ParseDictionary(`a=foobar;test="bar, baz", b=toto`)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, `a=foobar;test="bar, baz", b=toto`, d.Canonical())
}

func TestParse_RejectsLeadingTab(t *testing.T) {
	_, err := ParseItem("\tfoo")
	var syntax *SyntaxError
	require.ErrorAs(t, err, &syntax)
}

func TestParse_RejectsTrailingComma(t *testing.T) {
	_, err := ParseList("a, b,")
	var syntax *SyntaxError
	require.ErrorAs(t, err, &syntax)
	assert.True(t, errors.Is(err, ErrUnexpectedEOL))
}

func TestParse_LeadingTabWrapsUnrecognizedSentinel(t *testing.T) {
	_, err := ParseItem("\tfoo")
	assert.True(t, errors.Is(err, ErrUnrecognized))

	var syntax *SyntaxError
	require.ErrorAs(t, err, &syntax)
	assert.Equal(t, syntax.Cause, errors.Unwrap(err))
}

func TestParse_TooManyDigitsWrapsSentinel(t *testing.T) {
	_, err := ParseItem("1234567890123456")
	assert.True(t, errors.Is(err, ErrTooManyDigits))
}

func TestParse_RejectsEmptyInputForItem(t *testing.T) {
	_, err := ParseItem("")
	var syntax *SyntaxError
	require.ErrorAs(t, err, &syntax)
}

func TestParse_EmptyListAndDictAreEmpty(t *testing.T) {
	l, err := ParseList("")
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())

	d, err := ParseDictionary("")
	require.NoError(t, err)
	assert.Equal(t, 0, d.Len())
}

func TestParse_DateRequiresFeatureFlag(t *testing.T) {
	_, err := ParseItem("@1659578233")
	var syntax *SyntaxError
	require.ErrorAs(t, err, &syntax)

	it, err := ParseItem("@1659578233", WithDateExtension())
	require.NoError(t, err)
	assert.Equal(t, Date(1659578233), it.Value())
	assert.Equal(t, "@1659578233", it.Canonical())
}

func TestParseItemFields_FoldsMultipleLines(t *testing.T) {
	it, err := ParseItemFields([]string{" ", "5; foo=bar", ""})
	require.NoError(t, err)
	assert.Equal(t, "5;foo=bar", it.Canonical())
}

func TestParseListFields_FoldsWithCommaSpace(t *testing.T) {
	l, err := ParseListFields([]string{"sugar, tea", "rum"})
	require.NoError(t, err)
	assert.Equal(t, "sugar, tea, rum", l.Canonical())
}

func TestRoundTrip(t *testing.T) {
	tests := []string{
		`a=?0, b, c;foo=bar`,
		`("foo";a=1;b=2);lvl=5, ("bar" "baz");lvl=1`,
		`"foo";a=1;b=2`,
		`token, "string", ?1;parameter, (42 42.0)`,
		`a=foobar;test="bar, baz", b=toto`,
		`:SGVsbG8gV29ybGQ=:`,
	}
	for _, in := range tests {
		d, err := ParseDictionary(in)
		if err == nil {
			assert.Equal(t, in, d.Canonical())
			continue
		}
		l, err := ParseList(in)
		if err == nil {
			assert.Equal(t, in, l.Canonical())
			continue
		}
		it, err := ParseItem(in)
		require.NoErrorf(t, err, "could not parse %q as dictionary, list, or item", in)
		assert.Equal(t, in, it.Canonical())
	}
}
