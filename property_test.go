package sf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func rapidInteger(t *rapid.T) Integer {
	n := rapid.Int64Range(-maxInteger, maxInteger).Draw(t, "n")
	v, err := NewInteger(n)
	if err != nil {
		t.Fatalf("NewInteger(%d): %v", n, err)
	}
	return v
}

func rapidToken(t *rapid.T) Token {
	s := rapid.StringMatching(`[A-Za-z*][A-Za-z0-9!#$%&'*+\-.^_` + "`" + `|~:/]*`).Draw(t, "token")
	tok, err := NewToken(s)
	if err != nil {
		t.Fatalf("NewToken(%q): %v", s, err)
	}
	return tok
}

func rapidBareItem(t *rapid.T) Item {
	return NewBareItem(rapidInteger(t))
}

// TestProperty_IntegerRoundTrip checks that any in-range integer survives a
// parse-serialize round trip unchanged.
func TestProperty_IntegerRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapidInteger(t)
		it, err := ParseItem(n.Canonical())
		require.NoError(t, err)
		assert.Equal(t, n, it.Value())
	})
}

// TestProperty_TokenRoundTrip checks that any valid token survives a
// parse-serialize round trip unchanged.
func TestProperty_TokenRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tok := rapidToken(t)
		it, err := ParseItem(tok.Canonical())
		require.NoError(t, err)
		assert.Equal(t, tok, it.Value())
	})
}

// TestProperty_InnerListGetNegativeOne checks that Get(-1) always agrees
// with Get(Len()-1) on a non-empty list.
func TestProperty_InnerListGetNegativeOne(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "n")
		items := make([]Item, n)
		for i := range items {
			items[i] = rapidBareItem(t)
		}
		l := NewInnerList(items, EmptyParameters())
		last, err := l.Get(-1)
		require.NoError(t, err)
		positional, err := l.Get(l.Len() - 1)
		require.NoError(t, err)
		assert.True(t, last.Equal(positional))
	})
}

// TestProperty_InnerListInsertAtEndsMatchPushUnshift checks that
// Insert(Len(), v) == Push(v) and Insert(0, v) == Unshift(v) for any list.
func TestProperty_InnerListInsertAtEndsMatchPushUnshift(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(t, "n")
		items := make([]Item, n)
		for i := range items {
			items[i] = rapidBareItem(t)
		}
		base := NewInnerList(items, EmptyParameters())
		v := rapidBareItem(t)

		viaInsertEnd, err := base.Insert(base.Len(), v)
		require.NoError(t, err)
		viaPush := base.Push(v)
		assert.Equal(t, viaPush.Canonical(), viaInsertEnd.Canonical())

		viaInsertStart, err := base.Insert(0, v)
		require.NoError(t, err)
		viaUnshift := base.Unshift(v)
		assert.Equal(t, viaUnshift.Canonical(), viaInsertStart.Canonical())
	})
}

// TestProperty_ParametersRemoveNoMatchIsIdentity checks that removing a key
// that is not present leaves Parameters exactly as it was.
func TestProperty_ParametersRemoveNoMatchIsIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		keyGen := rapid.StringMatching(`[a-z][a-z0-9_.*-]*`)
		k1 := keyGen.Draw(t, "k1")
		missing := keyGen.Filter(func(s string) bool { return s != k1 }).Draw(t, "missing")

		p, err := NewParameters(ParamPair{Key: k1, Value: Integer(1)})
		require.NoError(t, err)
		same := p.Remove(missing)
		assert.Equal(t, p, same)
	})
}

// TestProperty_ItemWithParametersIdempotent checks that setting an item's
// parameters to a canonically-equal value returns a value with an equal
// canonical form, i.e. WithParameters is idempotent under re-application.
func TestProperty_ItemWithParametersIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapidInteger(t)
		k := rapid.StringMatching(`[a-z][a-z0-9_.*-]*`).Draw(t, "k")
		p, err := NewParameters(ParamPair{Key: k, Value: rapidInteger(t)})
		require.NoError(t, err)
		it := NewItem(v, p)

		twice := it.WithParameters(p).WithParameters(p)
		assert.Equal(t, it.Canonical(), twice.Canonical())
	})
}

// TestProperty_DecimalFromMilliKeepsInRangeValues checks that any value in
// thousandths whose integer part has at most 12 digits is accepted by
// newDecimalFromMilli and stored unchanged.
func TestProperty_DecimalFromMilliKeepsInRangeValues(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		intPart := rapid.Int64Range(-999_999_999_999, 999_999_999_999).Draw(t, "intPart")
		millis := rapid.Int64Range(0, 999).Draw(t, "millis")
		milli := intPart*1000 + millis
		if intPart < 0 {
			milli = intPart*1000 - millis
		}
		d, err := newDecimalFromMilli(milli)
		require.NoError(t, err)
		assert.Equal(t, milli, d.milli)
	})
}
