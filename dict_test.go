package sf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionary_Canonical(t *testing.T) {
	d, err := NewDictionary(
		DictPair{Key: "a", Member: NewBareItem(Boolean(false))},
		DictPair{Key: "b", Member: NewBareItem(Boolean(true))},
		DictPair{Key: "c", Member: NewItem(Boolean(true), mustParams(t, ParamPair{Key: "foo", Value: Token("bar")}))},
	)
	require.NoError(t, err)
	assert.Equal(t, "a=?0, b, c;foo=bar", d.Canonical())
	assert.Equal(t, 3, d.Len())
}

func mustParams(t *testing.T, pairs ...ParamPair) Parameters {
	t.Helper()
	p, err := NewParameters(pairs...)
	require.NoError(t, err)
	return p
}

func TestDictionary_AddPreservesPosition(t *testing.T) {
	d, err := NewDictionary(
		DictPair{Key: "a", Member: NewBareItem(Integer(1))},
		DictPair{Key: "b", Member: NewBareItem(Integer(2))},
	)
	require.NoError(t, err)
	d, err = d.Add("a", NewBareItem(Integer(9)))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, d.Keys())
	assert.Equal(t, "a=9, b=2", d.Canonical())
}

func TestDictionary_Remove_NoMatchIsNoOp(t *testing.T) {
	d, err := NewDictionary(DictPair{Key: "a", Member: NewBareItem(Integer(1))})
	require.NoError(t, err)
	same := d.Remove("nonexistent")
	assert.Equal(t, d, same)
}

func TestDictionary_InvalidKey(t *testing.T) {
	_, err := NewDictionary(DictPair{Key: "0bad", Member: NewBareItem(Integer(1))})
	var invalidKey *InvalidKeyError
	require.ErrorAs(t, err, &invalidKey)
}

func TestDictionaryFromWire(t *testing.T) {
	d, err := DictionaryFromWire(`a=foobar;test="bar, baz", b=toto`)
	require.NoError(t, err)
	assert.Equal(t, `a=foobar;test="bar, baz", b=toto`, d.Canonical())
	assert.Equal(t, 2, d.Len())
}

func TestDictionary_NotFound(t *testing.T) {
	d, err := NewDictionary(DictPair{Key: "a", Member: NewBareItem(Integer(1))})
	require.NoError(t, err)
	_, err = d.Get("missing")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestDictionaryFromAssociative_SortsKeys(t *testing.T) {
	d, err := DictionaryFromAssociative(map[string]Member{
		"b": NewBareItem(Integer(2)),
		"a": NewBareItem(Integer(1)),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, d.Keys())
}

func TestDictionary_MergeAssociative_LaterWins(t *testing.T) {
	base, err := NewDictionary(DictPair{Key: "a", Member: NewBareItem(Integer(1))})
	require.NoError(t, err)
	merged, err := base.MergeAssociative(
		map[string]Member{"b": NewBareItem(Integer(2))},
		map[string]Member{"a": NewBareItem(Integer(9))},
	)
	require.NoError(t, err)
	assert.Equal(t, "a=9, b=2", merged.Canonical())
}
