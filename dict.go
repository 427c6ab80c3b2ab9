package sf

import (
	"sort"
	"strings"
)

// DictPair is one key-member binding in a Dictionary.
type DictPair struct {
	Key    string
	Member Member
}

// Dictionary is an insertion-ordered mapping from keys to members
// (Item or InnerList).
type Dictionary struct {
	pairs []DictPair
}

// EmptyDictionary returns the empty Dictionary.
func EmptyDictionary() Dictionary { return Dictionary{} }

// NewDictionary validates every key in pairs and returns an ordered
// Dictionary built from them, left-to-right, later duplicate keys
// overwriting earlier ones in their original position.
func NewDictionary(pairs ...DictPair) (Dictionary, error) {
	d := Dictionary{}
	for _, pair := range pairs {
		next, err := d.Add(pair.Key, pair.Member)
		if err != nil {
			return Dictionary{}, err
		}
		d = next
	}
	return d, nil
}

// DictionaryFromWire parses text as a standalone RFC 8941 dictionary.
func DictionaryFromWire(text string, opts ...ParseOption) (Dictionary, error) {
	return ParseDictionary(text, opts...)
}

// Len returns the number of entries.
func (d Dictionary) Len() int { return len(d.pairs) }

// IsEmpty reports whether the dictionary has no entries.
func (d Dictionary) IsEmpty() bool { return len(d.pairs) == 0 }

// Has reports whether key is present.
func (d Dictionary) Has(key string) bool {
	_, ok := d.index(key)
	return ok
}

// Get returns the member bound to key, or a *NotFoundError.
func (d Dictionary) Get(key string) (Member, error) {
	i, ok := d.index(key)
	if !ok {
		return nil, &NotFoundError{Key: key}
	}
	return d.pairs[i].Member, nil
}

// Pair returns the key-member binding at index, supporting negative
// indices counting from the end, or an *IndexOutOfRangeError.
func (d Dictionary) Pair(index int) (DictPair, error) {
	i, ok := resolveIndex(index, len(d.pairs))
	if !ok {
		return DictPair{}, &IndexOutOfRangeError{Index: index, Len: len(d.pairs)}
	}
	return d.pairs[i], nil
}

// Keys returns the dictionary keys in insertion order.
func (d Dictionary) Keys() []string {
	keys := make([]string, len(d.pairs))
	for i, pair := range d.pairs {
		keys[i] = pair.Key
	}
	return keys
}

// Pairs returns a copy of the key-member bindings in insertion order.
func (d Dictionary) Pairs() []DictPair {
	out := make([]DictPair, len(d.pairs))
	copy(out, d.pairs)
	return out
}

func (d Dictionary) index(key string) (int, bool) {
	for i, pair := range d.pairs {
		if pair.Key == key {
			return i, true
		}
	}
	return 0, false
}

// Add validates key and binds it to member, replacing the value in
// place if key already exists (preserving its original position) or
// appending it otherwise.
func (d Dictionary) Add(key string, member Member) (Dictionary, error) {
	if err := validateKey(key); err != nil {
		return Dictionary{}, err
	}
	if i, ok := d.index(key); ok {
		pairs := make([]DictPair, len(d.pairs))
		copy(pairs, d.pairs)
		pairs[i].Member = member
		return Dictionary{pairs: pairs}, nil
	}
	pairs := make([]DictPair, len(d.pairs), len(d.pairs)+1)
	copy(pairs, d.pairs)
	pairs = append(pairs, DictPair{Key: key, Member: member})
	return Dictionary{pairs: pairs}, nil
}

// Append removes any existing binding for key and inserts it at the
// tail.
func (d Dictionary) Append(key string, member Member) (Dictionary, error) {
	if err := validateKey(key); err != nil {
		return Dictionary{}, err
	}
	pairs := make([]DictPair, 0, len(d.pairs)+1)
	for _, pair := range d.pairs {
		if pair.Key != key {
			pairs = append(pairs, pair)
		}
	}
	pairs = append(pairs, DictPair{Key: key, Member: member})
	return Dictionary{pairs: pairs}, nil
}

// Prepend removes any existing binding for key and inserts it at the
// head.
func (d Dictionary) Prepend(key string, member Member) (Dictionary, error) {
	if err := validateKey(key); err != nil {
		return Dictionary{}, err
	}
	pairs := make([]DictPair, 0, len(d.pairs)+1)
	pairs = append(pairs, DictPair{Key: key, Member: member})
	for _, pair := range d.pairs {
		if pair.Key != key {
			pairs = append(pairs, pair)
		}
	}
	return Dictionary{pairs: pairs}, nil
}

// Remove drops the listed keys. If none of them are present, Remove
// returns d unchanged.
func (d Dictionary) Remove(keys ...string) Dictionary {
	if len(keys) == 0 {
		return d
	}
	remove := make(map[string]bool, len(keys))
	for _, k := range keys {
		remove[k] = true
	}
	anyFound := false
	for _, pair := range d.pairs {
		if remove[pair.Key] {
			anyFound = true
			break
		}
	}
	if !anyFound {
		return d
	}
	pairs := make([]DictPair, 0, len(d.pairs))
	for _, pair := range d.pairs {
		if !remove[pair.Key] {
			pairs = append(pairs, pair)
		}
	}
	return Dictionary{pairs: pairs}
}

// MergePairs applies each source, in order, on top of d, later sources
// winning on key conflicts.
func (d Dictionary) MergePairs(others ...[]DictPair) (Dictionary, error) {
	result := d
	for _, src := range others {
		for _, pair := range src {
			next, err := result.Add(pair.Key, pair.Member)
			if err != nil {
				return Dictionary{}, err
			}
			result = next
		}
	}
	return result, nil
}

// DictionaryFromAssociative builds a Dictionary from a plain key-to-member
// mapping. Because Go map iteration order is unspecified, keys are
// inserted in sorted order; callers that need explicit insertion order
// should use NewDictionary with explicit pairs instead.
func DictionaryFromAssociative(m map[string]Member) (Dictionary, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	d := Dictionary{}
	for _, k := range keys {
		next, err := d.Add(k, m[k])
		if err != nil {
			return Dictionary{}, err
		}
		d = next
	}
	return d, nil
}

// MergeAssociative applies each source map on top of d, in sorted-key
// order within each map, later maps winning on conflicts.
func (d Dictionary) MergeAssociative(others ...map[string]Member) (Dictionary, error) {
	result := d
	for _, m := range others {
		next, err := DictionaryFromAssociative(m)
		if err != nil {
			return Dictionary{}, err
		}
		merged, err := result.MergePairs(next.pairs)
		if err != nil {
			return Dictionary{}, err
		}
		result = merged
	}
	return result, nil
}

// Canonical serializes the dictionary as a comma-space-joined sequence
// of entries: `key` for a parameter-free boolean-true item, `key<params>`
// for a parameterized boolean-true item, and `key=<member>` otherwise.
func (d Dictionary) Canonical() string {
	if len(d.pairs) == 0 {
		return ""
	}
	parts := make([]string, len(d.pairs))
	for i, pair := range d.pairs {
		parts[i] = pair.Key + dictValueSuffix(pair.Member)
	}
	return strings.Join(parts, ", ")
}

func dictValueSuffix(m Member) string {
	if it, ok := m.(Item); ok {
		if b, ok := it.Value().(Boolean); ok && bool(b) {
			return it.Parameters().Canonical()
		}
	}
	return "=" + m.Canonical()
}

func (d Dictionary) String() string { return d.Canonical() }
