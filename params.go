package sf

import (
	"sort"
	"strings"
)

// validateKey checks s against the RFC 8941 key grammar
// `[a-z*][a-z0-9.*_-]*`.
func validateKey(s string) error {
	if s == "" || !(isLower(s[0]) || s[0] == '*') {
		return &InvalidKeyError{Key: s}
	}
	for i := 1; i < len(s); i++ {
		if !isKeyChar(s[i]) {
			return &InvalidKeyError{Key: s}
		}
	}
	return nil
}

// ParamPair is one key-value binding in a Parameters set.
type ParamPair struct {
	Key   string
	Value BareValue
}

// Parameters is an insertion-ordered mapping from keys to bare items,
// attached to an Item or an InnerList. Parameters of parameters are
// forbidden by construction: a BareValue never itself carries
// parameters.
type Parameters struct {
	pairs []ParamPair
}

// EmptyParameters returns the empty Parameters set.
func EmptyParameters() Parameters { return Parameters{} }

// NewParameters validates every key in pairs and returns an ordered
// Parameters set built from them, left-to-right, later duplicate keys
// overwriting earlier ones in their original position.
func NewParameters(pairs ...ParamPair) (Parameters, error) {
	p := Parameters{}
	for _, pair := range pairs {
		next, err := p.Add(pair.Key, pair.Value)
		if err != nil {
			return Parameters{}, err
		}
		p = next
	}
	return p, nil
}

// ParametersFromAssociative builds Parameters from a plain key-to-value
// mapping. Because Go map iteration order is unspecified, keys are
// inserted in sorted order; callers that need explicit insertion order
// should use NewParameters with explicit pairs instead.
func ParametersFromAssociative(m map[string]BareValue) (Parameters, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	p := Parameters{}
	for _, k := range keys {
		next, err := p.Add(k, m[k])
		if err != nil {
			return Parameters{}, err
		}
		p = next
	}
	return p, nil
}

// ParametersFromWire parses text as a standalone RFC 8941 parameters
// sequence (`;key=value;key2` ...), without an enclosing item.
func ParametersFromWire(text string) (Parameters, error) {
	ps := &parser{input: []byte(text)}
	p, err := ps.parseParams()
	if err != nil {
		return Parameters{}, err
	}
	if ps.pos != len(ps.input) {
		return Parameters{}, syntaxError(ps.pos, ErrUnrecognized, "unexpected trailing data")
	}
	return p, nil
}

// Len returns the number of parameters.
func (p Parameters) Len() int { return len(p.pairs) }

// IsEmpty reports whether the parameter set has no entries.
func (p Parameters) IsEmpty() bool { return len(p.pairs) == 0 }

// Has reports whether key is present.
func (p Parameters) Has(key string) bool {
	_, ok := p.index(key)
	return ok
}

// Get returns the bare value bound to key, or a *NotFoundError.
func (p Parameters) Get(key string) (BareValue, error) {
	i, ok := p.index(key)
	if !ok {
		return nil, &NotFoundError{Key: key}
	}
	return p.pairs[i].Value, nil
}

// Pair returns the key-value binding at index, supporting negative
// indices counting from the end, or an *IndexOutOfRangeError.
func (p Parameters) Pair(index int) (ParamPair, error) {
	i, ok := resolveIndex(index, len(p.pairs))
	if !ok {
		return ParamPair{}, &IndexOutOfRangeError{Index: index, Len: len(p.pairs)}
	}
	return p.pairs[i], nil
}

// Keys returns the parameter keys in insertion order.
func (p Parameters) Keys() []string {
	keys := make([]string, len(p.pairs))
	for i, pair := range p.pairs {
		keys[i] = pair.Key
	}
	return keys
}

// Pairs returns a copy of the key-value bindings in insertion order.
func (p Parameters) Pairs() []ParamPair {
	out := make([]ParamPair, len(p.pairs))
	copy(out, p.pairs)
	return out
}

func (p Parameters) index(key string) (int, bool) {
	for i, pair := range p.pairs {
		if pair.Key == key {
			return i, true
		}
	}
	return 0, false
}

// Add validates key and binds it to v, replacing the value in place if
// key already exists (preserving its original position) or appending it
// otherwise.
func (p Parameters) Add(key string, v BareValue) (Parameters, error) {
	if err := validateKey(key); err != nil {
		return Parameters{}, err
	}
	if i, ok := p.index(key); ok {
		pairs := make([]ParamPair, len(p.pairs))
		copy(pairs, p.pairs)
		pairs[i].Value = v
		return Parameters{pairs: pairs}, nil
	}
	pairs := make([]ParamPair, len(p.pairs), len(p.pairs)+1)
	copy(pairs, p.pairs)
	pairs = append(pairs, ParamPair{Key: key, Value: v})
	return Parameters{pairs: pairs}, nil
}

// AddItem binds key to it.Value(). RFC 8941 parameter values are bare
// items, so it must itself carry no parameters; nesting parameters within
// parameters is rejected.
func (p Parameters) AddItem(key string, it Item) (Parameters, error) {
	if !it.Parameters().IsEmpty() {
		return Parameters{}, &InvalidArgumentError{Reason: "parameter value must be a bare item"}
	}
	return p.Add(key, it.Value())
}

// Append removes any existing binding for key and inserts it at the
// tail.
func (p Parameters) Append(key string, v BareValue) (Parameters, error) {
	if err := validateKey(key); err != nil {
		return Parameters{}, err
	}
	pairs := make([]ParamPair, 0, len(p.pairs)+1)
	for _, pair := range p.pairs {
		if pair.Key != key {
			pairs = append(pairs, pair)
		}
	}
	pairs = append(pairs, ParamPair{Key: key, Value: v})
	return Parameters{pairs: pairs}, nil
}

// Prepend removes any existing binding for key and inserts it at the
// head.
func (p Parameters) Prepend(key string, v BareValue) (Parameters, error) {
	if err := validateKey(key); err != nil {
		return Parameters{}, err
	}
	pairs := make([]ParamPair, 0, len(p.pairs)+1)
	pairs = append(pairs, ParamPair{Key: key, Value: v})
	for _, pair := range p.pairs {
		if pair.Key != key {
			pairs = append(pairs, pair)
		}
	}
	return Parameters{pairs: pairs}, nil
}

// Remove drops the listed keys. If none of them are present, Remove
// returns p unchanged (the identical slice, not a copy).
func (p Parameters) Remove(keys ...string) Parameters {
	if len(keys) == 0 {
		return p
	}
	remove := make(map[string]bool, len(keys))
	for _, k := range keys {
		remove[k] = true
	}
	anyFound := false
	for _, pair := range p.pairs {
		if remove[pair.Key] {
			anyFound = true
			break
		}
	}
	if !anyFound {
		return p
	}
	pairs := make([]ParamPair, 0, len(p.pairs))
	for _, pair := range p.pairs {
		if !remove[pair.Key] {
			pairs = append(pairs, pair)
		}
	}
	return Parameters{pairs: pairs}
}

// MergePairs applies each source, in order, on top of p, later sources
// winning on key conflicts (equivalent to calling Add repeatedly).
func (p Parameters) MergePairs(others ...[]ParamPair) (Parameters, error) {
	result := p
	for _, src := range others {
		for _, pair := range src {
			next, err := result.Add(pair.Key, pair.Value)
			if err != nil {
				return Parameters{}, err
			}
			result = next
		}
	}
	return result, nil
}

// MergeAssociative applies each source map on top of p, in sorted-key
// order within each map, later maps winning on conflicts.
func (p Parameters) MergeAssociative(others ...map[string]BareValue) (Parameters, error) {
	result := p
	for _, m := range others {
		next, err := ParametersFromAssociative(m)
		if err != nil {
			return Parameters{}, err
		}
		merged, err := result.MergePairs(next.pairs)
		if err != nil {
			return Parameters{}, err
		}
		result = merged
	}
	return result, nil
}

// Canonical serializes the parameter list as `;key` (boolean true) or
// `;key=value` tokens, in insertion order.
func (p Parameters) Canonical() string {
	if len(p.pairs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, pair := range p.pairs {
		b.WriteByte(';')
		b.WriteString(pair.Key)
		if boolValue, ok := pair.Value.(Boolean); ok && bool(boolValue) {
			continue
		}
		b.WriteByte('=')
		b.WriteString(pair.Value.Canonical())
	}
	return b.String()
}

func (p Parameters) String() string { return p.Canonical() }

// Equal reports whether two parameter sets have the same keys bound to
// equal values in the same order.
func (p Parameters) Equal(other Parameters) bool {
	if len(p.pairs) != len(other.pairs) {
		return false
	}
	for i, pair := range p.pairs {
		o := other.pairs[i]
		if pair.Key != o.Key || !pair.Value.Equal(o.Value) {
			return false
		}
	}
	return true
}

// resolveIndex translates a possibly-negative index (counting from the
// end) into a non-negative offset, reporting whether it lies within
// [0, length).
func resolveIndex(index, length int) (int, bool) {
	if index < 0 {
		index += length
	}
	if index < 0 || index >= length {
		return 0, false
	}
	return index, true
}
