package sf

import "strings"

// Member is a list member item or dictionary member value: an Item or
// an InnerList.
type Member interface {
	Canonical() string
	isMember()
}

// InnerList is an ordered sequence of items, itself carrying its own
// parameters (which attach to the list as a whole, not to its members).
type InnerList struct {
	items  []Item
	params Parameters
}

// NewInnerList builds an InnerList from items and parameters.
func NewInnerList(items []Item, params Parameters) InnerList {
	cp := make([]Item, len(items))
	copy(cp, items)
	return InnerList{items: cp, params: params}
}

// InnerListFromWire parses text as a standalone RFC 8941 inner list,
// including any trailing parameters.
func InnerListFromWire(text string) (InnerList, error) {
	p := &parser{input: []byte(text)}
	if err := p.start(); err != nil {
		return InnerList{}, err
	}
	list, err := p.parseInnerList()
	if err != nil {
		return InnerList{}, err
	}
	if p.pos != len(p.input) {
		return InnerList{}, syntaxError(p.pos, ErrUnrecognized, "unexpected trailing data")
	}
	return list, nil
}

// Len returns the number of items.
func (l InnerList) Len() int { return len(l.items) }

// Has reports whether index (possibly negative, counting from the end)
// refers to an existing item.
func (l InnerList) Has(index int) bool {
	_, ok := resolveIndex(index, len(l.items))
	return ok
}

// Get returns the item at index (possibly negative), or an
// *IndexOutOfRangeError.
func (l InnerList) Get(index int) (Item, error) {
	i, ok := resolveIndex(index, len(l.items))
	if !ok {
		return Item{}, &IndexOutOfRangeError{Index: index, Len: len(l.items)}
	}
	return l.items[i], nil
}

// Keys returns 0..Len()-1.
func (l InnerList) Keys() []int {
	keys := make([]int, len(l.items))
	for i := range l.items {
		keys[i] = i
	}
	return keys
}

// Items returns a copy of the member items in order.
func (l InnerList) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Parameters returns the list's own parameters.
func (l InnerList) Parameters() Parameters { return l.params }

// Push appends items to the end. With no items, l is returned unchanged.
func (l InnerList) Push(items ...Item) InnerList {
	if len(items) == 0 {
		return l
	}
	out := make([]Item, len(l.items), len(l.items)+len(items))
	copy(out, l.items)
	out = append(out, items...)
	return InnerList{items: out, params: l.params}
}

// Unshift prepends items to the start. With no items, l is returned
// unchanged.
func (l InnerList) Unshift(items ...Item) InnerList {
	if len(items) == 0 {
		return l
	}
	out := make([]Item, 0, len(l.items)+len(items))
	out = append(out, items...)
	out = append(out, l.items...)
	return InnerList{items: out, params: l.params}
}

// Insert inserts items at position i (possibly negative). i == Len() is
// equivalent to Push; i == 0 is equivalent to Unshift. Any other
// out-of-range i fails with *IndexOutOfRangeError.
func (l InnerList) Insert(i int, items ...Item) (InnerList, error) {
	pos, ok := resolveInsertIndex(i, len(l.items))
	if !ok {
		return InnerList{}, &IndexOutOfRangeError{Index: i, Len: len(l.items)}
	}
	if len(items) == 0 {
		return l, nil
	}
	out := make([]Item, 0, len(l.items)+len(items))
	out = append(out, l.items[:pos]...)
	out = append(out, items...)
	out = append(out, l.items[pos:]...)
	return InnerList{items: out, params: l.params}, nil
}

// Replace replaces the item at index i (possibly negative) with v, or
// fails with *IndexOutOfRangeError.
func (l InnerList) Replace(i int, v Item) (InnerList, error) {
	pos, ok := resolveIndex(i, len(l.items))
	if !ok {
		return InnerList{}, &IndexOutOfRangeError{Index: i, Len: len(l.items)}
	}
	out := make([]Item, len(l.items))
	copy(out, l.items)
	out[pos] = v
	return InnerList{items: out, params: l.params}, nil
}

// Remove drops the items at the given indices (possibly negative). With
// no indices, l is returned unchanged. Any out-of-range index fails with
// *IndexOutOfRangeError.
func (l InnerList) Remove(indices ...int) (InnerList, error) {
	if len(indices) == 0 {
		return l, nil
	}
	drop := make(map[int]bool, len(indices))
	for _, idx := range indices {
		pos, ok := resolveIndex(idx, len(l.items))
		if !ok {
			return InnerList{}, &IndexOutOfRangeError{Index: idx, Len: len(l.items)}
		}
		drop[pos] = true
	}
	if len(drop) == 0 {
		return l, nil
	}
	out := make([]Item, 0, len(l.items)-len(drop))
	for i, it := range l.items {
		if !drop[i] {
			out = append(out, it)
		}
	}
	return InnerList{items: out, params: l.params}, nil
}

// WithParameters returns a copy of l with its parameters replaced. If
// params canonicalizes identically to l's current parameters, l is
// returned unchanged.
func (l InnerList) WithParameters(params Parameters) InnerList {
	if l.params.Canonical() == params.Canonical() {
		return l
	}
	return InnerList{items: l.items, params: params}
}

// Parameter returns the bare value bound to key in l's parameters, or a
// *NotFoundError.
func (l InnerList) Parameter(key string) (BareValue, error) { return l.params.Get(key) }

// AddParameter returns a copy of l with key bound to v in its
// parameters.
func (l InnerList) AddParameter(key string, v BareValue) (InnerList, error) {
	p, err := l.params.Add(key, v)
	if err != nil {
		return InnerList{}, err
	}
	return l.WithParameters(p), nil
}

// AppendParameter returns a copy of l with key moved (or added) to the
// tail of its parameters.
func (l InnerList) AppendParameter(key string, v BareValue) (InnerList, error) {
	p, err := l.params.Append(key, v)
	if err != nil {
		return InnerList{}, err
	}
	return l.WithParameters(p), nil
}

// PrependParameter returns a copy of l with key moved (or added) to the
// head of its parameters.
func (l InnerList) PrependParameter(key string, v BareValue) (InnerList, error) {
	p, err := l.params.Prepend(key, v)
	if err != nil {
		return InnerList{}, err
	}
	return l.WithParameters(p), nil
}

// WithoutParameter returns a copy of l with the named parameters
// removed.
func (l InnerList) WithoutParameter(keys ...string) InnerList {
	return l.WithParameters(l.params.Remove(keys...))
}

// WithoutAnyParameter returns a copy of l with no parameters at all.
func (l InnerList) WithoutAnyParameter() InnerList {
	return l.WithParameters(EmptyParameters())
}

// Canonical serializes the inner list as `(item1 item2 ...)` followed by
// its canonical parameter list.
func (l InnerList) Canonical() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, it := range l.items {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(it.Canonical())
	}
	b.WriteByte(')')
	b.WriteString(l.params.Canonical())
	return b.String()
}

func (l InnerList) String() string { return l.Canonical() }

// Equal reports whether two inner lists have equal items, in order, and
// equal parameters.
func (l InnerList) Equal(other InnerList) bool {
	if len(l.items) != len(other.items) || !l.params.Equal(other.params) {
		return false
	}
	for i, it := range l.items {
		if !it.Equal(other.items[i]) {
			return false
		}
	}
	return true
}

func (InnerList) isMember() {}

// OuterList is the top-level list variant: an ordered sequence whose
// members are each either an Item or an InnerList.
type OuterList struct {
	members []Member
}

// NewOuterList builds an OuterList from members.
func NewOuterList(members ...Member) OuterList {
	out := make([]Member, len(members))
	copy(out, members)
	return OuterList{members: out}
}

// OuterListFromWire parses text as a standalone RFC 8941 list.
func OuterListFromWire(text string, opts ...ParseOption) (OuterList, error) {
	return ParseList(text, opts...)
}

// Len returns the number of members.
func (l OuterList) Len() int { return len(l.members) }

// Has reports whether index (possibly negative) refers to an existing
// member.
func (l OuterList) Has(index int) bool {
	_, ok := resolveIndex(index, len(l.members))
	return ok
}

// Get returns the member at index (possibly negative), or an
// *IndexOutOfRangeError.
func (l OuterList) Get(index int) (Member, error) {
	i, ok := resolveIndex(index, len(l.members))
	if !ok {
		return nil, &IndexOutOfRangeError{Index: index, Len: len(l.members)}
	}
	return l.members[i], nil
}

// Keys returns 0..Len()-1.
func (l OuterList) Keys() []int {
	keys := make([]int, len(l.members))
	for i := range l.members {
		keys[i] = i
	}
	return keys
}

// Members returns a copy of the member slice in order.
func (l OuterList) Members() []Member {
	out := make([]Member, len(l.members))
	copy(out, l.members)
	return out
}

// Push appends members to the end. With none given, l is returned
// unchanged.
func (l OuterList) Push(members ...Member) OuterList {
	if len(members) == 0 {
		return l
	}
	out := make([]Member, len(l.members), len(l.members)+len(members))
	copy(out, l.members)
	out = append(out, members...)
	return OuterList{members: out}
}

// Unshift prepends members to the start. With none given, l is returned
// unchanged.
func (l OuterList) Unshift(members ...Member) OuterList {
	if len(members) == 0 {
		return l
	}
	out := make([]Member, 0, len(l.members)+len(members))
	out = append(out, members...)
	out = append(out, l.members...)
	return OuterList{members: out}
}

// Insert inserts members at position i (possibly negative). i == Len()
// is equivalent to Push; i == 0 is equivalent to Unshift. Any other
// out-of-range i fails with *IndexOutOfRangeError.
func (l OuterList) Insert(i int, members ...Member) (OuterList, error) {
	pos, ok := resolveInsertIndex(i, len(l.members))
	if !ok {
		return OuterList{}, &IndexOutOfRangeError{Index: i, Len: len(l.members)}
	}
	if len(members) == 0 {
		return l, nil
	}
	out := make([]Member, 0, len(l.members)+len(members))
	out = append(out, l.members[:pos]...)
	out = append(out, members...)
	out = append(out, l.members[pos:]...)
	return OuterList{members: out}, nil
}

// Replace replaces the member at index i (possibly negative) with v, or
// fails with *IndexOutOfRangeError.
func (l OuterList) Replace(i int, v Member) (OuterList, error) {
	pos, ok := resolveIndex(i, len(l.members))
	if !ok {
		return OuterList{}, &IndexOutOfRangeError{Index: i, Len: len(l.members)}
	}
	out := make([]Member, len(l.members))
	copy(out, l.members)
	out[pos] = v
	return OuterList{members: out}, nil
}

// Remove drops the members at the given indices (possibly negative).
// With no indices, l is returned unchanged.
func (l OuterList) Remove(indices ...int) (OuterList, error) {
	if len(indices) == 0 {
		return l, nil
	}
	drop := make(map[int]bool, len(indices))
	for _, idx := range indices {
		pos, ok := resolveIndex(idx, len(l.members))
		if !ok {
			return OuterList{}, &IndexOutOfRangeError{Index: idx, Len: len(l.members)}
		}
		drop[pos] = true
	}
	out := make([]Member, 0, len(l.members)-len(drop))
	for i, m := range l.members {
		if !drop[i] {
			out = append(out, m)
		}
	}
	return OuterList{members: out}, nil
}

// Canonical serializes the list as its members joined by ", ".
func (l OuterList) Canonical() string {
	if len(l.members) == 0 {
		return ""
	}
	parts := make([]string, len(l.members))
	for i, m := range l.members {
		parts[i] = m.Canonical()
	}
	return strings.Join(parts, ", ")
}

func (l OuterList) String() string { return l.Canonical() }

// resolveInsertIndex translates a possibly-negative insertion position
// into a non-negative offset in [0, length], treating length itself as a
// valid "insert at end" position. A negative index counts from the end,
// so -1 inserts before the last element.
func resolveInsertIndex(index, length int) (int, bool) {
	if index < 0 {
		index += length
	}
	if index < 0 || index > length {
		return 0, false
	}
	return index, true
}
