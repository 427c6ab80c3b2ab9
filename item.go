package sf

// Item is a bare value together with an (possibly empty) ordered
// parameter map.
type Item struct {
	value  BareValue
	params Parameters
}

// NewItem builds an Item from a bare value and its parameters.
func NewItem(v BareValue, params Parameters) Item {
	return Item{value: v, params: params}
}

// NewBareItem builds an Item with no parameters.
func NewBareItem(v BareValue) Item {
	return Item{value: v}
}

// ItemFromWire parses text as a standalone RFC 8941 item.
func ItemFromWire(text string, opts ...ParseOption) (Item, error) {
	return ParseItem(text, opts...)
}

// Value returns the item's bare value.
func (i Item) Value() BareValue { return i.value }

// Parameters returns the item's parameters.
func (i Item) Parameters() Parameters { return i.params }

// WithValue returns a copy of i with its bare value replaced.
func (i Item) WithValue(v BareValue) Item {
	return Item{value: v, params: i.params}
}

// WithParameters returns a copy of i with its parameters replaced. If
// params canonicalizes identically to i's current parameters, i is
// returned unchanged.
func (i Item) WithParameters(params Parameters) Item {
	if i.params.Canonical() == params.Canonical() {
		return i
	}
	return Item{value: i.value, params: params}
}

// Parameter returns the bare value bound to key in i's parameters, or a
// *NotFoundError.
func (i Item) Parameter(key string) (BareValue, error) {
	return i.params.Get(key)
}

// AddParameter returns a copy of i with key bound to v in its
// parameters (see Parameters.Add).
func (i Item) AddParameter(key string, v BareValue) (Item, error) {
	p, err := i.params.Add(key, v)
	if err != nil {
		return Item{}, err
	}
	return i.WithParameters(p), nil
}

// AppendParameter returns a copy of i with key moved (or added) to the
// tail of its parameters (see Parameters.Append).
func (i Item) AppendParameter(key string, v BareValue) (Item, error) {
	p, err := i.params.Append(key, v)
	if err != nil {
		return Item{}, err
	}
	return i.WithParameters(p), nil
}

// PrependParameter returns a copy of i with key moved (or added) to the
// head of its parameters (see Parameters.Prepend).
func (i Item) PrependParameter(key string, v BareValue) (Item, error) {
	p, err := i.params.Prepend(key, v)
	if err != nil {
		return Item{}, err
	}
	return i.WithParameters(p), nil
}

// WithoutParameter returns a copy of i with the named parameters
// removed. If none are present, i is returned unchanged.
func (i Item) WithoutParameter(keys ...string) Item {
	return i.WithParameters(i.params.Remove(keys...))
}

// WithoutAnyParameter returns a copy of i with no parameters at all.
func (i Item) WithoutAnyParameter() Item {
	return i.WithParameters(EmptyParameters())
}

// Canonical serializes the item as its bare value followed by its
// canonical parameter list.
func (i Item) Canonical() string {
	return i.value.Canonical() + i.params.Canonical()
}

func (i Item) String() string { return i.Canonical() }

// Equal reports whether two items have equal bare values and parameter
// sets.
func (i Item) Equal(other Item) bool {
	return i.value.Equal(other.value) && i.params.Equal(other.params)
}

func (Item) isMember() {}
