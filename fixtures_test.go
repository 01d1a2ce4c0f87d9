package codable_test

import (
	codable "github.com/codablekit/codable"
)

// item and record model the typical consumer side of the framework: plain
// structs describing their own shape through container calls.

type item struct {
	Name  string
	Price float64
}

var (
	keyName  = codable.Key("name")
	keyPrice = codable.Key("price")
	itemKeys = codable.MustCatalog(keyName, keyPrice)
)

func (i item) EncodeValue(enc *codable.Encoder) error {
	c, err := enc.Keyed(itemKeys)
	if err != nil {
		return err
	}
	if err := c.EncodeString(keyName, i.Name); err != nil {
		return err
	}
	return c.EncodeFloat(keyPrice, i.Price)
}

func (i *item) DecodeValue(dec *codable.Decoder) error {
	c, err := dec.Keyed(itemKeys)
	if err != nil {
		return err
	}
	if i.Name, err = c.DecodeString(keyName); err != nil {
		return err
	}
	i.Price, err = c.DecodeFloat(keyPrice)
	return err
}

type record struct {
	ID    string
	Items []item
	Note  *string
}

var (
	keyID      = codable.Key("id")
	keyItems   = codable.Key("items")
	keyNote    = codable.Key("note")
	recordKeys = codable.MustCatalog(keyID, keyItems, keyNote)
)

func (r record) EncodeValue(enc *codable.Encoder) error {
	c, err := enc.Keyed(recordKeys)
	if err != nil {
		return err
	}
	if err := c.EncodeString(keyID, r.ID); err != nil {
		return err
	}
	u, err := c.NestedUnkeyed(keyItems)
	if err != nil {
		return err
	}
	for _, it := range r.Items {
		if err := u.Encode(it); err != nil {
			return err
		}
	}
	return c.EncodeStringIfPresent(keyNote, r.Note)
}

func (r *record) DecodeValue(dec *codable.Decoder) error {
	c, err := dec.Keyed(recordKeys)
	if err != nil {
		return err
	}
	if r.ID, err = c.DecodeString(keyID); err != nil {
		return err
	}
	u, err := c.NestedUnkeyed(keyItems)
	if err != nil {
		return err
	}
	r.Items = make([]item, 0, u.Count())
	for !u.IsAtEnd() {
		var it item
		if err := u.Decode(&it); err != nil {
			return err
		}
		r.Items = append(r.Items, it)
	}
	r.Note, err = c.DecodeStringIfPresent(keyNote)
	return err
}

func strptr(s string) *string { return &s }
