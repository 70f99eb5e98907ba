package event

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/louisbranch/playtally/internal/campaign/domain"
)

// Verb identifies the mutation an event applies to its key.
type Verb string

const (
	// VerbReplace sets a string or number value outright.
	VerbReplace Verb = "replace"
	// VerbIncrease adds an amount to a number value.
	VerbIncrease Verb = "increase"
	// VerbDecrease subtracts an amount from a number value.
	VerbDecrease Verb = "decrease"
	// VerbAdd unions values into a list or increments counted items.
	VerbAdd Verb = "add"
	// VerbRemove deletes values from a list or decrements counted items.
	VerbRemove Verb = "remove"
)

// Payload is one decoded mutation instruction. The closed set of variants
// below covers every verb/key-type combination the journal recognizes;
// anything else decodes to nothing and replays as a no-op.
type Payload interface {
	// PayloadVerb returns the verb this variant encodes.
	PayloadVerb() Verb
}

// StringReplace sets a string key to a literal value.
type StringReplace struct {
	Value string
}

// NumberReplace sets a number key to a literal amount.
type NumberReplace struct {
	Amount float64
}

// NumberIncrease adds an amount to a number key (starting from 0 if unset).
type NumberIncrease struct {
	Amount float64
}

// NumberDecrease subtracts an amount from a number key (starting from 0 if unset).
type NumberDecrease struct {
	Amount float64
}

// ListAdd unions values into a list key without duplicates.
type ListAdd struct {
	Values []string
}

// ListRemove removes values from a list key if present.
type ListRemove struct {
	Values []string
}

// CountedItem pairs an item name with a quantity.
type CountedItem struct {
	Item     string `json:"item"`
	Quantity int64  `json:"quantity"`
}

// CountedListAdd increments counted items by their quantities.
type CountedListAdd struct {
	Items []CountedItem
}

// CountedListRemove decrements counted items, pruning counts at or below zero.
type CountedListRemove struct {
	Items []CountedItem
}

// PayloadVerb implements Payload.
func (StringReplace) PayloadVerb() Verb { return VerbReplace }

// PayloadVerb implements Payload.
func (NumberReplace) PayloadVerb() Verb { return VerbReplace }

// PayloadVerb implements Payload.
func (NumberIncrease) PayloadVerb() Verb { return VerbIncrease }

// PayloadVerb implements Payload.
func (NumberDecrease) PayloadVerb() Verb { return VerbDecrease }

// PayloadVerb implements Payload.
func (ListAdd) PayloadVerb() Verb { return VerbAdd }

// PayloadVerb implements Payload.
func (ListRemove) PayloadVerb() Verb { return VerbRemove }

// PayloadVerb implements Payload.
func (CountedListAdd) PayloadVerb() Verb { return VerbAdd }

// PayloadVerb implements Payload.
func (CountedListRemove) PayloadVerb() Verb { return VerbRemove }

// wirePayload is the verb-tagged JSON shape stored in the journal. Optional
// fields are pointers so a missing field is distinguishable from a zero one.
type wirePayload struct {
	Verb   string         `json:"verb"`
	Value  *string        `json:"value,omitempty"`
	Amount *float64       `json:"amount,omitempty"`
	Values *[]string      `json:"values,omitempty"`
	Items  *[]CountedItem `json:"items,omitempty"`
}

// EncodePayload serializes a payload variant to its journal JSON form.
func EncodePayload(payload Payload) ([]byte, error) {
	if payload == nil {
		return nil, fmt.Errorf("payload is required")
	}

	wire := wirePayload{Verb: string(payload.PayloadVerb())}
	switch p := payload.(type) {
	case StringReplace:
		wire.Value = &p.Value
	case NumberReplace:
		wire.Amount = &p.Amount
	case NumberIncrease:
		wire.Amount = &p.Amount
	case NumberDecrease:
		wire.Amount = &p.Amount
	case ListAdd:
		wire.Values = &p.Values
	case ListRemove:
		wire.Values = &p.Values
	case CountedListAdd:
		wire.Items = &p.Items
	case CountedListRemove:
		wire.Items = &p.Items
	default:
		return nil, fmt.Errorf("unsupported payload variant %T", payload)
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return data, nil
}

// AppliesTo reports whether the payload variant mutates values of the given
// key type.
func AppliesTo(keyType domain.KeyType, payload Payload) bool {
	switch payload.(type) {
	case StringReplace:
		return keyType == domain.KeyTypeString
	case NumberReplace, NumberIncrease, NumberDecrease:
		return keyType == domain.KeyTypeNumber
	case ListAdd, ListRemove:
		return keyType == domain.KeyTypeList
	case CountedListAdd, CountedListRemove:
		return keyType == domain.KeyTypeCountedList
	default:
		return false
	}
}

// DecodePayload parses raw journal JSON into the payload variant matching the
// key's type. The second return is false, never an error, when the verb is
// unknown, inapplicable to the key type, or required fields are missing: the
// journal may span schema drift and must stay replayable, so malformed
// instructions degrade to no-ops.
func DecodePayload(keyType domain.KeyType, raw []byte) (Payload, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var wire wirePayload
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, false
	}

	verb := Verb(strings.TrimSpace(wire.Verb))
	switch keyType {
	case domain.KeyTypeString:
		if verb == VerbReplace && wire.Value != nil {
			return StringReplace{Value: *wire.Value}, true
		}
	case domain.KeyTypeNumber:
		if wire.Amount == nil {
			return nil, false
		}
		switch verb {
		case VerbReplace:
			return NumberReplace{Amount: *wire.Amount}, true
		case VerbIncrease:
			return NumberIncrease{Amount: *wire.Amount}, true
		case VerbDecrease:
			return NumberDecrease{Amount: *wire.Amount}, true
		}
	case domain.KeyTypeList:
		if wire.Values == nil {
			return nil, false
		}
		values := cleanValues(*wire.Values)
		switch verb {
		case VerbAdd:
			return ListAdd{Values: values}, true
		case VerbRemove:
			return ListRemove{Values: values}, true
		}
	case domain.KeyTypeCountedList:
		if wire.Items == nil {
			return nil, false
		}
		items := cleanItems(*wire.Items)
		switch verb {
		case VerbAdd:
			return CountedListAdd{Items: items}, true
		case VerbRemove:
			return CountedListRemove{Items: items}, true
		}
	}
	return nil, false
}

// cleanValues drops blank strings while preserving order.
func cleanValues(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		cleaned = append(cleaned, value)
	}
	return cleaned
}

// cleanItems drops unnamed items and non-positive quantities while preserving order.
func cleanItems(items []CountedItem) []CountedItem {
	cleaned := make([]CountedItem, 0, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item.Item)
		if name == "" || item.Quantity <= 0 {
			continue
		}
		cleaned = append(cleaned, CountedItem{Item: name, Quantity: item.Quantity})
	}
	return cleaned
}
