package event

import (
	"testing"

	"github.com/louisbranch/playtally/internal/campaign/domain"
)

func TestEncodeDecodeNumberIncrease(t *testing.T) {
	data, err := EncodePayload(NumberIncrease{Amount: 100})
	if err != nil {
		t.Fatalf("EncodePayload returned error: %v", err)
	}

	payload, ok := DecodePayload(domain.KeyTypeNumber, data)
	if !ok {
		t.Fatal("expected payload to decode")
	}
	increase, ok := payload.(NumberIncrease)
	if !ok {
		t.Fatalf("payload = %T, want NumberIncrease", payload)
	}
	if increase.Amount != 100 {
		t.Fatalf("amount = %v, want 100", increase.Amount)
	}
}

func TestDecodeStringReplace(t *testing.T) {
	payload, ok := DecodePayload(domain.KeyTypeString, []byte(`{"verb":"replace","value":"Act 2"}`))
	if !ok {
		t.Fatal("expected payload to decode")
	}
	replace, ok := payload.(StringReplace)
	if !ok {
		t.Fatalf("payload = %T, want StringReplace", payload)
	}
	if replace.Value != "Act 2" {
		t.Fatalf("value = %q, want %q", replace.Value, "Act 2")
	}
}

func TestDecodeUnknownVerbIsNoop(t *testing.T) {
	if _, ok := DecodePayload(domain.KeyTypeNumber, []byte(`{"verb":"multiply","amount":2}`)); ok {
		t.Fatal("expected unknown verb to be rejected")
	}
}

func TestDecodeVerbInapplicableToTypeIsNoop(t *testing.T) {
	// increase is a number verb; a string key must ignore it.
	if _, ok := DecodePayload(domain.KeyTypeString, []byte(`{"verb":"increase","amount":3}`)); ok {
		t.Fatal("expected inapplicable verb to be rejected")
	}
	// replace is not a list verb.
	if _, ok := DecodePayload(domain.KeyTypeList, []byte(`{"verb":"replace","values":["a"]}`)); ok {
		t.Fatal("expected inapplicable verb to be rejected")
	}
}

func TestDecodeMissingFieldIsNoop(t *testing.T) {
	cases := []struct {
		keyType domain.KeyType
		raw     string
	}{
		{domain.KeyTypeString, `{"verb":"replace"}`},
		{domain.KeyTypeNumber, `{"verb":"increase"}`},
		{domain.KeyTypeList, `{"verb":"add"}`},
		{domain.KeyTypeCountedList, `{"verb":"remove"}`},
	}
	for _, tc := range cases {
		if _, ok := DecodePayload(tc.keyType, []byte(tc.raw)); ok {
			t.Fatalf("expected %s payload %s to be rejected", tc.keyType, tc.raw)
		}
	}
}

func TestDecodeMalformedJSONIsNoop(t *testing.T) {
	if _, ok := DecodePayload(domain.KeyTypeNumber, []byte(`{"verb":`)); ok {
		t.Fatal("expected malformed JSON to be rejected")
	}
	if _, ok := DecodePayload(domain.KeyTypeNumber, nil); ok {
		t.Fatal("expected empty payload to be rejected")
	}
}

func TestDecodeCountedListFiltersBadItems(t *testing.T) {
	raw := []byte(`{"verb":"add","items":[{"item":"Potion","quantity":2},{"item":"","quantity":1},{"item":"Coin","quantity":0}]}`)
	payload, ok := DecodePayload(domain.KeyTypeCountedList, raw)
	if !ok {
		t.Fatal("expected payload to decode")
	}
	add, ok := payload.(CountedListAdd)
	if !ok {
		t.Fatalf("payload = %T, want CountedListAdd", payload)
	}
	if len(add.Items) != 1 {
		t.Fatalf("item count = %d, want 1", len(add.Items))
	}
	if add.Items[0].Item != "Potion" || add.Items[0].Quantity != 2 {
		t.Fatalf("item = %+v", add.Items[0])
	}
}

func TestDecodeListFiltersBlankValues(t *testing.T) {
	payload, ok := DecodePayload(domain.KeyTypeList, []byte(`{"verb":"add","values":["Sword","  ",""]}`))
	if !ok {
		t.Fatal("expected payload to decode")
	}
	add := payload.(ListAdd)
	if len(add.Values) != 1 || add.Values[0] != "Sword" {
		t.Fatalf("values = %v", add.Values)
	}
}

func TestEncodeRequiresPayload(t *testing.T) {
	if _, err := EncodePayload(nil); err == nil {
		t.Fatal("expected error for nil payload")
	}
}
