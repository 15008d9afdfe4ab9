package decode

import "testing"

type payload struct {
	Message   string `json:"message"`
	Recipient string `json:"recipient_username"`
	Count     int    `json:"count"`
}

func TestMapDecodesJSONTags(t *testing.T) {
	got, err := Map[payload](map[string]any{
		"message":            "hi",
		"recipient_username": "bob",
		"count":              "3", // weakly typed
		"unknown_field":      true,
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Message != "hi" || got.Recipient != "bob" || got.Count != 3 {
		t.Fatalf("decoded = %+v", got)
	}
}

func TestMapNil(t *testing.T) {
	if _, err := Map[payload](nil); err == nil {
		t.Fatal("nil map accepted")
	}
}
