package catalog

import (
	"strings"
	"testing"
)

func TestStatic(t *testing.T) {
	offers := Static()
	if len(offers) != 15 {
		t.Fatalf("got %d offers, want 15", len(offers))
	}

	seen := make(map[string]bool)
	for _, o := range offers {
		if o.ID == "" || o.Merchant == "" || o.Source == "" {
			t.Errorf("offer %+v has an empty required field", o)
		}
		if o.DiscountPercent <= 0 || o.DiscountPercent > 100 {
			t.Errorf("offer %s: discount %v outside (0, 100]", o.ID, o.DiscountPercent)
		}
		if seen[o.ID] {
			t.Errorf("duplicate offer ID %q", o.ID)
		}
		seen[o.ID] = true
	}
}

func TestStatic_ReturnsCopy(t *testing.T) {
	first := Static()
	first[0].DiscountPercent = 99

	second := Static()
	if second[0].DiscountPercent == 99 {
		t.Error("mutating a returned catalog leaked into the backing data")
	}
}

func TestByMerchant(t *testing.T) {
	offers := Static()

	tests := []struct {
		name     string
		merchant string
		wantID   string
		wantOK   bool
	}{
		{name: "canonical name", merchant: "Amazon", wantID: "gc_amazon", wantOK: true},
		{name: "case-insensitive", merchant: "STARBUCKS", wantID: "gc_starbucks", wantOK: true},
		{name: "trimmed", merchant: "  Target ", wantID: "gc_target", wantOK: true},
		{name: "no fuzzy matching here", merchant: "Amazon.com", wantOK: false},
		{name: "unknown", merchant: "Shell Gas Station", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ByMerchant(offers, tt.merchant)
			if ok != tt.wantOK {
				t.Fatalf("ByMerchant(%q) ok = %v, want %v", tt.merchant, ok, tt.wantOK)
			}
			if ok && got.ID != tt.wantID {
				t.Errorf("ByMerchant(%q) = %q, want %q", tt.merchant, got.ID, tt.wantID)
			}
		})
	}
}

func TestFromJSON(t *testing.T) {
	doc := `[
		{"id": "gc_acme", "merchant": "Acme", "discount_percent": 7.5, "available_amount": 250, "source": "Raise", "category": "Retail"},
		{"id": "gc_other", "merchant": "Other", "discount_percent": 5, "available_amount": 100, "source": "CardCash"}
	]`

	offers, err := FromJSON(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	if len(offers) != 2 {
		t.Fatalf("got %d offers, want 2", len(offers))
	}
	if offers[0].Merchant != "Acme" || offers[0].DiscountPercent != 7.5 {
		t.Errorf("first offer decoded as %+v", offers[0])
	}
	if offers[1].Category != "" {
		t.Errorf("optional category should be empty, got %q", offers[1].Category)
	}
}

func TestFromJSON_Malformed(t *testing.T) {
	if _, err := FromJSON(strings.NewReader(`{"not": "an array"`)); err == nil {
		t.Error("expected error for malformed JSON, got nil")
	}
}
