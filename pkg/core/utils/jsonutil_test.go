package utils

import "testing"

type quotePayload struct {
	Currency string  `json:"currency"`
	Price    float64 `json:"price"`
}

func TestDecodeTolerantStrict(t *testing.T) {
	var p quotePayload
	if err := DecodeTolerant([]byte(`{"currency":"USD","price":101.5}`), &p); err != nil {
		t.Fatalf("Strict JSON failed: %v", err)
	}
	if p.Currency != "USD" || p.Price != 101.5 {
		t.Errorf("Unexpected decode: %+v", p)
	}
}

func TestDecodeTolerantRepairs(t *testing.T) {
	// Single quotes and a trailing comma.
	var p quotePayload
	if err := DecodeTolerant([]byte(`{'currency': 'INR', 'price': 3500,}`), &p); err != nil {
		t.Fatalf("Repairable JSON failed: %v", err)
	}
	if p.Currency != "INR" || p.Price != 3500 {
		t.Errorf("Unexpected decode: %+v", p)
	}
}

func TestDecodeTolerantHJSON(t *testing.T) {
	// Unquoted keys with comments parse on the Hjson path.
	raw := `{
  # quote payload
  currency: USD
  price: 42
}`
	var p quotePayload
	if err := DecodeTolerant([]byte(raw), &p); err != nil {
		t.Fatalf("Hjson payload failed: %v", err)
	}
	if p.Currency != "USD" || p.Price != 42 {
		t.Errorf("Unexpected decode: %+v", p)
	}
}

func TestCleanMarkdown(t *testing.T) {
	in := "```markdown\n# Report\n```"
	if got := CleanMarkdown(in); got != "# Report" {
		t.Errorf("Expected stripped fence, got %q", got)
	}
}

func TestValidateMarkdown(t *testing.T) {
	if !ValidateMarkdown("# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n") {
		t.Error("Table markdown should validate")
	}
}

func TestMarkdownToHTML(t *testing.T) {
	html, err := MarkdownToHTML("# Title")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if html == "" {
		t.Error("Expected non-empty HTML")
	}
}
