package spelling

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientCheck(t *testing.T) {
	var gotText, gotLanguage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotText = r.PostFormValue("text")
		gotLanguage = r.PostFormValue("language")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"matches": [
				{
					"offset": 0,
					"length": 4,
					"replacements": [{"value": "check"}],
					"rule": {"id": "MORFOLOGIK_RULE_EN_US"}
				},
				{
					"offset": 5,
					"length": 4,
					"replacements": [],
					"rule": {"id": "STYLE_HINT"}
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "key"})
	matches, err := client.Check(context.Background(), "chek this")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	if gotText != "chek this" {
		t.Errorf("sent text = %q", gotText)
	}
	if gotLanguage != "en-US" {
		t.Errorf("language = %q", gotLanguage)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].OriginalText != "chek" || matches[0].SuggestedText != "check" {
		t.Errorf("match[0] = %+v", matches[0])
	}
	if !matches[0].HasReplacement {
		t.Error("replacement not flagged")
	}
	if matches[1].HasReplacement {
		t.Errorf("no-replacement match flagged: %+v", matches[1])
	}
	if matches[0].RuleID != "MORFOLOGIK_RULE_EN_US" {
		t.Errorf("rule id = %q", matches[0].RuleID)
	}
}

func TestClientCheckEmptyText(t *testing.T) {
	client := NewClient(ClientConfig{BaseURL: "http://unused.test"})
	matches, err := client.Check(context.Background(), "  !!  ")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("got %d matches for empty text", len(matches))
	}
}

func TestClientCheckHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	if _, err := client.Check(context.Background(), "hello"); err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestClientRequiresBaseURL(t *testing.T) {
	client := NewClient(ClientConfig{})
	if _, err := client.Check(context.Background(), "hello"); err == nil {
		t.Error("expected error without base url")
	}
}
