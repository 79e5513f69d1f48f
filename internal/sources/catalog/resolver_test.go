package catalog

import (
	"testing"

	"github.com/lunaria/lunaria/internal/domain"
)

func testResolver() *Resolver {
	return NewResolver(File{
		Sites: []SiteProps{
			{
				Name:        "FaucetPay",
				URL:         "https://faucetpay.io/",
				Category:    "faucet",
				Description: "Micro-wallet and faucet hub",
				Tags:        []string{"wallet", "faucet"},
			},
			{Name: "Broken", URL: "://not-a-url"},
		},
	})
}

func TestResolveKnownHost(t *testing.T) {
	r := testResolver()

	tests := []struct {
		name   string
		rawURL string
	}{
		{name: "plain", rawURL: "https://faucetpay.io/"},
		{name: "www prefix", rawURL: "https://www.faucetpay.io/page"},
		{name: "mixed case host", rawURL: "https://FaucetPay.IO/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := r.Resolve(tt.rawURL)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if entry.Name != "FaucetPay" {
				t.Errorf("Name = %q, want FaucetPay", entry.Name)
			}
			if entry.Category != domain.CategoryFaucet {
				t.Errorf("Category = %q, want faucet", entry.Category)
			}
			if entry.URL != tt.rawURL {
				t.Errorf("URL = %q, want the raw input kept", entry.URL)
			}
			if len(entry.Tags) != 2 {
				t.Errorf("Tags = %v, want catalog tags", entry.Tags)
			}
		})
	}
}

func TestResolveUnknownHostFallsBack(t *testing.T) {
	r := testResolver()

	entry, err := r.Resolve("https://cool-faucet.example.com/claim")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if entry.Name != "Cool-faucet" {
		t.Errorf("Name = %q, want host-derived Cool-faucet", entry.Name)
	}
	if entry.Category != domain.CategoryOther {
		t.Errorf("Category = %q, want other", entry.Category)
	}
	if entry.Status != domain.StatusActive {
		t.Errorf("Status = %q, want normalized active", entry.Status)
	}
}

func TestResolveInvalidURL(t *testing.T) {
	r := testResolver()
	if _, err := r.Resolve("not a url at all"); err == nil {
		t.Error("Resolve() with invalid url should return error")
	}
}

func TestResolverSkipsBrokenCatalogRows(t *testing.T) {
	r := testResolver()
	if r.Size() != 1 {
		t.Errorf("Size() = %d, want 1 (broken row skipped)", r.Size())
	}
	if !r.Known("https://faucetpay.io/") {
		t.Error("Known(faucetpay.io) = false, want true")
	}
	if r.Known("https://unknown.example.com/") {
		t.Error("Known(unknown) = true, want false")
	}
}
