package catalog

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/lunaria/lunaria/internal/domain"
)

// Resolver matches raw URLs against the catalog by hostname.
type Resolver struct {
	byHost map[string]SiteProps
}

// NewResolver builds a resolver over a loaded catalog. Sites without
// a parseable URL are ignored.
func NewResolver(f File) *Resolver {
	byHost := make(map[string]SiteProps, len(f.Sites))
	for _, site := range f.Sites {
		host := hostOf(site.URL)
		if host == "" {
			continue
		}
		byHost[host] = site
	}
	return &Resolver{byHost: byHost}
}

// Resolve builds a prefilled entry for rawURL. Known hosts take
// name/category/image/description/tags from the catalog; unknown
// hosts fall back to a host-derived name and the "other" category.
func (r *Resolver) Resolve(rawURL string) (*domain.Entry, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Hostname() == "" {
		return nil, fmt.Errorf("invalid url %q", rawURL)
	}
	host := canonicalHost(parsed.Hostname())

	if site, ok := r.byHost[host]; ok {
		entry := &domain.Entry{
			Name:        site.Name,
			Category:    domain.ParseCategory(site.Category),
			URL:         rawURL,
			Description: site.Description,
			Tags:        append([]string(nil), site.Tags...),
			Image:       site.Image,
			CardColor:   site.CardColor,
		}
		entry.Normalize()
		return entry, nil
	}

	entry := &domain.Entry{
		Name:     nameFromHost(host),
		Category: domain.CategoryOther,
		URL:      rawURL,
	}
	entry.Normalize()
	return entry, nil
}

// Known reports whether the catalog knows the URL's host.
func (r *Resolver) Known(rawURL string) bool {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	_, ok := r.byHost[canonicalHost(parsed.Hostname())]
	return ok
}

// Size returns the number of catalog sites indexed.
func (r *Resolver) Size() int {
	return len(r.byHost)
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return canonicalHost(parsed.Hostname())
}

// canonicalHost lower-cases and strips the www prefix so
// "www.FaucetPay.io" and "faucetpay.io" land on the same catalog row.
func canonicalHost(host string) string {
	host = strings.ToLower(host)
	return strings.TrimPrefix(host, "www.")
}

// nameFromHost derives a display name from the first DNS label.
// Example: "cool-faucet.example.com" -> "Cool-faucet".
func nameFromHost(host string) string {
	label, _, _ := strings.Cut(host, ".")
	if label == "" {
		return host
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
