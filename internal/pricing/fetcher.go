package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// HeliconeURL is the price endpoint, with the provider appended as a query
// parameter. Exported so tests can override it via httptest.
var HeliconeURL = "https://www.helicone.ai/api/llm-costs"

// httpClient is a shared client with sensible timeouts for price fetches.
var httpClient = &http.Client{
	Timeout: 15 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:    5,
		IdleConnTimeout: 30 * time.Second,
	},
}

// FetchHelicone fetches the provider's price list and normalizes it into a
// Table with all rates stored per-1k.
func FetchHelicone(ctx context.Context, provider string) (*Table, error) {
	raw, err := fetchRaw(ctx, provider)
	if err != nil {
		return nil, err
	}
	return NormalizeHelicone(raw)
}

func fetchRaw(ctx context.Context, provider string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	url := fmt.Sprintf("%s?provider=%s", HeliconeURL, provider)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "codex-smi/0.1")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch helicone prices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("helicone prices: HTTP %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read helicone prices: %w", err)
	}
	return data, nil
}

// NormalizeHelicone converts the Helicone response into a Table. The
// endpoint has served several shapes over time: {"data": [...]},
// {"models": {...}}, a bare array, or a flat rates object.
func NormalizeHelicone(raw json.RawMessage) (*Table, error) {
	table := NewTable()

	var doc struct {
		Data   []json.RawMessage          `json:"data"`
		Models map[string]json.RawMessage `json:"models"`
	}
	if err := json.Unmarshal(raw, &doc); err == nil && (doc.Data != nil || doc.Models != nil) {
		for name, entry := range doc.Models {
			addHeliconeModel(table, name, entry)
		}
		for _, entry := range doc.Data {
			addHeliconeEntry(table, entry)
		}
	} else {
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err == nil {
			for _, entry := range list {
				addHeliconeEntry(table, entry)
			}
		} else {
			pr, err := parseRatesObject(raw)
			if err != nil {
				return nil, err
			}
			if !pr.empty() {
				fillRelated(&pr)
				table.Default = &pr
			}
		}
	}

	// Alias "-latest" spellings onto the base model names.
	for name := range table.Models {
		latest := name + "-latest"
		if _, exists := table.Models[latest]; !exists {
			table.Aliases[latest] = name
		}
	}
	return table, nil
}

func addHeliconeEntry(table *Table, entry json.RawMessage) {
	var meta struct {
		Model string `json:"model"`
		Name  string `json:"name"`
		ID    string `json:"id"`
	}
	if err := json.Unmarshal(entry, &meta); err != nil {
		return
	}
	name := meta.Model
	if name == "" {
		name = meta.Name
	}
	if name == "" {
		name = meta.ID
	}
	if name == "" {
		return
	}
	addHeliconeModel(table, name, entry)
}

func addHeliconeModel(table *Table, name string, entry json.RawMessage) {
	pr, err := parseRatesObject(entry)
	if err != nil || pr.empty() {
		return
	}
	fillRelated(&pr)
	table.Models[name] = pr
}

// fillRelated applies the provider's conventional fallbacks: cached reads
// price like input, reasoning prices like output.
func fillRelated(pr *PartialRates) {
	if pr.CachedInput == nil && pr.Input != nil {
		v := *pr.Input
		pr.CachedInput = &v
	}
	if pr.Reasoning == nil && pr.Output != nil {
		v := *pr.Output
		pr.Reasoning = &v
	}
}

// CachePath returns the on-disk location of the cached price list.
func CachePath(provider string) (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	dir := filepath.Join(base, "codex-smi")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}
	return filepath.Join(dir, fmt.Sprintf("prices.helicone.%s.json", provider)), nil
}

// LoadOrFetch returns the cached price table when it is fresher than ttl,
// otherwise fetches and rewrites the cache. A fetch failure with any cache
// on disk falls back to the stale copy.
func LoadOrFetch(ctx context.Context, provider string, ttl time.Duration, refresh bool) (*Table, error) {
	path, err := CachePath(provider)
	if err != nil {
		return nil, err
	}

	if !refresh {
		if info, err := os.Stat(path); err == nil && time.Since(info.ModTime()) <= ttl {
			if data, err := os.ReadFile(path); err == nil {
				if table, err := NormalizeHelicone(data); err == nil {
					return table, nil
				}
			}
		}
	}

	raw, err := fetchRaw(ctx, provider)
	if err != nil {
		if data, readErr := os.ReadFile(path); readErr == nil {
			if stale, normErr := NormalizeHelicone(data); normErr == nil {
				return stale, nil
			}
		}
		return nil, err
	}

	// Failure to persist the cache is not fatal.
	_ = os.WriteFile(path, raw, 0644)

	return NormalizeHelicone(raw)
}
