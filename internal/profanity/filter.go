// Package profanity screens usernames against a remote word list.
// The list is fetched lazily, leet-expanded, and cached with a refresh
// interval. When the fetch fails a small embedded list takes over so
// screening stays fail-safe.
package profanity

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/kapu/chesslink/internal/obslog"
)

// DefaultListURL is the public word list the filter loads when no
// override is configured.
const DefaultListURL = "https://raw.githubusercontent.com/coffee-and-fun/google-profanity-words/refs/heads/main/data/en.txt"

var specialChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// leetPairs maps each letter to a character class covering its common
// digit substitution. Applied in order; no replacement text contains a
// letter replaced later.
var leetPairs = [][2]string{
	{"e", "[e3]"},
	{"g", "[g9]"},
	{"i", "[i1]"},
	{"o", "[o0]"},
	{"s", "[s5]"},
	{"t", "[t7]"},
}

type Filter struct {
	url          string
	http         *fasthttp.Client
	refreshEvery time.Duration

	mu        sync.RWMutex
	patterns  []*regexp.Regexp
	fetchedAt time.Time
}

type Option func(*Filter)

func WithRefreshInterval(d time.Duration) Option {
	return func(f *Filter) { f.refreshEvery = d }
}

func WithHTTPClient(c *fasthttp.Client) Option {
	return func(f *Filter) { f.http = c }
}

func New(listURL string, opts ...Option) *Filter {
	f := &Filter{
		url:          strings.TrimSpace(listURL),
		http:         &fasthttp.Client{ReadTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second},
		refreshEvery: 24 * time.Hour,
	}
	if f.url == "" {
		f.url = DefaultListURL
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Contains reports whether text starts with a listed word after
// stripping every non-alphanumeric character.
func (f *Filter) Contains(text string) bool {
	f.ensureList()

	cleaned := strings.ToLower(specialChars.ReplaceAllString(text, ""))

	f.mu.RLock()
	patterns := f.patterns
	f.mu.RUnlock()

	for _, p := range patterns {
		if p.MatchString(cleaned) {
			return true
		}
	}
	return false
}

func (f *Filter) ensureList() {
	f.mu.RLock()
	fresh := len(f.patterns) > 0 && time.Since(f.fetchedAt) < f.refreshEvery
	f.mu.RUnlock()
	if fresh {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.patterns) > 0 && time.Since(f.fetchedAt) < f.refreshEvery {
		return
	}

	body, err := f.fetch()
	if err != nil {
		obslog.L().Warn("profanity list fetch failed, using embedded fallback",
			zap.String("url", f.url), zap.Error(err))
		if len(f.patterns) == 0 {
			f.patterns = compileList(strings.Join(fallbackWords, "\n"))
		}
		// Keep retrying on the next call until a fetch succeeds.
		f.fetchedAt = time.Time{}
		return
	}

	f.patterns = compileList(body)
	f.fetchedAt = time.Now()
	obslog.L().Info("profanity list loaded", zap.Int("patterns", len(f.patterns)))
}

func (f *Filter) fetch() (string, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI(f.url)

	if err := f.http.Do(req, resp); err != nil {
		return "", fmt.Errorf("fetch word list: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return "", fmt.Errorf("fetch word list: status %d", resp.StatusCode())
	}
	return string(resp.Body()), nil
}

// compileList turns one word per line into anchored, leet-expanded
// patterns. Lines that fail to compile are skipped.
func compileList(raw string) []*regexp.Regexp {
	var out []*regexp.Regexp
	for _, line := range strings.Split(raw, "\n") {
		word := strings.ToLower(strings.TrimSpace(line))
		if word == "" {
			continue
		}
		for _, pair := range leetPairs {
			word = strings.ReplaceAll(word, pair[0], pair[1])
		}
		p, err := regexp.Compile("^(?:" + word + ")")
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}
