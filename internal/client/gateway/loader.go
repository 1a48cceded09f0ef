package gateway

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/shopsphere/internal/netx"
)

// Loader checks once that the hosted checkout resource is reachable and
// remembers success. Failures are not cached, so a later Load retries.
type Loader struct {
	url    string
	client *http.Client

	mu     sync.Mutex
	loaded bool
}

func NewLoader(url string, client *http.Client) *Loader {
	return &Loader{url: url, client: client}
}

func (l *Loader) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.loaded {
		return nil
	}
	if err := netx.Probe(ctx, l.client, l.url); err != nil {
		return fmt.Errorf("load checkout %s: %w", l.url, err)
	}
	l.loaded = true
	return nil
}

func (l *Loader) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}
