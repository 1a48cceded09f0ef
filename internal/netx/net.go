// Package netx contains small HTTP helpers that do not belong to the API
// client, such as checking that an external resource is reachable.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Probe issues a GET for url and reports an error unless the server
// answers 2xx. The body is drained and discarded.
func Probe(ctx context.Context, client *http.Client, url string) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("probe failed: %s", resp.Status)
	}
	return nil
}
