package datasource

import (
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

// newHTTPClient returns the default client unless a proxy or timeout is set.
// A zero timeout leaves the transport's own behaviour in place.
func newHTTPClient(proxy string, timeout time.Duration) (*http.Client, error) {
	if proxy == "" && timeout == 0 {
		return http.DefaultClient, nil
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxy != "" {
		proxyURL, err := url.Parse(proxy)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid proxy %q", proxy)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}, nil
}
