package client

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidBaseURL marks a base URL that cannot be used to build a request.
// It indicates broken configuration, not a runtime condition.
var ErrInvalidBaseURL = errors.New("invalid base URL")

// commas are legal in a query component and the upstream expects "City,cc" verbatim.
var queryUnescaper = strings.NewReplacer("%2C", ",")

// BuildURL appends q=<location> and APPID=<apiKey>, in that order, to the query
// of baseURL. Any query already present on baseURL is kept ahead of them.
func BuildURL(baseURL, location, apiKey string) (string, error) {
	u, err := url.ParseRequestURI(strings.TrimSpace(baseURL))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q must include scheme and host", ErrInvalidBaseURL, baseURL)
	}

	query := u.RawQuery
	for _, param := range []string{
		"q=" + escapeQueryValue(location),
		"APPID=" + escapeQueryValue(apiKey),
	} {
		if query != "" {
			query += "&"
		}
		query += param
	}
	u.RawQuery = query
	return u.String(), nil
}

func escapeQueryValue(s string) string {
	return queryUnescaper.Replace(url.QueryEscape(s))
}
