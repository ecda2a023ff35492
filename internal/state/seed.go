package state

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseSeed parses URL query syntax ("monthly_target=2000&currency=EUR")
// into seed values. A leading "?" is allowed; the first value of a
// repeated key wins.
func ParseSeed(query string) (map[string]string, error) {
	query = strings.TrimPrefix(strings.TrimSpace(query), "?")
	if query == "" {
		return nil, nil
	}
	values, err := url.ParseQuery(query)
	if err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	seed := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			seed[k] = v[0]
		}
	}
	return seed, nil
}
