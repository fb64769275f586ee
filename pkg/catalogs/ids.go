package catalogs

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/agentstation/dappregistry/pkg/errors"
)

// DeriveDappID derives a reverse-domain identifier from a dApp's canonical URL.
// "https://app.uniswap.org/swap" becomes "org.uniswap.app.swap".
func DeriveDappID(appURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(appURL))
	if err != nil {
		return "", errors.WrapParse("url", appURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.NewValidationError("appUrl", appURL, "scheme must be http or https")
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host == "" {
		return "", errors.NewValidationError("appUrl", appURL, "missing host")
	}

	labels := strings.Split(host, ".")
	slices.Reverse(labels)
	for _, seg := range strings.Split(u.Path, "/") {
		if seg = strings.ToLower(seg); seg != "" {
			labels = append(labels, seg)
		}
	}
	return strings.Join(labels, "."), nil
}

// DeriveDappIDs derives an identifier for every URL and fails on the first
// unparseable URL or on an identifier already derived from an earlier URL.
func DeriveDappIDs(appURLs []string) ([]string, error) {
	seen := make(map[string]string, len(appURLs))
	ids := make([]string, 0, len(appURLs))
	for _, u := range appURLs {
		id, err := DeriveDappID(u)
		if err != nil {
			return ids, err
		}
		if prev, ok := seen[id]; ok {
			return ids, errors.NewValidationError("appUrl", u, fmt.Sprintf("derives %s, already derived from %s", id, prev))
		}
		seen[id] = u
		ids = append(ids, id)
	}
	return ids, nil
}
