package catalogs

import (
	"encoding/json"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/agentstation/dappregistry/pkg/errors"
)

// Checksum hashes the JSON serialization of v. Two documents with equal
// content produce the same checksum.
func Checksum(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", errors.WrapParse("json", "checksum", err)
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16), nil
}
