package transport

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/agentstation/dappregistry/pkg/constants"
	"github.com/agentstation/dappregistry/pkg/errors"
)

// maxErrorBody bounds how much of a failed response body ends up in an error.
const maxErrorBody = 512

// ReadBody reads and closes resp.Body. A status of 400 or above, or a body
// larger than constants.MaxResponseBytes, is returned as an *errors.APIError.
func ReadBody(resp *http.Response, source string) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, constants.MaxResponseBytes+1))
	if err != nil {
		return nil, errors.WrapResource("read", "response body", endpoint(resp), err)
	}
	if len(body) > constants.MaxResponseBytes {
		return nil, &errors.APIError{
			Source:     source,
			Endpoint:   endpoint(resp),
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("response body exceeds %d bytes", constants.MaxResponseBytes),
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		msg := strings.TrimSpace(string(body))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		if msg == "" {
			msg = resp.Status
		}
		return nil, &errors.APIError{
			Source:     source,
			Endpoint:   endpoint(resp),
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	}

	return body, nil
}

func endpoint(resp *http.Response) string {
	if resp.Request != nil && resp.Request.URL != nil {
		return resp.Request.URL.String()
	}
	return ""
}
