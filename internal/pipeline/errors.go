package pipeline

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/BALASANKARP/Edurecap/internal/recording"
)

type Kind int

const (
	KindTransport Kind = iota
	KindStatus
	KindTimeout
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindStatus:
		return "status"
	case KindTimeout:
		return "timeout"
	case KindDecode:
		return "decode"
	default:
		return "transport"
	}
}

// RemoteError is a failed round trip to the processing service.
type RemoteError struct {
	Stage      string
	Kind       Kind
	StatusCode int
	// Detail is the server-reported reason, when the server sent one.
	Detail string
	Err    error
}

// Message is the user-facing reason: the server detail when present, then
// the transport error, then the HTTP status text.
func (e *RemoteError) Message() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Err != nil:
		return e.Err.Error()
	case e.StatusCode != 0:
		if text := http.StatusText(e.StatusCode); text != "" {
			return text
		}
		return fmt.Sprintf("status %d", e.StatusCode)
	}
	return e.Kind.String() + " error"
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Message())
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func (e *RemoteError) Is(target error) bool {
	return target == recording.ErrRemote
}

// parseDetail extracts "detail" from an error body. FastAPI-style validation
// errors carry a list of {msg} objects instead of a string.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return strings.Trim(string(envelope.Detail), `"`)
}
