package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/BALASANKARP/Edurecap/internal/logger"
	"github.com/BALASANKARP/Edurecap/internal/recording"
)

const (
	StageTranscribe = "transcribe"
	StageSummarize  = "summarize"
	StageFlashcards = "flashcards"
	StageChat       = "chat"
)

// Client talks to the remote processing service. Each call is a single
// request with no retry.
type Client struct {
	http   *resty.Client
	logger logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{http: c, logger: log}
}

// Transcribe uploads the audio at audioPath as <name>.m4a.
func (c *Client) Transcribe(ctx context.Context, audioPath, name string) (string, error) {
	if strings.TrimSpace(audioPath) == "" {
		return "", fmt.Errorf("%w: no audio selected", recording.ErrValidation)
	}
	if strings.TrimSpace(name) == "" {
		name = recording.Stem(audioPath)
	}

	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("%w: open audio: %v", recording.ErrValidation, err)
	}
	defer f.Close()

	req := c.http.R().
		SetContext(ctx).
		SetMultipartField("file", name+recording.Extension, "audio/m4a", f)

	return c.do(ctx, StageTranscribe, req, "/transcribe/", "transcription")
}

func (c *Client) Summarize(ctx context.Context, transcription string) (string, error) {
	return c.text(ctx, StageSummarize, "/summarize/", "summary", transcription)
}

func (c *Client) Flashcards(ctx context.Context, transcription string) (string, error) {
	return c.text(ctx, StageFlashcards, "/flashcards/", "flashcards", transcription)
}

// Ask sends one stateless question about paragraph to the chat endpoint.
func (c *Client) Ask(ctx context.Context, paragraph, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("%w: question is empty", recording.ErrValidation)
	}

	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"paragraph": paragraph, "question": question})

	return c.do(ctx, StageChat, req, "/chat", "answer")
}

func (c *Client) text(ctx context.Context, stage, path, field, transcription string) (string, error) {
	if strings.TrimSpace(transcription) == "" {
		return "", fmt.Errorf("%w: transcription is empty", recording.ErrValidation)
	}

	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "text/plain").
		SetBody(transcription)

	return c.do(ctx, stage, req, path, field)
}

func (c *Client) do(ctx context.Context, stage string, req *resty.Request, path, field string) (string, error) {
	start := time.Now()
	resp, err := req.Post(path)
	if err != nil {
		kind := KindTransport
		if isTimeout(err) {
			kind = KindTimeout
		}
		c.logger.Warn(ctx, "%s request failed after %s: %v", stage, time.Since(start), err)
		return "", &RemoteError{Stage: stage, Kind: kind, Err: err}
	}

	body := resp.Body()
	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		c.logger.Warn(ctx, "%s returned %d", stage, resp.StatusCode())
		return "", &RemoteError{
			Stage:      stage,
			Kind:       KindStatus,
			StatusCode: resp.StatusCode(),
			Detail:     parseDetail(body),
		}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", &RemoteError{Stage: stage, Kind: KindDecode, StatusCode: resp.StatusCode(), Err: fmt.Errorf("decode response: %w", err)}
	}
	raw, ok := fields[field]
	if !ok {
		return "", &RemoteError{Stage: stage, Kind: KindDecode, StatusCode: resp.StatusCode(), Err: fmt.Errorf("response has no %q field", field)}
	}
	var out string
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", &RemoteError{Stage: stage, Kind: KindDecode, StatusCode: resp.StatusCode(), Err: fmt.Errorf("decode %q: %w", field, err)}
	}

	c.logger.Debug(ctx, "%s completed in %s", stage, time.Since(start))
	return out, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
