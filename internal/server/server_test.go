package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BALASANKARP/Edurecap/internal/logger"
	"github.com/BALASANKARP/Edurecap/internal/pipeline"
)

type fakeTranscriber struct {
	text string
	err  error
	seen []byte
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", err
	}
	f.seen = data
	return f.text, f.err
}

type fakeGenerator struct {
	err     error
	passage string
}

func (f *fakeGenerator) Summarize(ctx context.Context, transcript string) (string, error) {
	return "summary of " + transcript, f.err
}

func (f *fakeGenerator) Flashcards(ctx context.Context, text string) (string, error) {
	return "cards for " + text, f.err
}

func (f *fakeGenerator) Answer(ctx context.Context, question, passage string) (string, error) {
	f.passage = passage
	return "answer", f.err
}

func newTestServer(t *testing.T, tr *fakeTranscriber, gen *fakeGenerator) (*Server, *httptest.Server) {
	t.Helper()
	s := New(":0", t.TempDir(), tr, gen, logger.NewNop())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func decode(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRoot(t *testing.T) {
	_, ts := newTestServer(t, &fakeTranscriber{}, &fakeGenerator{})
	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, map[string]string{"message": "Hello World"}, decode(t, resp))
}

func TestTranscribeUpload(t *testing.T) {
	tr := &fakeTranscriber{text: "hello"}
	s, ts := newTestServer(t, tr, &fakeGenerator{})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "Lecture1.m4a")
	require.NoError(t, err)
	part.Write([]byte("aac-bytes"))
	require.NoError(t, mw.Close())

	resp, err := http.Post(ts.URL+"/transcribe/", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "hello", decode(t, resp)["transcription"])
	assert.Equal(t, "aac-bytes", string(tr.seen))

	entries, err := os.ReadDir(s.tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "upload must be removed")
}

func TestTranscribeMissingFile(t *testing.T) {
	_, ts := newTestServer(t, &fakeTranscriber{}, &fakeGenerator{})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("other", "x")
	mw.Close()

	resp, err := http.Post(ts.URL+"/transcribe/", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "file is required", decode(t, resp)["detail"])
}

func TestSummarizeAndFlashcards(t *testing.T) {
	_, ts := newTestServer(t, &fakeTranscriber{}, &fakeGenerator{})

	resp, err := http.Post(ts.URL+"/summarize/", "text/plain", strings.NewReader("T1"))
	require.NoError(t, err)
	assert.Equal(t, "summary of T1", decode(t, resp)["summary"])

	resp, err = http.Post(ts.URL+"/flashcards/", "text/plain", strings.NewReader("T1"))
	require.NoError(t, err)
	assert.Equal(t, "cards for T1", decode(t, resp)["flashcards"])

	resp, err = http.Post(ts.URL+"/summarize/", "text/plain", strings.NewReader("  "))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.NotEmpty(t, decode(t, resp)["detail"])
}

func TestGeneratorFailureCarriesDetail(t *testing.T) {
	_, ts := newTestServer(t, &fakeTranscriber{}, &fakeGenerator{err: errors.New("all API keys exhausted")})

	resp, err := http.Post(ts.URL+"/flashcards/", "text/plain", strings.NewReader("T1"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "all API keys exhausted", decode(t, resp)["detail"])
}

func TestChatUsesMostSimilarParagraph(t *testing.T) {
	gen := &fakeGenerator{}
	_, ts := newTestServer(t, &fakeTranscriber{}, gen)

	post := func(paragraph, question string) *http.Response {
		data, _ := json.Marshal(chatRequest{Paragraph: paragraph, Question: question})
		resp, err := http.Post(ts.URL+"/chat", "application/json", bytes.NewReader(data))
		require.NoError(t, err)
		return resp
	}

	decode(t, post("Photosynthesis converts light into chemical energy in plants.", "What is photosynthesis?"))
	out := decode(t, post("The French revolution began in 1789.", "How do plants convert light energy?"))

	assert.Equal(t, "answer", out["answer"])
	assert.Equal(t, "How do plants convert light energy?", out["question"])
	assert.Contains(t, out["context"], "Photosynthesis")
	assert.Contains(t, gen.passage, "Photosynthesis")
	assert.Contains(t, out["explanation"], out["context"])

	resp := post("", " ")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()
}

func TestCORSPreflight(t *testing.T) {
	_, ts := newTestServer(t, &fakeTranscriber{}, &fakeGenerator{})

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/summarize/", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
}

// The client pipeline and the service must agree on the wire format.
func TestClientAgainstService(t *testing.T) {
	_, ts := newTestServer(t, &fakeTranscriber{text: "hello"}, &fakeGenerator{})
	client := pipeline.NewClient(ts.URL, 5*time.Second, logger.NewNop())
	ctx := context.Background()

	audio := filepath.Join(t.TempDir(), "a.m4a")
	require.NoError(t, os.WriteFile(audio, []byte("aac"), 0644))

	text, err := client.Transcribe(ctx, audio, "Lecture1")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	summary, err := client.Summarize(ctx, text)
	require.NoError(t, err)
	assert.Equal(t, "summary of hello", summary)

	cards, err := client.Flashcards(ctx, text)
	require.NoError(t, err)
	assert.Equal(t, "cards for hello", cards)

	answer, err := client.Ask(ctx, "hello world", "what?")
	require.NoError(t, err)
	assert.Equal(t, "answer", answer)
}

func TestClientSeesServiceDetail(t *testing.T) {
	_, ts := newTestServer(t, &fakeTranscriber{err: errors.New("bad audio")}, &fakeGenerator{})
	client := pipeline.NewClient(ts.URL, 5*time.Second, logger.NewNop())

	audio := filepath.Join(t.TempDir(), "a.m4a")
	require.NoError(t, os.WriteFile(audio, []byte("aac"), 0644))

	_, err := client.Transcribe(context.Background(), audio, "x")
	var re *pipeline.RemoteError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "bad audio", re.Detail)
}
