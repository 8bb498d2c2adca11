package completion

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	berrors "github.com/zhubert/banter/internal/errors"
	"github.com/zhubert/banter/internal/logger"
)

// capturedRequest is what the fake provider saw.
type capturedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

// newFakeProvider starts a server that records the request and replies with
// status and body. The returned provider points at it.
func newFakeProvider(t *testing.T, base Provider, status int, body string) (Provider, *capturedRequest) {
	t.Helper()
	got := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.Method = r.Method
		got.Path = r.URL.Path
		got.Auth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &got.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	base.Endpoint = srv.URL + "/v1"
	return base, got
}

func newTestClient(p Provider, token string) *Client {
	return NewClient(p, token, WithLogger(logger.Discard()))
}

const okBody = `{"choices":[{"message":{"role":"assistant","content":"Hi there"}}]}`

func TestComplete_GroqRequestShape(t *testing.T) {
	p, got := newFakeProvider(t, Groq, http.StatusOK, okBody)

	text, err := newTestClient(p, "tok-123").Complete(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if text != "Hi there" {
		t.Errorf("Complete() = %q, want %q", text, "Hi there")
	}

	if got.Method != http.MethodPost {
		t.Errorf("method = %s, want POST", got.Method)
	}
	if got.Path != "/v1/chat/completions" {
		t.Errorf("path = %s, want /v1/chat/completions", got.Path)
	}
	if got.Auth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", got.Auth, "Bearer tok-123")
	}
	if got.Body["model"] != "llama3-70b-8192" {
		t.Errorf("model = %v, want llama3-70b-8192", got.Body["model"])
	}
	if temp, ok := got.Body["temperature"].(float64); !ok || temp < 0.69 || temp > 0.71 {
		t.Errorf("temperature = %v, want 0.7", got.Body["temperature"])
	}

	msgs, ok := got.Body["messages"].([]any)
	if !ok || len(msgs) != 2 {
		t.Fatalf("messages = %v, want system + user", got.Body["messages"])
	}
	sys := msgs[0].(map[string]any)
	if sys["role"] != "system" || sys["content"] != DefaultSystemPrompt {
		t.Errorf("first message = %v, want system prompt", sys)
	}
	user := msgs[1].(map[string]any)
	if user["role"] != "user" || user["content"] != "Hello" {
		t.Errorf("second message = %v, want user Hello", user)
	}
}

func TestComplete_OpenAIRequestShape(t *testing.T) {
	p, got := newFakeProvider(t, OpenAI, http.StatusOK, okBody)

	if _, err := newTestClient(p, "sk-test").Complete(context.Background(), "Hello"); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	msgs, _ := got.Body["messages"].([]any)
	if len(msgs) != 1 {
		t.Fatalf("messages = %v, want only the user message", got.Body["messages"])
	}
	if _, present := got.Body["temperature"]; present {
		t.Error("temperature should be omitted when unset")
	}
	if got.Body["model"] != "gpt-3.5-turbo" {
		t.Errorf("model = %v, want gpt-3.5-turbo", got.Body["model"])
	}
}

func TestComplete_CustomAuthHeader(t *testing.T) {
	base := OpenAI
	base.AuthHeader = func(token string) string { return "Token " + token }
	p, got := newFakeProvider(t, base, http.StatusOK, okBody)

	if _, err := newTestClient(p, "abc").Complete(context.Background(), "Hello"); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got.Auth != "Token abc" {
		t.Errorf("Authorization = %q, want %q", got.Auth, "Token abc")
	}
}

func TestComplete_MissingContent(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no choices", `{"choices":[]}`},
		{"choices absent", `{}`},
		{"empty content", `{"choices":[{"message":{"role":"assistant","content":""}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newFakeProvider(t, Groq, http.StatusOK, tt.body)
			text, err := newTestClient(p, "tok").Complete(context.Background(), "Hello")
			if err != nil {
				t.Fatalf("Complete() error = %v, want nil", err)
			}
			if text != "" {
				t.Errorf("Complete() = %q, want empty", text)
			}
		})
	}
}

func TestComplete_Failures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantKind   berrors.Kind
		wantStatus int
	}{
		{"server error plain body", http.StatusInternalServerError, "boom", berrors.KindProtocol, 500},
		{"unauthorized api error", http.StatusUnauthorized,
			`{"error":{"message":"Invalid API Key","type":"invalid_request_error"}}`, berrors.KindProtocol, 401},
		{"rate limited", http.StatusTooManyRequests, `{}`, berrors.KindProtocol, 429},
		{"malformed success", http.StatusOK, "not json", berrors.KindMalformed, 0},
		{"empty success", http.StatusOK, "", berrors.KindMalformed, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newFakeProvider(t, Groq, tt.status, tt.body)
			_, err := newTestClient(p, "tok").Complete(context.Background(), "Hello")
			if err == nil {
				t.Fatal("Complete() should fail")
			}
			if got := berrors.GetKind(err); got != tt.wantKind {
				t.Errorf("kind = %v, want %v (err: %v)", got, tt.wantKind, err)
			}
			if got := berrors.StatusCode(err); got != tt.wantStatus {
				t.Errorf("status = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func TestComplete_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	p := Groq
	p.Endpoint = srv.URL + "/v1"
	srv.Close() // nothing listening any more

	_, err := newTestClient(p, "tok").Complete(context.Background(), "Hello")
	if !berrors.Is(err, berrors.KindTransport) {
		t.Errorf("kind = %v, want transport failure (err: %v)", berrors.GetKind(err), err)
	}
}

func TestComplete_ContextErrors(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	p := Groq
	p.Endpoint = srv.URL + "/v1"
	c := newTestClient(p, "tok")

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()
		_, err := c.Complete(ctx, "Hello")
		if !berrors.Is(err, berrors.KindCanceled) {
			t.Errorf("kind = %v, want canceled (err: %v)", berrors.GetKind(err), err)
		}
	})

	t.Run("deadline", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := c.Complete(ctx, "Hello")
		if !berrors.Is(err, berrors.KindTimeout) {
			t.Errorf("kind = %v, want timeout (err: %v)", berrors.GetKind(err), err)
		}
	})
}

func TestRequest_TrimsEndpointSlash(t *testing.T) {
	p, got := newFakeProvider(t, Groq, http.StatusOK, okBody)
	p.Endpoint += "/"

	if _, err := newTestClient(p, "tok").Complete(context.Background(), "Hello"); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got.Path != "/v1/chat/completions" {
		t.Errorf("path = %s, want /v1/chat/completions", got.Path)
	}
}

func TestClient_Provider(t *testing.T) {
	p := Groq
	p.Model = "custom-model"
	got := newTestClient(p, "tok").Provider()
	if got.Name != "groq" || got.Model != "custom-model" || got.Endpoint != Groq.Endpoint {
		t.Errorf("Provider() = %+v, want %+v", got, p)
	}
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		p, ok := Lookup(name)
		if !ok || p.Name != name {
			t.Errorf("Lookup(%q) = (%v, %v)", name, p.Name, ok)
		}
	}
	if _, ok := Lookup("anthropic"); ok {
		t.Error("Lookup of unknown provider should fail")
	}
	if got := Names(); len(got) != 2 || got[0] != "groq" || got[1] != "openai" {
		t.Errorf("Names() = %v, want [groq openai]", got)
	}
}

func TestAuthorization_DefaultsToBearer(t *testing.T) {
	p := Provider{Name: "custom"}
	if got := p.Authorization("x"); got != "Bearer x" {
		t.Errorf("Authorization() = %q, want %q", got, "Bearer x")
	}
}
