// Package completion talks to OpenAI-compatible chat completion endpoints.
// A Provider describes one endpoint; Client sends a single prompt to it and
// returns the first choice's content.
package completion

import "sort"

// Provider is everything that differs between completion backends.
type Provider struct {
	Name     string
	Endpoint string // API base, e.g. https://api.groq.com/openai/v1
	Model    string

	// AuthHeader builds the Authorization header value from the token.
	// Nil means Bearer.
	AuthHeader func(token string) string

	// SystemPrompt, when non-empty, is sent as a system message before the user text.
	SystemPrompt string
	// Temperature is omitted from the request when zero.
	Temperature float32
}

// Bearer is the default AuthHeader.
func Bearer(token string) string {
	return "Bearer " + token
}

// Authorization returns the header value for token.
func (p Provider) Authorization(token string) string {
	if p.AuthHeader == nil {
		return Bearer(token)
	}
	return p.AuthHeader(token)
}

// DefaultSystemPrompt is the system message the Groq preset sends.
const DefaultSystemPrompt = "You are a helpful assistant."

// Built-in presets.
var (
	OpenAI = Provider{
		Name:       "openai",
		Endpoint:   "https://api.openai.com/v1",
		Model:      "gpt-3.5-turbo",
		AuthHeader: Bearer,
	}

	Groq = Provider{
		Name:         "groq",
		Endpoint:     "https://api.groq.com/openai/v1",
		Model:        "llama3-70b-8192",
		AuthHeader:   Bearer,
		SystemPrompt: DefaultSystemPrompt,
		Temperature:  0.7,
	}
)

var presets = map[string]Provider{
	OpenAI.Name: OpenAI,
	Groq.Name:   Groq,
}

// Lookup returns the preset with the given name.
func Lookup(name string) (Provider, bool) {
	p, ok := presets[name]
	return p, ok
}

// Names returns the preset names, sorted.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
