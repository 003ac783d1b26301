package orchestrator

import (
	"context"
	"regexp"
	"strings"

	// Packages
	log "github.com/mutablelogic/go-assistant/pkg/log"
	schema "github.com/mutablelogic/go-assistant/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Patterns matched against the lowercased utterance, in order. The first
// match wins.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`weather in ([^?]+)`),
	regexp.MustCompile(`weather for ([^?]+)`),
	regexp.MustCompile(`how's.*weather.*in ([^?]+)`),
	regexp.MustCompile(`what's.*weather.*in ([^?]+)`),
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ExtractCity returns the lowercased city named in an utterance, or false
// if no pattern matches
func ExtractCity(utterance string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(utterance))
	for _, pattern := range patterns {
		if match := pattern.FindStringSubmatch(lower); match != nil {
			if city := clean(match[1]); city != "" {
				return city, true
			}
		}
	}
	return "", false
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// match calls the weather tool for the city named in the utterance and
// renders the result
func (o *Orchestrator) match(ctx context.Context, utterance string) string {
	city, ok := ExtractCity(utterance)
	if !ok {
		return HelpMessage
	}

	invocation := schema.ToolInvocation{
		Name:      o.weather,
		Arguments: map[string]any{"city": city},
	}
	log.WithField(ctx, "tool", invocation.Name).Infof("calling tool with %v", invocation.Arguments)
	result, err := o.host.CallTool(ctx, invocation)
	if err != nil {
		return Apology(city, err)
	}

	return Render(city, result)
}

func clean(city string) string {
	return strings.TrimRight(strings.TrimSpace(city), " .,!")
}
