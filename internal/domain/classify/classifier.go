// Package classify turns free-text vendor notifications into per-platform
// busy/calm verdicts.
package classify

import (
	"strings"

	"github.com/gigpulse/gigpulse/internal/domain/model"
)

// DefaultBusyPhrases is the lexicon of phrases indicating high demand.
var DefaultBusyPhrases = []string{"busy", "very busy", "dash now", "peak pay", "surge", "quest"}

// DefaultPlatformRoutes maps app-identifier substrings to platform labels.
var DefaultPlatformRoutes = map[string]string{
	"dash": model.PlatformDoorDash,
	"uber": model.PlatformUberEats,
}

// Classifier derives a platform-wide demand signal from notification text.
// It is stateless: the same notification always yields the same verdict.
type Classifier struct {
	phrases []string
	routes  map[string]string
}

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithBusyPhrases replaces the busy lexicon. Phrases are matched
// case-insensitively; empty entries are ignored.
func WithBusyPhrases(phrases []string) Option {
	return func(c *Classifier) {
		if len(phrases) == 0 {
			return
		}
		c.phrases = c.phrases[:0]
		for _, p := range phrases {
			p = strings.ToLower(strings.TrimSpace(p))
			if p != "" {
				c.phrases = append(c.phrases, p)
			}
		}
	}
}

// WithPlatformRoutes replaces the app-identifier routing table.
func WithPlatformRoutes(routes map[string]string) Option {
	return func(c *Classifier) {
		if len(routes) == 0 {
			return
		}
		c.routes = make(map[string]string, len(routes))
		for needle, platform := range routes {
			needle = strings.ToLower(strings.TrimSpace(needle))
			if needle != "" && platform != "" {
				c.routes[needle] = platform
			}
		}
	}
}

// New constructs a Classifier with the default lexicon and routing table.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		phrases: append([]string(nil), DefaultBusyPhrases...),
		routes:  DefaultPlatformRoutes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify resolves a notification to a platform verdict. The second return
// is false when the source app matches no routing entry; such events are
// expected steady-state noise, not errors.
func (c *Classifier) Classify(n model.Notification) (model.Verdict, bool) {
	platform, ok := c.route(n.SourceApp)
	if !ok {
		return model.Verdict{}, false
	}

	payload := strings.ToLower(n.Title + " " + n.Body)
	busy := false
	for _, phrase := range c.phrases {
		if strings.Contains(payload, phrase) {
			busy = true
			break
		}
	}

	return model.Verdict{Platform: platform, Busy: busy}, true
}

func (c *Classifier) route(sourceApp string) (string, bool) {
	app := strings.ToLower(sourceApp)
	for needle, platform := range c.routes {
		if strings.Contains(app, needle) {
			return platform, true
		}
	}
	return "", false
}
