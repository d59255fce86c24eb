// Package suggestions holds the built-in crypto image prompt templates.
package suggestions

import (
	"strings"

	"github.com/samber/lo"
)

// Entry is one prompt template shown in the suggestion list.
type Entry struct {
	Label         string `json:"label"`
	Description   string `json:"description"`
	ExamplePrompt string `json:"examplePrompt"`
}

var catalog = [...]Entry{
	{
		Label:         "Token Logo",
		Description:   "Generate a logo for a new cryptocurrency token.",
		ExamplePrompt: `Create a sleek, modern logo for a token called "SolX" with a blue and silver color scheme.`,
	},
	{
		Label:         "NFT Art",
		Description:   "Suggest an NFT artwork concept.",
		ExamplePrompt: "Design a pixel art NFT featuring a futuristic robot holding a Bitcoin.",
	},
	{
		Label:         "Crypto Meme",
		Description:   "Generate a meme image about crypto trends.",
		ExamplePrompt: `A cartoon of a rocket labeled "ETH" blasting off to the moon.`,
	},
	{
		Label:         "Trading Chart",
		Description:   "Visualize a crypto price chart or trading signal.",
		ExamplePrompt: "Render a candlestick chart showing a bullish breakout for Dogecoin.",
	},
	{
		Label:         "Wallet UI",
		Description:   "Suggest a UI mockup for a crypto wallet app.",
		ExamplePrompt: "Design a mobile wallet interface with a dark theme and neon highlights.",
	},
	{
		Label:         "Crypto Mascot",
		Description:   "Create a mascot character for a blockchain project.",
		ExamplePrompt: "Draw a friendly fox mascot for a DeFi platform.",
	},
}

// All returns the catalog in definition order.
func All() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog[:])
	return out
}

// Get returns the entries whose label, description or example prompt
// contains query, case-insensitively, in catalog order. An empty query
// returns the whole catalog. The result is never nil.
func Get(query string) []Entry {
	if query == "" {
		return All()
	}
	q := strings.ToLower(query)
	return lo.Filter(catalog[:], func(e Entry, _ int) bool {
		return strings.Contains(strings.ToLower(e.Label), q) ||
			strings.Contains(strings.ToLower(e.Description), q) ||
			strings.Contains(strings.ToLower(e.ExamplePrompt), q)
	})
}

// Icon returns the glyph shown next to a suggestion label.
func Icon(label string) string {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "logo"):
		return "🔷"
	case strings.Contains(l, "nft"):
		return "🖼️"
	case strings.Contains(l, "meme"):
		return "🤣"
	case strings.Contains(l, "chart"), strings.Contains(l, "trading"):
		return "📈"
	case strings.Contains(l, "wallet"), strings.Contains(l, "ui"):
		return "📱"
	case strings.Contains(l, "mascot"):
		return "🦊"
	}
	return "✨"
}

// AppendToPrompt adds example on its own line, or returns it as the whole
// prompt when prompt is empty.
func AppendToPrompt(prompt, example string) string {
	if prompt == "" {
		return example
	}
	return prompt + "\n" + example
}
