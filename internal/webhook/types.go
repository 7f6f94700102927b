// Package webhook delivers notification messages to a webhook endpoint.
package webhook

// Message is a Discord-compatible webhook message.
type Message struct {
	// Content is optional plain text shown above the embeds.
	Content string `json:"content,omitempty"`
	// Embeds are the rich message blocks.
	Embeds []Embed `json:"embeds"`
}

// Embed is a single rich message block.
type Embed struct {
	// Title is the embed headline.
	Title string `json:"title"`
	// Description is the embed body, rendered as markdown by Discord.
	Description string `json:"description,omitempty"`
}
