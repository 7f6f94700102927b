package form

import (
	"fmt"

	"github.com/maauso/formrelay/internal/webhook"
)

// Compile-time check that Contact implements Form.
var _ Form = (*Contact)(nil)

// Contact is a contact message form. Text fields are forwarded verbatim.
type Contact struct {
	Name    string `json:"name" validate:"required,hastext"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,hastext,max=4000"`
}

// Kind implements Form.
func (c *Contact) Kind() Kind { return KindContact }

// Prefix implements Form.
func (c *Contact) Prefix() string { return "CM" }

// Payload implements Form.
func (c *Contact) Payload(reference string) webhook.Message {
	return webhook.Message{
		Embeds: []webhook.Embed{{
			Title:       fmt.Sprintf("Message %s from \"%s\" (%s)", reference, c.Name, c.Email),
			Description: c.Message,
		}},
	}
}
