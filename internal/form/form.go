// Package form defines the accepted web forms, their validation rules and
// the notification each one produces.
package form

import (
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"github.com/maauso/formrelay/internal/webhook"
)

// Kind identifies a form type.
type Kind string

const (
	// KindApply is a guild application.
	KindApply Kind = "apply"
	// KindContact is a contact message.
	KindContact Kind = "contact"
)

// IsValid returns true if the kind is known.
func (k Kind) IsValid() bool {
	return k == KindApply || k == KindContact
}

// Form is a validated submission that can be turned into a notification.
type Form interface {
	// Kind returns the form type, used to route the notification.
	Kind() Kind
	// Prefix returns the two-character reference code tag for this form type.
	Prefix() string
	// Payload builds the notification message for the given reference code.
	Payload(reference string) webhook.Message
}

var (
	// Letter, digit and space classes are Unicode-aware so accented account
	// names are accepted.
	arenaNetAccount = regexp.MustCompile(`^[\p{L}\p{M}\p{N}_\s]{3,27}\.\p{Nd}{4}$`)
	discordAccount  = regexp.MustCompile(`^.*#[0-9]{4}$`)
)

// NewValidator returns a validator with the custom form tags registered:
//
//   - arenanet: ArenaNet account name, e.g. "Account Name.1234"
//   - discord:  Discord tag, e.g. "name#1234"
//   - hastext:  some visible text remains once markup is removed
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("arenanet", func(fl validator.FieldLevel) bool {
		return arenaNetAccount.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("discord", func(fl validator.FieldLevel) bool {
		return discordAccount.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("hastext", func(fl validator.FieldLevel) bool {
		return hasText(fl.Field().String())
	})
	return v
}

var (
	strictPolicy *bluemonday.Policy
	policyOnce   sync.Once
)

// hasText reports whether s still has non-blank content after all markup is
// stripped. It only gates validation; the text itself is forwarded unchanged.
func hasText(s string) bool {
	policyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(strictPolicy.Sanitize(s)) != ""
}
