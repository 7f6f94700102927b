package form

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func validApplication() Application {
	return Application{
		Account:    "Rusty Flame.1234",
		Discord:    "rusty#0042",
		Age:        boolPtr(true),
		Goals:      boolPtr(true),
		Times:      boolPtr(false),
		Microphone: boolPtr(true),
		Commands:   boolPtr(false),
		Main:       ProfessionGuardian,
		Alt:        ProfessionMesmer,
		Message:    "Looking for a WvW home.",
	}
}

func validContact() Contact {
	return Contact{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "Do you recruit new players?",
	}
}

func TestKind_IsValid(t *testing.T) {
	assert.True(t, KindApply.IsValid())
	assert.True(t, KindContact.IsValid())
	assert.False(t, Kind("newsletter").IsValid())
}

func TestPrefixes(t *testing.T) {
	assert.Equal(t, "AP", (&Application{}).Prefix())
	assert.Equal(t, "CM", (&Contact{}).Prefix())
	assert.Equal(t, KindApply, (&Application{}).Kind())
	assert.Equal(t, KindContact, (&Contact{}).Kind())
}

func TestApplication_Validation(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		mutate  func(a *Application)
		wantErr bool
	}{
		{"valid", func(a *Application) {}, false},
		{"explicit false answers", func(a *Application) { a.Age = boolPtr(false) }, false},
		{"empty message", func(a *Application) { a.Message = "" }, false},
		{"missing answer", func(a *Application) { a.Goals = nil }, true},
		{"account without number", func(a *Application) { a.Account = "Rusty Flame" }, true},
		{"account too short", func(a *Application) { a.Account = "Ru.1234" }, true},
		{"account with three digits", func(a *Application) { a.Account = "Rusty Flame.123" }, true},
		{"account with accented letters", func(a *Application) { a.Account = "Jörg Müller.1234" }, false},
		{"account with non-latin letters", func(a *Application) { a.Account = "Лучник Ёж.0007" }, false},
		{"account with punctuation", func(a *Application) { a.Account = "Rusty-Flame.1234" }, true},
		{"discord without discriminator", func(a *Application) { a.Discord = "rusty" }, true},
		{"discord with short discriminator", func(a *Application) { a.Discord = "rusty#42" }, true},
		{"unknown profession", func(a *Application) { a.Main = "bard" }, true},
		{"missing alt", func(a *Application) { a.Alt = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validApplication()
			tt.mutate(&a)
			err := v.Struct(a)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestContact_Validation(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		mutate  func(c *Contact)
		wantErr bool
	}{
		{"valid", func(c *Contact) {}, false},
		{"missing name", func(c *Contact) { c.Name = "" }, true},
		{"missing email", func(c *Contact) { c.Email = "" }, true},
		{"malformed email", func(c *Contact) { c.Email = "jane.example.com" }, true},
		{"missing message", func(c *Contact) { c.Message = "" }, true},
		{"long name", func(c *Contact) { c.Name = strings.Repeat("J", 300) }, false},
		{"angle brackets in text", func(c *Contact) { c.Message = "a<b and c>d" }, false},
		{"markup-only message", func(c *Contact) { c.Message = "<b></b>" }, true},
		{"markup and whitespace message", func(c *Contact) { c.Message = "<p> </p>\n" }, true},
		{"markup-only name", func(c *Contact) { c.Name = "<i></i>" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validContact()
			tt.mutate(&c)
			err := v.Struct(c)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplication_Payload(t *testing.T) {
	a := validApplication()

	msg := a.Payload("#AP263S586G00")

	require.Len(t, msg.Embeds, 1)
	assert.Equal(t, `Application #AP263S586G00 from "Rusty Flame.1234" (rusty#0042)`, msg.Embeds[0].Title)

	want := "\nIs age 18 or older: Yes\n" +
		"Does understand visions and goals: Yes\n" +
		"Does run with us in weekend: No\n" +
		"Does have a working microphone: Yes\n" +
		"Does have a willing to command: No\n" +
		"Professions: Guardian / Dragonhunter / Firebrand & Mesmer / Chronomancer / Mirage\n" +
		"**Messages**\n" +
		"```Looking for a WvW home.```\n"
	assert.Equal(t, want, msg.Embeds[0].Description)
}

func TestContact_Payload(t *testing.T) {
	c := validContact()

	msg := c.Payload("#CM26000000FF")

	require.Len(t, msg.Embeds, 1)
	assert.Equal(t, `Message #CM26000000FF from "Jane Doe" (jane@example.com)`, msg.Embeds[0].Title)
	assert.Equal(t, "Do you recruit new players?", msg.Embeds[0].Description)
}

func TestPayload_ForwardsTextVerbatim(t *testing.T) {
	c := validContact()
	c.Name = "<b>Jane</b>"
	c.Message = "a<b and c>d & <not a tag but text>"

	msg := c.Payload("#CM26000000FF")

	assert.Equal(t, `Message #CM26000000FF from "<b>Jane</b>" (jane@example.com)`, msg.Embeds[0].Title)
	assert.Equal(t, "a<b and c>d & <not a tag but text>", msg.Embeds[0].Description)

	a := validApplication()
	a.Message = "x < y > z"
	assert.Contains(t, a.Payload("#AP263S586G00").Embeds[0].Description, "```x < y > z```")
}

func TestHasText(t *testing.T) {
	assert.True(t, hasText("hello"))
	assert.True(t, hasText("a<b and c>d"))
	assert.True(t, hasText("<b>bold</b>"))
	assert.False(t, hasText(""))
	assert.False(t, hasText("   "))
	assert.False(t, hasText("<b></b>"))
	assert.False(t, hasText("<script>alert(1)</script>"))
}

func TestProfession_String(t *testing.T) {
	assert.Equal(t, "Warrior / Berserker / Spellbreaker", ProfessionWarrior.String())
	assert.Equal(t, "Necromancer / Reaper / Scourge", ProfessionNecromancer.String())
	assert.Equal(t, "bard", Profession("bard").String())
	assert.Len(t, professionNames, 9)
}
