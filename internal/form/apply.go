package form

import (
	"fmt"

	"github.com/maauso/formrelay/internal/webhook"
)

// Compile-time check that Application implements Form.
var _ Form = (*Application)(nil)

// Profession is a playable class.
type Profession string

// Professions accepted in applications.
const (
	ProfessionWarrior      Profession = "warrior"
	ProfessionGuardian     Profession = "guardian"
	ProfessionRevenant     Profession = "revenant"
	ProfessionRanger       Profession = "ranger"
	ProfessionThief        Profession = "thief"
	ProfessionEngineer     Profession = "engineer"
	ProfessionElementalist Profession = "elementalist"
	ProfessionNecromancer  Profession = "necromancer"
	ProfessionMesmer       Profession = "mesmer"
)

var professionNames = map[Profession]string{
	ProfessionWarrior:      "Warrior / Berserker / Spellbreaker",
	ProfessionGuardian:     "Guardian / Dragonhunter / Firebrand",
	ProfessionRevenant:     "Revenant / Herald / Renegade",
	ProfessionRanger:       "Ranger / Druid / Soulbeast",
	ProfessionThief:        "Thief / Daredevil / Deadeye",
	ProfessionEngineer:     "Engineer / Scrapper / Holosmith",
	ProfessionElementalist: "Elementalist / Tempest / Weaver",
	ProfessionNecromancer:  "Necromancer / Reaper / Scourge",
	ProfessionMesmer:       "Mesmer / Chronomancer / Mirage",
}

// String returns the display name of the profession and its specializations.
func (p Profession) String() string {
	if name, ok := professionNames[p]; ok {
		return name
	}
	return string(p)
}

// Application is a guild application form.
type Application struct {
	// Account is the ArenaNet account name.
	Account string `json:"account" validate:"required,arenanet"`
	// Discord is the applicant's Discord tag.
	Discord string `json:"discord" validate:"required,discord"`

	// Yes/no answers. Pointers so that a missing answer fails validation
	// while an explicit false is accepted.
	Age        *bool `json:"age" validate:"required"`
	Goals      *bool `json:"goals" validate:"required"`
	Times      *bool `json:"times" validate:"required"`
	Microphone *bool `json:"microphone" validate:"required"`
	Commands   *bool `json:"commands" validate:"required"`

	Main Profession `json:"main" validate:"required,oneof=warrior guardian revenant ranger thief engineer elementalist necromancer mesmer"`
	Alt  Profession `json:"alt" validate:"required,oneof=warrior guardian revenant ranger thief engineer elementalist necromancer mesmer"`

	// Message is free text from the applicant.
	Message string `json:"message" validate:"max=4000"`
}

// Kind implements Form.
func (a *Application) Kind() Kind { return KindApply }

// Prefix implements Form.
func (a *Application) Prefix() string { return "AP" }

// Payload implements Form.
func (a *Application) Payload(reference string) webhook.Message {
	title := fmt.Sprintf("Application %s from \"%s\" (%s)", reference, a.Account, a.Discord)

	description := fmt.Sprintf(`
Is age 18 or older: %s
Does understand visions and goals: %s
Does run with us in weekend: %s
Does have a working microphone: %s
Does have a willing to command: %s
Professions: %s & %s
**Messages**
`+"```%s```\n",
		yesNo(a.Age),
		yesNo(a.Goals),
		yesNo(a.Times),
		yesNo(a.Microphone),
		yesNo(a.Commands),
		a.Main,
		a.Alt,
		a.Message,
	)

	return webhook.Message{
		Embeds: []webhook.Embed{{
			Title:       title,
			Description: description,
		}},
	}
}

func yesNo(b *bool) string {
	if b != nil && *b {
		return "Yes"
	}
	return "No"
}
