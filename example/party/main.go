// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/z5labs/utilityhub"
	"github.com/z5labs/utilityhub/schema"

	"github.com/charmbracelet/lipgloss"
)

// PartyConfig is a hilariously detailed party planner config.
type PartyConfig struct {
	PartyName string `config:"party_name" default:"boring_afternoon_tea"`
	Vibe      string `config:"vibe" default:"chill"`
	Snack     string `config:"snack" default:"plain_crackers"`
	DoorCode  string `config:"door_code,secret" default:"0000"`
}

const beachPartyYaml = `party_name: beach_bash
vibe: chaotic
snack: pina_colada
`

const gardenPartyToml = `party_name = "garden_party"
vibe = "sophisticated"
snack = "cucumber_sandwiches"
`

const ravePartyYaml = `party_name: rave_party
vibe: electric
snack: energy_drink
`

const mixerPartyYaml = `party_name: corporate_mixer
vibe: awkward
snack: stale_pretzels
`

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	noteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("221"))
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	s, err := schema.Of[PartyConfig]()
	if err != nil {
		return err
	}

	fmt.Println(bannerStyle.Render("The Ultimate Party Planning Journey"))

	party, md, err := utilityhub.Load[PartyConfig]()
	if err != nil {
		return err
	}
	fmt.Println(renderParty(s, "1. Defaults (the boring timeline)", party, md, ""))

	os.Setenv("SNACK", "jalapeno_poppers")
	party, md, err = utilityhub.Load[PartyConfig]()
	os.Unsetenv("SNACK")
	if err != nil {
		return err
	}
	fmt.Println(renderParty(s, "2. Environment override (SNACK=jalapeno_poppers)", party, md, ""))

	party, md, err = utilityhub.Load[PartyConfig](
		utilityhub.WithOverrides(map[string]any{
			"party_name": "champagne_soiree",
			"vibe":       "lit",
		}),
	)
	if err != nil {
		return err
	}
	fmt.Println(renderParty(s, "3. Runtime overrides (the boss has spoken)", party, md, ""))

	err = withTempFile("party_settings.yaml", beachPartyYaml, func(path string) error {
		party, md, err := utilityhub.Load[PartyConfig](utilityhub.WithConfigFile(path))
		if err != nil {
			return err
		}
		fmt.Println(renderParty(s, "4. Explicit YAML config file", party, md, ""))
		return nil
	})
	if err != nil {
		return err
	}

	err = withTempFile("party_settings.toml", gardenPartyToml, func(path string) error {
		party, md, err := utilityhub.Load[PartyConfig](utilityhub.WithConfigFile(path))
		if err != nil {
			return err
		}
		fmt.Println(renderParty(s, "5. Explicit TOML config file", party, md, ""))
		return nil
	})
	if err != nil {
		return err
	}

	err = withTempFile("party_settings.yaml", ravePartyYaml, func(path string) error {
		os.Setenv("VIBE", "nostalgic")
		defer os.Unsetenv("VIBE")

		party, md, err := utilityhub.Load[PartyConfig](utilityhub.WithConfigFile(path))
		if err != nil {
			return err
		}
		fmt.Println(renderParty(s, "6. Config file + environment override", party, md,
			"VIBE from env (nostalgic) beats the config file (electric)"))
		return nil
	})
	if err != nil {
		return err
	}

	err = withTempFile("party_settings.yaml", mixerPartyYaml, func(path string) error {
		party, md, err := utilityhub.Load[PartyConfig](
			utilityhub.WithConfigFile(path),
			utilityhub.WithOverrides(map[string]any{
				"snack": "lobster_thermidor",
			}),
		)
		if err != nil {
			return err
		}
		fmt.Println(renderParty(s, "7. Config file + runtime override", party, md,
			"snack from overrides (lobster_thermidor) beats the config file (stale_pretzels)"))
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Precedence (highest wins)"))
	fmt.Println(fieldStyle.Render("runtime > env > dotenv > project > defaults"))
	return nil
}

func renderParty(s *schema.Schema, title string, party *PartyConfig, md *utilityhub.Metadata, note string) string {
	lines := make([]string, 0, len(s.Fields())+2)
	lines = append(lines, titleStyle.Render(title))
	for _, f := range s.Fields() {
		v, ok := s.Value(party, f.Name)
		if !ok {
			continue
		}

		line := fieldStyle.Render(fmt.Sprintf("  %-12s %-24s", f.Name, f.Mask(v)))
		if origin, ok := md.Source(f.Name); ok {
			line += sourceStyle.Render(origin.String())
		}
		lines = append(lines, line)
	}
	if note != "" {
		lines = append(lines, noteStyle.Render("  "+note))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func withTempFile(name, content string, fn func(path string) error) error {
	dir, err := os.MkdirTemp("", "utilityhub-party")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, name)
	err = os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		return err
	}
	return fn(path)
}
