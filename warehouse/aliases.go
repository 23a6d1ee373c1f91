package warehouse

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultTeamAliases maps user-friendly team names to the Squad values
// stored in the warehouse
var defaultTeamAliases = map[string]string{
	"north carolina courage": "Courage",
	"nc courage":             "Courage",
	"courage":                "Courage",
	"chicago red stars":      "Red Stars",
	"red stars":              "Red Stars",
	"houston dash":           "Dash",
	"dash":                   "Dash",
	"orlando pride":          "Pride",
	"pride":                  "Pride",
	"portland thorns":        "Thorns",
	"thorns":                 "Thorns",
	"washington spirit":      "Spirit",
	"spirit":                 "Spirit",
	"gotham fc":              "Gotham FC",
	"gotham":                 "Gotham FC",
	"kansas city current":    "Current",
	"current":                "Current",
	"san diego wave":         "Wave",
	"wave":                   "Wave",
	"angel city":             "Angel City",
	"racing louisville":      "Louisville",
	"louisville":             "Louisville",
	"seattle reign":          "Reign",
	"reign":                  "Reign",
	"utah royals":            "Royals",
	"royals":                 "Royals",
	"bay fc":                 "Bay FC",
}

// AliasSet resolves user-supplied team names to canonical warehouse values
type AliasSet struct {
	aliases map[string]string
}

// NewAliasSet returns the built-in alias table
func NewAliasSet() *AliasSet {
	m := make(map[string]string, len(defaultTeamAliases))
	for k, v := range defaultTeamAliases {
		m[k] = v
	}
	return &AliasSet{aliases: m}
}

// LoadAliasFile merges aliases from a YAML file of the form
// "alias: Canonical Name" over the built-in table. A missing path leaves
// the defaults untouched.
func (a *AliasSet) LoadAliasFile(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read alias file: %w", err)
	}

	extra := map[string]string{}
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return fmt.Errorf("failed to parse alias file: %w", err)
	}

	for k, v := range extra {
		a.aliases[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return nil
}

// Normalize converts a user-friendly team name to the canonical Squad value.
// Unknown names pass through unchanged so the query can still match exact
// canonical values.
func (a *AliasSet) Normalize(team string) string {
	if team == "" {
		return team
	}
	if canonical, ok := a.aliases[strings.ToLower(strings.TrimSpace(team))]; ok {
		return canonical
	}
	return team
}
