package teams

// Team is one roster entry. Mascot, abbreviation and logos may be absent.
type Team struct {
	School       string   `json:"school" yaml:"school"`
	Mascot       string   `json:"mascot,omitempty" yaml:"mascot"`
	Abbreviation string   `json:"abbreviation,omitempty" yaml:"abbreviation"`
	Color        string   `json:"color" yaml:"color"`
	Logos        []string `json:"logos,omitempty" yaml:"logos"`
	Conference   string   `json:"conference,omitempty" yaml:"conference"`
}

// Logo returns the primary logo URL or an empty string.
func (t Team) Logo() string {
	if len(t.Logos) == 0 {
		return ""
	}
	return t.Logos[0]
}
