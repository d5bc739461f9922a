package valueobjects

import "fmt"

type MannequinPreference string

const (
	MannequinWoman   MannequinPreference = "Woman"
	MannequinMan     MannequinPreference = "Man"
	MannequinNeutral MannequinPreference = "Neutral"
)

func ParseMannequinPreference(s string) (MannequinPreference, error) {
	switch p := MannequinPreference(s); p {
	case MannequinWoman, MannequinMan, MannequinNeutral:
		return p, nil
	default:
		return "", fmt.Errorf("mannequin preference must be one of Woman, Man, Neutral, got %q", s)
	}
}

// Figure describes the mannequin in prompt text.
func (p MannequinPreference) Figure() string {
	switch p {
	case MannequinWoman:
		return "female mannequin"
	case MannequinMan:
		return "male mannequin"
	default:
		return "gender-neutral mannequin"
	}
}
