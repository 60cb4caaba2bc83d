package regulation

import "fmt"

// Tier is the relevance of a regulation for a profile. Lower values sort first.
type Tier int

const (
	// TierHigh means the regulation applies directly
	TierHigh Tier = iota
	// TierMedium means the regulation likely applies or applies in part
	TierMedium
	// TierLow means the regulation should be monitored
	TierLow
)

var tierNames = map[Tier]string{
	TierHigh:   "high",
	TierMedium: "medium",
	TierLow:    "low",
}

// String returns the lowercase tier name
func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}

	return fmt.Sprintf("tier(%d)", int(t))
}

// MarshalText encodes the tier by name
func (t Tier) MarshalText() ([]byte, error) {
	name, ok := tierNames[t]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTier, int(t))
	}

	return []byte(name), nil
}

// UnmarshalText decodes a tier name
func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

// ParseTier converts a tier name into a Tier
func ParseTier(name string) (Tier, error) {
	for tier, n := range tierNames {
		if n == name {
			return tier, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownTier, name)
}
