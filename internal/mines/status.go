package mines

import "fmt"

type Status uint8

const (
	Ongoing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// Over reports whether s is terminal.
func (s Status) Over() bool {
	return s == Won || s == Lost
}

func (s Status) MarshalText() ([]byte, error) {
	if s > Lost {
		return nil, fmt.Errorf("unknown status %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "ongoing":
		*s = Ongoing
	case "won":
		*s = Won
	case "lost":
		*s = Lost
	default:
		return fmt.Errorf("unknown status %q", text)
	}
	return nil
}
