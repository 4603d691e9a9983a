package solver

import "fmt"

type Status int

const (
	Running Status = iota
	Converged
	IterationLimitReached
	NumericalFailure
	InvalidInput
)

var statusNames = [...]string{
	Running:               "running",
	Converged:             "converged",
	IterationLimitReached: "iteration_limit_reached",
	NumericalFailure:      "numerical_failure",
	InvalidInput:          "invalid_input",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// Terminal reports whether s ends a run.
func (s Status) Terminal() bool { return s != Running }

func ParseStatus(name string) (Status, error) {
	for i, n := range statusNames {
		if n == name {
			return Status(i), nil
		}
	}
	return 0, fmt.Errorf("solver: unknown status %q", name)
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
