package cli

import "fmt"

type invalidIDError struct {
	raw string
}

func (e invalidIDError) Error() string {
	return fmt.Sprintf("invalid task id: %q", e.raw)
}

func errInvalidID(raw string) error {
	return invalidIDError{raw: raw}
}
