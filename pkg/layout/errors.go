package layout

import "fmt"

// LabelNotFoundError indicates that no region in the layout carries the
// requested name.
type LabelNotFoundError struct {
	Label string
}

func (e *LabelNotFoundError) Error() string {
	return fmt.Sprintf("no region named %q in layout", e.Label)
}

// InvalidLayoutError indicates a layout file that cannot be used.
type InvalidLayoutError struct {
	Path   string
	Reason string
}

func (e *InvalidLayoutError) Error() string {
	return fmt.Sprintf("invalid layout file %s: %s", e.Path, e.Reason)
}
