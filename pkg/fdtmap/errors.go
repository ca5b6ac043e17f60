package fdtmap

import (
	"errors"
	"fmt"
)

// ErrShortHeader indicates a buffer too small to hold an FDTMAP header.
var ErrShortHeader = errors.New("fdtmap: buffer shorter than header")

// ErrSignatureNotFound indicates that the signature does not occur
// anywhere in the scanned image.
var ErrSignatureNotFound = errors.New("fdtmap: signature not found in image")

// ErrNoFlashmapNode indicates a valid FDT blob without a flashmap node.
var ErrNoFlashmapNode = errors.New("fdtmap: no node compatible with " + flashmapCompatible)

// NotFoundError indicates that signature matches were seen but none of
// them validated.
type NotFoundError struct {
	// Candidates is the number of signature matches rejected during
	// the scan.
	Candidates int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("fdtmap: no valid flashmap found (%d candidates rejected)", e.Candidates)
}

// RegionError indicates a flashmap node whose description of a region is
// unusable.
type RegionError struct {
	Node   string
	Reason string
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("fdtmap: region node %q: %s", e.Node, e.Reason)
}
