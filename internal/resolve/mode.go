package resolve

//go:generate go tool stringer -type=AccessMode -output=mode_string.go

// AccessMode is the borrow mode of a field within one view.
type AccessMode int

const (
	// Shared grants read-only access; many shared borrows may coexist.
	Shared AccessMode = iota
	// Exclusive grants read-write access; at most one may be live.
	Exclusive
)
