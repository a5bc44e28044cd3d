package models

// Masked is a string that redacts itself in logs and %v formatting.
// Call Expose to read the real value at the point it is actually needed
// (signing, request serialization).
type Masked struct {
	value string
}

// NewMasked wraps a sensitive string.
func NewMasked(v string) Masked {
	return Masked{value: v}
}

// Expose returns the underlying value.
func (m Masked) Expose() string {
	return m.value
}

// IsEmpty reports whether the wrapped value is empty.
func (m Masked) IsEmpty() bool {
	return m.value == ""
}

func (m Masked) String() string {
	return "*** REDACTED ***"
}
