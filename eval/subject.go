// Package eval walks a requirement AST against a host-provided Subject,
// producing an Evaluation tree isomorphic to the AST. It
// never panics on subject-data shape mismatches: an unexpected value type or
// an absent key becomes an unsatisfied leaf with an explanation, not an
// error. Host-interface failures (a file that cannot be read, an error from
// CheckValidity) are also recorded as unsatisfied leaves whose explanation
// carries the failure; Evaluate itself returns no error.
package eval

// Value is the dynamic type of an Info/Entitlement value: one of string,
// int64, float64, bool, time.Time, []byte, []Value, or map[string]Value.
// Go has no closed sum type for this, so the boundary is enforced by type
// assertion in matchEval rather than by the type system.
type Value = any

// Subject is the host's view of a signed artifact. Every accessor returns
// ok=false when the corresponding data is simply not present on the
// artifact (not an error condition).
type Subject interface {
	Identifier() (string, bool)
	InfoDict() (map[string]Value, bool)
	Entitlements() (map[string]Value, bool)
	CodeDirectoryHash() ([]byte, bool)
	CertificateChain() ([]Certificate, bool) // leaf-first: chain[0] is the leaf
	CheckValidity(requirementText string) (ValidityResult, error)
}

// Certificate is one certificate in a Subject's chain.
type Certificate interface {
	RawDER() []byte
	Field(name string) (string, bool) // name is one of CN, C, D, L, O, OU, STREET
	HasOID(oid string) bool
}

// ValidityResult is the outcome of Subject.CheckValidity, used only for the
// WholeApple and Trusted certificate forms, which depend on platform trust
// databases this core cannot replicate.
type ValidityResult int

const (
	ValidityOK ValidityResult = iota
	ValidityRequirementFailed
)
