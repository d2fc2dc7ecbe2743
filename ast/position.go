package ast

import "github.com/trilemma-dev/Required-sub000/token"

// PositionKind discriminates the five ways a certificate constraint can
// address a certificate in the chain.
type PositionKind int

const (
	// PosRoot is `certificate root`, resolving to the last element of the
	// chain (the anchor).
	PosRoot PositionKind = iota
	// PosLeaf is `certificate leaf`, resolving to chain[0].
	PosLeaf
	// PosPositiveFromLeaf is `certificate <n>`, resolving to chain[n].
	PosPositiveFromLeaf
	// PosNegativeFromAnchor is `certificate -<n>`, resolving to
	// chain[len-n].
	PosNegativeFromAnchor
	// PosAnchor is the bare `anchor` keyword. It resolves identically to
	// PosRoot but is kept as a distinct Kind because `anchor apple` and
	// `anchor apple generic` are recognized only when the position is
	// literally PosAnchor, never PosRoot — `certificate root apple` does
	// not parse.
	PosAnchor
)

// CertificatePosition names a certificate within a leaf-first chain.
type CertificatePosition struct {
	Kind PositionKind
	N    uint32 // valid for PosPositiveFromLeaf / PosNegativeFromAnchor
	Rng  token.Range
}

func (p CertificatePosition) Range() token.Range { return p.Rng }
