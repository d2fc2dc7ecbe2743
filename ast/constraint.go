package ast

import "github.com/trilemma-dev/Required-sub000/token"

// Identifier is `identifier <id>` or `identifier = <id>`.
type Identifier struct {
	Constant string
	Explicit bool // true for `identifier = x`, false for `identifier x`
	Rng      token.Range
}

func (n *Identifier) Range() token.Range { return n.Rng }
func (*Identifier) requirementNode()     {}

// Info is `info[key] <match>`.
type Info struct {
	Key   string
	Match MatchExpr
	Rng   token.Range
}

func (n *Info) Range() token.Range { return n.Rng }
func (*Info) requirementNode()     {}

// Entitlement is `entitlement[key] <match>`.
type Entitlement struct {
	Key   string
	Match MatchExpr
	Rng   token.Range
}

func (n *Entitlement) Range() token.Range { return n.Rng }
func (*Entitlement) requirementNode()     {}

// CodeDirectoryHash is `cdhash H"..."` or `cdhash <path>`.
type CodeDirectoryHash struct {
	IsFilePath   bool
	HashConstant string // lower-cased hex digits; valid when !IsFilePath
	FilePath     string // valid when IsFilePath
	Rng          token.Range
}

func (n *CodeDirectoryHash) Range() token.Range { return n.Rng }
func (*CodeDirectoryHash) requirementNode()     {}

// CertificateKind discriminates the seven shapes a Certificate constraint
// can take.
type CertificateKind int

const (
	// CertWholeApple is `anchor apple`.
	CertWholeApple CertificateKind = iota
	// CertWholeAppleGeneric is `anchor apple generic`.
	CertWholeAppleGeneric
	// CertWholeHashConstant is `<position> = H"..."`.
	CertWholeHashConstant
	// CertWholeHashFilePath is `<position> = <path>`.
	CertWholeHashFilePath
	// CertElement is `<position>[key] <match>`.
	CertElement
	// CertElementImplicitExists is `<position>[key]` with no match
	// expression, implying `exists`.
	CertElementImplicitExists
	// CertTrusted is `<position> trusted`.
	CertTrusted
)

// Certificate is a constraint over a certificate in the subject's chain, or
// (for CertWholeApple/CertWholeAppleGeneric/CertTrusted at the Anchor
// position) over the chain's root of trust as a whole.
type Certificate struct {
	Kind CertificateKind

	// Position is valid for every Kind except CertWholeApple and
	// CertWholeAppleGeneric, which never carry a position of their own —
	// they are recognized only when the opening keyword was literally
	// `anchor`.
	Position CertificatePosition

	HashConstant string    // CertWholeHashConstant: lower-cased hex digits
	FilePath     string    // CertWholeHashFilePath: file path
	ElementKey   string    // CertElement / CertElementImplicitExists
	Match        MatchExpr // CertElement

	Rng token.Range
}

func (n *Certificate) Range() token.Range { return n.Rng }
func (*Certificate) requirementNode()     {}
