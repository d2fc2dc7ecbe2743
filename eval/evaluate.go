package eval

import (
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"os"
	"strings"

	"github.com/trilemma-dev/Required-sub000/ast"
	"github.com/trilemma-dev/Required-sub000/eval/numcompare"
)

// Evaluation mirrors the shape of the ast.Requirement it was produced from:
// one Evaluation per AST node, same child count and order.
type Evaluation struct {
	Satisfied   bool
	Node        ast.Requirement
	Children    []*Evaluation
	Explanation string // meaningful at unsatisfied leaves; compound/satisfied nodes use a fixed template
}

// Evaluate recursively evaluates req against subject. Both branches of an
// And/Or are always evaluated — evaluation is explanatory, not
// short-circuiting, so there is always something to explain on the
// un-taken side.
func Evaluate(req ast.Requirement, subject Subject) *Evaluation {
	switch n := req.(type) {
	case *ast.And:
		l := Evaluate(n.LHS, subject)
		r := Evaluate(n.RHS, subject)
		sat := l.Satisfied && r.Satisfied
		return &Evaluation{Satisfied: sat, Node: req, Children: []*Evaluation{l, r}, Explanation: compoundExplanation(sat)}

	case *ast.Or:
		l := Evaluate(n.LHS, subject)
		r := Evaluate(n.RHS, subject)
		sat := l.Satisfied || r.Satisfied
		return &Evaluation{Satisfied: sat, Node: req, Children: []*Evaluation{l, r}, Explanation: compoundExplanation(sat)}

	case *ast.Not:
		c := Evaluate(n.Child, subject)
		sat := !c.Satisfied
		return &Evaluation{Satisfied: sat, Node: req, Children: []*Evaluation{c}, Explanation: compoundExplanation(sat)}

	case *ast.Paren:
		c := Evaluate(n.Child, subject)
		return &Evaluation{Satisfied: c.Satisfied, Node: req, Children: []*Evaluation{c}, Explanation: compoundExplanation(c.Satisfied)}

	case *ast.Identifier:
		return evalIdentifier(n, subject)
	case *ast.Info:
		return evalInfo(n, subject)
	case *ast.Entitlement:
		return evalEntitlement(n, subject)
	case *ast.CodeDirectoryHash:
		return evalCodeDirectoryHash(n, subject)
	case *ast.Certificate:
		return evalCertificate(n, subject)

	default:
		panic(fmt.Sprintf("eval: unhandled requirement type %T", req))
	}
}

func compoundExplanation(satisfied bool) string {
	if satisfied {
		return "This requirement is satisfied."
	}
	return "This requirement is not satisfied, see child evaluations."
}

func leaf(req ast.Requirement, satisfied bool, explanation string) *Evaluation {
	if satisfied {
		explanation = "This constraint is satisfied."
	}
	return &Evaluation{Satisfied: satisfied, Node: req, Explanation: explanation}
}

func evalIdentifier(n *ast.Identifier, subject Subject) *Evaluation {
	id, ok := subject.Identifier()
	if !ok {
		return leaf(n, false, "Value not present")
	}
	return leaf(n, id == n.Constant, fmt.Sprintf("identifier %q does not match %q", id, n.Constant))
}

func evalInfo(n *ast.Info, subject Subject) *Evaluation {
	dict, ok := subject.InfoDict()
	if !ok {
		return leaf(n, false, "Value not present")
	}
	v, present := dict[n.Key]
	sat, explanation := matchEval(v, present, n.Match)
	return leaf(n, sat, explanation)
}

func evalEntitlement(n *ast.Entitlement, subject Subject) *Evaluation {
	dict, ok := subject.Entitlements()
	if !ok {
		return leaf(n, false, "Value not present")
	}
	v, present := dict[n.Key]
	sat, explanation := matchEval(v, present, n.Match)
	return leaf(n, sat, explanation)
}

func evalCodeDirectoryHash(n *ast.CodeDirectoryHash, subject Subject) *Evaluation {
	actual, ok := subject.CodeDirectoryHash()
	if !ok {
		return leaf(n, false, "Value not present")
	}
	actualHex := strings.ToLower(fmt.Sprintf("%x", actual))

	if !n.IsFilePath {
		want := strings.ToLower(n.HashConstant)
		return leaf(n, actualHex == want, fmt.Sprintf("code directory hash %s does not match %s", actualHex, want))
	}

	data, err := os.ReadFile(n.FilePath)
	if err != nil {
		return leaf(n, false, fmt.Sprintf("could not read %s: %v", n.FilePath, err))
	}
	sum := sha1.Sum(data)
	want := strings.ToLower(fmt.Sprintf("%x", sum))
	return leaf(n, actualHex == want, fmt.Sprintf("code directory hash %s does not match file hash %s", actualHex, want))
}

func evalCertificate(n *ast.Certificate, subject Subject) *Evaluation {
	switch n.Kind {
	case ast.CertWholeApple, ast.CertTrusted:
		result, err := subject.CheckValidity(textFormCertificate(n))
		if err != nil {
			return leaf(n, false, fmt.Sprintf("host validity check failed: %v", err))
		}
		return leaf(n, result == ValidityOK, "host rejected this certificate requirement")

	case ast.CertWholeAppleGeneric:
		chain, ok := subject.CertificateChain()
		if !ok || len(chain) == 0 {
			return leaf(n, false, "Value not present")
		}
		root := chain[len(chain)-1]
		sum := sha256.Sum256(root.RawDER())
		hex := fmt.Sprintf("%x", sum)
		for _, accepted := range acceptedAppleRootHashes {
			if hex == accepted {
				return leaf(n, true, "")
			}
		}
		return leaf(n, false, "root certificate is not a recognized Apple root")

	case ast.CertWholeHashConstant, ast.CertWholeHashFilePath:
		return evalCertificateWholeHash(n, subject)

	case ast.CertElement, ast.CertElementImplicitExists:
		return evalCertificateElement(n, subject)

	default:
		panic(fmt.Sprintf("eval: unhandled certificate kind %v", n.Kind))
	}
}

// textFormCertificate renders just enough of a WholeApple/Trusted
// certificate constraint to pass through to the host's opaque validity
// check; it is not required to be reparseable by this package.
func textFormCertificate(n *ast.Certificate) string {
	if n.Kind == ast.CertWholeApple {
		return "anchor apple"
	}
	return positionSummary(n.Position) + " trusted"
}

func positionSummary(pos ast.CertificatePosition) string {
	switch pos.Kind {
	case ast.PosAnchor, ast.PosRoot:
		return "anchor"
	case ast.PosLeaf:
		return "certificate leaf"
	case ast.PosPositiveFromLeaf:
		return fmt.Sprintf("certificate %d", pos.N)
	case ast.PosNegativeFromAnchor:
		return fmt.Sprintf("certificate -%d", pos.N)
	default:
		return "certificate"
	}
}

func evalCertificateWholeHash(n *ast.Certificate, subject Subject) *Evaluation {
	cert, ok := resolveCertificatePosition(subject, n.Position)
	if !ok {
		return leaf(n, false, "certificate not present at this position")
	}
	sum := sha1.Sum(cert.RawDER())
	actualHex := strings.ToLower(fmt.Sprintf("%x", sum))

	if n.Kind == ast.CertWholeHashConstant {
		want := strings.ToLower(n.HashConstant)
		return leaf(n, actualHex == want, fmt.Sprintf("certificate hash %s does not match %s", actualHex, want))
	}

	data, err := os.ReadFile(n.FilePath)
	if err != nil {
		return leaf(n, false, fmt.Sprintf("could not read %s: %v", n.FilePath, err))
	}
	want := strings.ToLower(fmt.Sprintf("%x", sha1.Sum(data)))
	return leaf(n, actualHex == want, fmt.Sprintf("certificate hash %s does not match file hash %s", actualHex, want))
}

var documentedCertificateFields = map[string]bool{
	"subject.CN": true, "subject.C": true, "subject.D": true, "subject.L": true,
	"subject.O": true, "subject.OU": true, "subject.STREET": true,
}

func evalCertificateElement(n *ast.Certificate, subject Subject) *Evaluation {
	cert, ok := resolveCertificatePosition(subject, n.Position)
	if !ok {
		return leaf(n, false, "certificate not present at this position")
	}

	match := n.Match
	if n.Kind == ast.CertElementImplicitExists {
		match = ast.MatchExpr{Kind: ast.MatchUnarySuffixExists}
	}

	if strings.HasPrefix(n.ElementKey, "field.") {
		oid := strings.TrimPrefix(n.ElementKey, "field.")
		if match.Kind != ast.MatchUnarySuffixExists {
			return leaf(n, false, "only existence check is supported for OID fields")
		}
		return leaf(n, cert.HasOID(oid), "OID is not present on this certificate")
	}

	if !documentedCertificateFields[n.ElementKey] {
		return leaf(n, false, fmt.Sprintf("%q is not a recognized certificate field", n.ElementKey))
	}

	fieldName := strings.TrimPrefix(n.ElementKey, "subject.")
	v, present := cert.Field(fieldName)
	var val Value
	if present {
		val = v
	}
	sat, explanation := matchEval(val, present, match)
	return leaf(n, sat, explanation)
}

func resolveCertificatePosition(subject Subject, pos ast.CertificatePosition) (Certificate, bool) {
	chain, ok := subject.CertificateChain()
	if !ok || len(chain) == 0 {
		return nil, false
	}

	switch pos.Kind {
	case ast.PosRoot, ast.PosAnchor:
		return chain[len(chain)-1], true
	case ast.PosLeaf:
		return chain[0], true
	case ast.PosPositiveFromLeaf:
		n := int(pos.N)
		if n < 0 || n >= len(chain) {
			return nil, false
		}
		return chain[n], true
	case ast.PosNegativeFromAnchor:
		idx := len(chain) - int(pos.N)
		if idx < 0 || idx >= len(chain) {
			return nil, false
		}
		return chain[idx], true
	default:
		return nil, false
	}
}

// matchEval evaluates a MatchExpr against an optional actual value.
// present distinguishes "key absent" from "key present with a
// nil/zero value" — only the former short-circuits to "Value not present".
func matchEval(v Value, present bool, m ast.MatchExpr) (bool, string) {
	if !present {
		return false, "Value not present"
	}

	switch m.Kind {
	case ast.MatchUnarySuffixExists:
		if b, ok := v.(bool); ok && !b {
			return false, "value is false"
		}
		return true, ""

	case ast.MatchInfix:
		s, ok := v.(string)
		if !ok {
			return false, fmt.Sprintf("value has type %T, not a string", v)
		}
		cmp := numcompare.Compare(s, m.String)
		var sat bool
		switch m.Op {
		case ast.MatchOpEQ:
			sat = cmp == 0
		case ast.MatchOpLT:
			sat = cmp < 0
		case ast.MatchOpGT:
			sat = cmp > 0
		case ast.MatchOpLE:
			sat = cmp <= 0
		case ast.MatchOpGE:
			sat = cmp >= 0
		}
		if sat {
			return true, ""
		}
		return false, fmt.Sprintf("%q does not satisfy %s %q", s, m.Op, m.String)

	case ast.MatchInfixEqualsWildcard:
		s, ok := v.(string)
		if !ok {
			return false, fmt.Sprintf("value has type %T, not a string", v)
		}
		var sat bool
		switch m.Wildcard.Kind {
		case ast.WildcardPrefix:
			sat = strings.HasSuffix(s, m.Wildcard.S)
		case ast.WildcardPostfix:
			sat = strings.HasPrefix(s, m.Wildcard.S)
		case ast.WildcardBoth:
			sat = strings.Contains(s, m.Wildcard.S)
		}
		if sat {
			return true, ""
		}
		return false, fmt.Sprintf("%q does not match wildcard pattern against %q", s, m.Wildcard.S)

	default:
		panic(fmt.Sprintf("eval: unhandled match kind %v", m.Kind))
	}
}

// acceptedAppleRootHashes is a representative built-in table of SHA-256
// root-certificate fingerprints accepted by `anchor apple generic`. A
// production host would source and refresh this table from the platform's
// trust store; this core ships a fixed representative starter set.
var acceptedAppleRootHashes = []string{
	"b0b1730ecbc7ff4505142c49f1295e6eda6bcaed7e2c68c5be91b5a11001f024",
}
