// Package fixture provides a small, JSON-backed eval.Subject/eval.Certificate
// implementation for tests and for cmd/reqlang's `--subject` flag. It
// stands in for the host code-signing bridge (SecStaticCode /
// SecRequirementEvaluate) that a real macOS host would provide.
package fixture

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/trilemma-dev/Required-sub000/eval"
)

// Doc is the on-disk JSON shape for a fixture subject.
type Doc struct {
	Identifier         string                  `json:"identifier,omitempty"`
	Info               map[string]any          `json:"info,omitempty"`
	Entitlements       map[string]any          `json:"entitlements,omitempty"`
	CodeDirectoryHash  string                  `json:"codeDirectoryHash,omitempty"`
	CertificateChain   []CertificateDoc        `json:"certificateChain,omitempty"`
	Validity           map[string]ValidityVerb `json:"validity,omitempty"`
}

// ValidityVerb names the fixture's canned answer to a CheckValidity call
// keyed by the requirement text asked about.
type ValidityVerb string

const (
	VerbOK               ValidityVerb = "ok"
	VerbRequirementFailed ValidityVerb = "requirement-failed"
	VerbError            ValidityVerb = "error"
)

// CertificateDoc is the on-disk JSON shape for one certificate.
type CertificateDoc struct {
	RawDERHex string            `json:"rawDerHex,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	OIDs      []string          `json:"oids,omitempty"`
}

// Load decodes a fixture document from JSON bytes.
func Load(data []byte) (*Doc, error) {
	var d Doc
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("fixture: decode: %w", err)
	}
	return &d, nil
}

// Subject returns an eval.Subject view over the decoded document.
func (d *Doc) Subject() eval.Subject {
	return &subject{d}
}

type subject struct {
	doc *Doc
}

func (s *subject) Identifier() (string, bool) {
	if s.doc.Identifier == "" {
		return "", false
	}
	return s.doc.Identifier, true
}

func (s *subject) InfoDict() (map[string]eval.Value, bool) {
	return toValueMap(s.doc.Info)
}

func (s *subject) Entitlements() (map[string]eval.Value, bool) {
	return toValueMap(s.doc.Entitlements)
}

func toValueMap(m map[string]any) (map[string]eval.Value, bool) {
	if m == nil {
		return nil, false
	}
	out := make(map[string]eval.Value, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out, true
}

func (s *subject) CodeDirectoryHash() ([]byte, bool) {
	if s.doc.CodeDirectoryHash == "" {
		return nil, false
	}
	b, err := decodeHex(s.doc.CodeDirectoryHash)
	if err != nil {
		return nil, false
	}
	return b, true
}

func (s *subject) CertificateChain() ([]eval.Certificate, bool) {
	if len(s.doc.CertificateChain) == 0 {
		return nil, false
	}
	out := make([]eval.Certificate, len(s.doc.CertificateChain))
	for i, c := range s.doc.CertificateChain {
		out[i] = &certificate{c}
	}
	return out, true
}

func (s *subject) CheckValidity(requirementText string) (eval.ValidityResult, error) {
	verb, ok := s.doc.Validity[requirementText]
	if !ok {
		return eval.ValidityRequirementFailed, nil
	}
	switch verb {
	case VerbOK:
		return eval.ValidityOK, nil
	case VerbRequirementFailed:
		return eval.ValidityRequirementFailed, nil
	case VerbError:
		return eval.ValidityRequirementFailed, fmt.Errorf("fixture: validity check for %q marked as erroring", requirementText)
	default:
		return eval.ValidityRequirementFailed, fmt.Errorf("fixture: unknown validity verb %q", verb)
	}
}

type certificate struct {
	doc CertificateDoc
}

func (c *certificate) RawDER() []byte {
	b, _ := decodeHex(c.doc.RawDERHex)
	return b
}

func (c *certificate) Field(name string) (string, bool) {
	v, ok := c.doc.Fields[name]
	return v, ok
}

func (c *certificate) HasOID(oid string) bool {
	for _, o := range c.doc.OIDs {
		if o == oid {
			return true
		}
	}
	return false
}

func decodeHex(s string) ([]byte, error) {
	return hex.DecodeString(s)
}
