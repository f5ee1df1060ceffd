// Package variant matches variant tokens to the experiments observed on a row.
package variant

import "strings"

// Matches reports whether a variant token belongs to experimentID.
// Case-insensitive. The usual convention is "<experimentId>_<variantName>", but
// production data also carries prefixed and suffixed forms, so any token that
// contains the id is accepted.
func Matches(token, experimentID string) bool {
	t := strings.ToLower(strings.TrimSpace(token))
	e := strings.ToLower(strings.TrimSpace(experimentID))
	if t == "" || e == "" {
		return false
	}
	return t == e || strings.HasPrefix(t, e+"_") || strings.Contains(t, e)
}

// Signals are the decoded variant-bearing fields of one event row.
// ExperimentIDs and Blob are positionally correlated: Blob[i] is expected to
// describe ExperimentIDs[i].
type Signals struct {
	ExperimentIDs []string
	Scalar        string
	Blob          []string
}

// Reconciler attributes a row's variant signals to its experiment ids.
type Reconciler struct {
	// trustScalar attaches the scalar variant to a single-experiment row without
	// a name match. Used when the experiment id column is single-valued and the
	// variant column holds bare variant names.
	trustScalar bool
}

// NewReconciler returns a Reconciler. trustScalar should be true only for the
// scalar column profile.
func NewReconciler(trustScalar bool) Reconciler {
	return Reconciler{trustScalar: trustScalar}
}

// Attribute returns the variants attributed to the experiment at position i.
// The positional blob entry is attached when it matches, or unconditionally when
// the row carries exactly one experiment id. The scalar variant is attached
// independently when it matches.
func (r Reconciler) Attribute(s Signals, i int) []string {
	if i < 0 || i >= len(s.ExperimentIDs) {
		return nil
	}
	id := s.ExperimentIDs[i]
	single := len(s.ExperimentIDs) == 1

	var out []string
	if i < len(s.Blob) {
		if tok := s.Blob[i]; single || Matches(tok, id) {
			out = append(out, tok)
		}
	}

	if scalar := strings.TrimSpace(s.Scalar); scalar != "" {
		if Matches(scalar, id) || (single && r.trustScalar) {
			out = append(out, scalar)
		}
	}
	return out
}

// Scan returns every blob token that matches experimentID regardless of
// position. It recovers variants when positional correlation is broken.
func (r Reconciler) Scan(s Signals, experimentID string) []string {
	var out []string
	for _, tok := range s.Blob {
		if Matches(tok, experimentID) {
			out = append(out, tok)
		}
	}
	return out
}
