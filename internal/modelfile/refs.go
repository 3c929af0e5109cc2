package modelfile

import (
	"strings"

	"cad-translator/internal/model"
)

// operandRef is a parsed "id" or "id.REFERENCE" operand.
type operandRef struct {
	ID        string
	Reference model.ConstraintReference
}

// parseRef splits an operand at its first dot.
func parseRef(s string) (operandRef, error) {
	id, refName, found := strings.Cut(s, ".")
	if !found {
		return operandRef{ID: s}, nil
	}

	ref, err := model.ParseConstraintReference(refName)
	if err != nil {
		return operandRef{ID: id}, err
	}

	return operandRef{ID: id, Reference: ref}, nil
}

// formatRef is the inverse of parseRef.
func formatRef(id string, ref model.ConstraintReference) string {
	if ref == model.ReferenceCore {
		return id
	}

	return id + "." + ref.String()
}

func referenceNames() []string {
	out := make([]string, 0, model.ReferenceTotal)
	for r := range model.ConstraintReference(model.ReferenceTotal) {
		out = append(out, r.String())
	}

	return out
}
