package model

import (
	"strings"

	"github.com/google/uuid"
)

// idNamespace is the fixed UUID namespace for all veridoc entity IDs.
var idNamespace = uuid.MustParse("7c9e4a2d-1b5f-4e8a-9c3d-2f6b8a0d4e1c")

// DeterministicID derives a stable UUID from its parts. Identical inputs
// always produce identical IDs, which keeps repeated verification runs
// byte-for-byte reproducible.
func DeterministicID(parts ...string) string {
	return uuid.NewSHA1(idNamespace, []byte(strings.Join(parts, "\x1f"))).String()
}
