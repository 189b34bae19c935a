package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

func CourseUUID(courseSlug string) uuid.UUID {
	return UUID("coursemd:course:" + strings.ToLower(strings.TrimSpace(courseSlug)))
}

// UnitUUID keys a unit by its course and authored position, so renumbering a
// unit yields a new identity.
func UnitUUID(courseID uuid.UUID, module, unit int) uuid.UUID {
	return UUID("coursemd:unit:" + courseID.String() + ":" + strconv.Itoa(module) + "-" + strconv.Itoa(unit))
}

func QuestionUUID(unitID uuid.UUID, questionID string) uuid.UUID {
	return UUID("coursemd:question:" + unitID.String() + ":" + strings.TrimSpace(questionID))
}
