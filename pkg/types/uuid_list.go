package types

import "github.com/google/uuid"

// UUIDList is an identifier set persisted as a jsonb array.
type UUIDList []uuid.UUID

// Contains reports membership of id.
func (l UUIDList) Contains(id uuid.UUID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// ContainsAny reports whether any of ids is a member.
func (l UUIDList) ContainsAny(ids []uuid.UUID) bool {
	for _, id := range ids {
		if l.Contains(id) {
			return true
		}
	}
	return false
}
