package model

import "update-object-generator/internal/common"

// Visibility is the access level applied to every generated declaration of a class.
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityInternal
	VisibilityPrivate
	VisibilityProtected
)

// String returns the lower-case keyword for the visibility.
func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityInternal:
		return "internal"
	case VisibilityPrivate:
		return "private"
	case VisibilityProtected:
		return "protected"
	default:
		return common.UnknownStr
	}
}

// VisibilityOption is the normalized visibility attribute of a class: an ordered list
// of marker references as written by the user. Empty means the attribute was omitted.
type VisibilityOption []string
