package member

import "memberlink/internal/common"

// OwnerKind is the owner-chain status of a handle.
type OwnerKind int

const (
	// OwnerBroken is set when the parent could not be established. It is permanent.
	OwnerBroken OwnerKind = iota
	// OwnerRootOnInstance means the owner is a target instance.
	OwnerRootOnInstance
	// OwnerRootOnStatic means the member needs no owner.
	OwnerRootOnStatic
	// OwnerChained means the owner is the value of the parent handle.
	OwnerChained
)

// String returns a human-readable owner kind name.
func (k OwnerKind) String() string {
	switch k {
	case OwnerBroken:
		return "broken"
	case OwnerRootOnInstance:
		return "instance"
	case OwnerRootOnStatic:
		return "static"
	case OwnerChained:
		return "chained"
	default:
		return common.UnknownStr
	}
}
