package application

// Access is the outcome of an ownership check.
type Access int

const (
	AccessAllow Access = iota
	AccessForbidden
	AccessNotFound
)

// CheckOwnership decides whether an actor may touch a resource. Existence is
// evaluated before ownership so a wrong-owner caller learns nothing beyond
// "exists or not": a missing resource is NotFound for everyone, an existing
// resource owned by someone else is Forbidden.
func CheckOwnership(actorID, ownerID string, exists bool) Access {
	if !exists {
		return AccessNotFound
	}
	if actorID != ownerID {
		return AccessForbidden
	}
	return AccessAllow
}

// Err maps a denial to its sentinel error; Allow maps to nil.
func (a Access) Err() error {
	switch a {
	case AccessForbidden:
		return ErrForbidden
	case AccessNotFound:
		return ErrListNotFound
	}
	return nil
}
