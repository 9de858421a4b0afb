package domain

// Role is the closed set of principal kinds. There is no flag combination
// outside these four: an unauthenticated seller or an anonymous admin cannot
// be constructed.
type Role int

const (
	RoleAnonymous Role = iota
	RoleBuyer
	RoleSeller
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleBuyer:
		return "buyer"
	case RoleSeller:
		return "seller"
	case RoleAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// Actor is the acting principal resolved from the session. It is a value
// type passed explicitly into every policy function; nothing reads it from
// ambient request state.
type Actor struct {
	role Role
	id   uint
}

// Anonymous returns the unauthenticated actor.
func Anonymous() Actor {
	return Actor{role: RoleAnonymous}
}

// BuyerActor returns an authenticated non-seller actor.
func BuyerActor(id uint) Actor {
	return Actor{role: RoleBuyer, id: id}
}

// SellerActor returns an authenticated seller actor.
func SellerActor(id uint) Actor {
	return Actor{role: RoleSeller, id: id}
}

// AdminActor returns a staff actor. Staff privileges supersede the
// seller/buyer distinction everywhere.
func AdminActor(id uint) Actor {
	return Actor{role: RoleAdmin, id: id}
}

func (a Actor) Role() Role { return a.role }

// ID is the opaque identity used for ownership comparison. Zero for the
// anonymous actor.
func (a Actor) ID() uint { return a.id }

func (a Actor) Authenticated() bool { return a.role != RoleAnonymous }

func (a Actor) IsAdmin() bool { return a.role == RoleAdmin }

func (a Actor) IsSeller() bool { return a.role == RoleSeller }

// Is reports whether the actor is the authenticated principal with the
// given id. Always false for the anonymous actor, so an unset foreign key
// never matches.
func (a Actor) Is(id uint) bool {
	return a.Authenticated() && a.id == id
}
