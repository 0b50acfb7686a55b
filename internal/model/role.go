package model

// Role enumerates the closed set of account roles understood by the
// application.  Roles arrive in the JWT "role" claim and gate both the
// routes a user may call and the notifications they may see.  The role
// set is fixed; unknown strings parse to the empty Role.
type Role string

const (
    RoleCustomer   Role = "customer"   // books tables and manages their own reservations
    RoleFrontdesk  Role = "frontdesk"  // approves, rejects and checks in reservations
    RoleManager    Role = "manager"    // same reservation powers as frontdesk
    RoleAdmin      Role = "admin"      // staff powers plus table inventory management
    RoleSuperadmin Role = "superadmin" // unrestricted, sees the unfiltered feed
)

// ParseRole maps a raw claim value onto a known Role.  Unknown values
// return the empty Role so callers can reject the request.
func ParseRole(s string) Role {
    switch Role(s) {
    case RoleCustomer, RoleFrontdesk, RoleManager, RoleAdmin, RoleSuperadmin:
        return Role(s)
    }
    return ""
}

// IsStaff reports whether the role may act on reservations (approve,
// reject, check in, decide reschedules).
func (r Role) IsStaff() bool {
    return r == RoleFrontdesk || r == RoleManager || r == RoleAdmin || r == RoleSuperadmin
}

// Actor identifies the authenticated user performing a transition.  It is
// resolved once by middleware from the JWT and passed explicitly into every
// lifecycle operation instead of being looked up ambiently at call sites.
type Actor struct {
    ID       uint64 // account id from the "sub" claim
    Role     Role   // parsed role claim
    FullName string // display name, recorded on rejections when present
}
