package model

import (
    "strings"
    "time"
)

// Notification is a message produced as a side effect of a reservation or
// reschedule transition.  Rows are never created directly by a user action.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – recipient account (the reservation's owner).
//  ReservationNo – booking reference the message refers to.
//  Message       – templated text embedding reservation/reference numbers.
//  IsRead        – whether the recipient has seen it.
//  CreatedAt     – creation timestamp.
type Notification struct {
    ID            uint64    // notifications.id
    UserID        uint64    // notifications.user_id
    ReservationNo string    // notifications.reservation_no
    Message       string    // notifications.message
    IsRead        bool      // notifications.is_read
    CreatedAt     time.Time // notifications.created_at
}

// Role-filter pattern lists.  These are the single source of truth for
// notification visibility: the repository builds its SQL scope from them and
// VisibleToRole applies the identical predicate in memory.  The list query,
// the unread-count query and the mark-all-read update must all go through
// the same scope so the three can never diverge.
//
// Matching is case-insensitive to mirror MySQL's default LIKE collation.
var (
    // Customers see only terminal outcomes on their own notifications.
    // "reject" also matches "rejected".
    CustomerIncludePatterns = []string{"approved", "reject"}
    CustomerExcludePatterns = []string{"reschedule pending"}

    // Managers and frontdesk see actionable items system-wide, never
    // outcome confirmations.
    StaffIncludePatterns = []string{"reschedule", "new reservation"}
    StaffExcludePatterns = []string{"approved", "reject"}
)

// VisibleToRole reports whether a notification addressed to recipientID with
// the given message is visible to a viewer with the given role and account.
// Admin and superadmin receive the unfiltered feed.
func VisibleToRole(role Role, viewerID, recipientID uint64, message string) bool {
    msg := strings.ToLower(message)
    switch role {
    case RoleCustomer:
        if recipientID != viewerID {
            return false
        }
        return matchesAny(msg, CustomerIncludePatterns) && !matchesAny(msg, CustomerExcludePatterns)
    case RoleManager, RoleFrontdesk:
        return matchesAny(msg, StaffIncludePatterns) && !matchesAny(msg, StaffExcludePatterns)
    case RoleAdmin, RoleSuperadmin:
        return true
    }
    return false
}

func matchesAny(msg string, patterns []string) bool {
    for _, p := range patterns {
        if strings.Contains(msg, p) {
            return true
        }
    }
    return false
}
