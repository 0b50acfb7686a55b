package model

import (
    "testing"

    "github.com/stretchr/testify/require"
)

func TestVisibleToRoleCustomer(t *testing.T) {
    const viewer, other = uint64(7), uint64(8)

    // Own outcome notifications are visible.
    require.True(t, VisibleToRole(RoleCustomer, viewer, viewer, "Reservation RSV-1 approved. Reference number: 123456789."))
    require.True(t, VisibleToRole(RoleCustomer, viewer, viewer, "Reservation RSV-1 rejected by manager: Duplicate Booking."))
    require.True(t, VisibleToRole(RoleCustomer, viewer, viewer, "Reservation RSV-1 reschedule rejected by manager: Table Not Available. The booking is back to its original schedule."))

    // Someone else's notifications are never visible, whatever they say.
    require.False(t, VisibleToRole(RoleCustomer, viewer, other, "Reservation RSV-2 approved. Reference number: 123456789."))

    // Workflow-internal messages stay hidden even on own rows.
    require.False(t, VisibleToRole(RoleCustomer, viewer, viewer, "Reschedule pending approval for reservation RSV-1."))
}

func TestVisibleToRoleStaff(t *testing.T) {
    for _, role := range []Role{RoleManager, RoleFrontdesk} {
        // Actionable items are visible system-wide, regardless of recipient.
        require.True(t, VisibleToRole(role, 1, 99, "Reschedule pending approval for reservation RSV-1."), "role %s", role)

        // Outcome confirmations are filtered out: the exclusion wins even
        // when an include pattern also matches.
        require.False(t, VisibleToRole(role, 1, 99, "Reservation RSV-1 approved. Reference number: 123456789."), "role %s", role)
        require.False(t, VisibleToRole(role, 1, 99, "Reservation RSV-1 rejected by manager: Duplicate Booking."), "role %s", role)
        require.False(t, VisibleToRole(role, 1, 99, "Reservation RSV-1 reschedule approved. New schedule: 2026-09-02 10:00-11:00."), "role %s", role)
    }
}

func TestVisibleToRoleAdminUnfiltered(t *testing.T) {
    for _, role := range []Role{RoleAdmin, RoleSuperadmin} {
        require.True(t, VisibleToRole(role, 1, 99, "Reschedule pending approval for reservation RSV-1."))
        require.True(t, VisibleToRole(role, 1, 99, "Reservation RSV-1 approved. Reference number: 123456789."))
        require.True(t, VisibleToRole(role, 1, 99, "anything at all"))
    }
}

func TestVisibleToRoleCaseInsensitive(t *testing.T) {
    require.True(t, VisibleToRole(RoleCustomer, 7, 7, "RESERVATION RSV-1 APPROVED."))
}

func TestVisibleToRoleUnknown(t *testing.T) {
    require.False(t, VisibleToRole(Role("owner"), 1, 1, "Reservation RSV-1 approved."))
}
