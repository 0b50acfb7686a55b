package repository

import (
    "strings"
    "testing"

    "github.com/stretchr/testify/require"

    "github.com/iliyamo/billiard-table-reservation/internal/model"
)

func TestRoleScopeCustomer(t *testing.T) {
    scope, args := RoleScopeSQL(model.Actor{ID: 7, Role: model.RoleCustomer})

    require.Contains(t, scope, "user_id = ?")
    require.Contains(t, scope, "LOWER(message) LIKE ?")
    require.Contains(t, scope, "LOWER(message) NOT LIKE ?")

    // viewer id first, then the include patterns, then the excludes.
    require.Equal(t, uint64(7), args[0])
    require.Contains(t, args, "%approved%")
    require.Contains(t, args, "%reject%")
    require.Contains(t, args, "%reschedule pending%")
}

func TestRoleScopeStaffIsSystemWide(t *testing.T) {
    for _, role := range []model.Role{model.RoleManager, model.RoleFrontdesk} {
        scope, args := RoleScopeSQL(model.Actor{ID: 2, Role: role})

        // No recipient restriction: staff see actionable items on every
        // account.
        require.NotContains(t, scope, "user_id")
        require.Contains(t, args, "%reschedule%")
        require.Contains(t, args, "%new reservation%")
        require.Contains(t, args, "%approved%")
        require.Contains(t, args, "%reject%")
        require.True(t, strings.Contains(scope, "NOT LIKE"), "staff scope must exclude outcome messages")
    }
}

func TestRoleScopeAdminUnfiltered(t *testing.T) {
    for _, role := range []model.Role{model.RoleAdmin, model.RoleSuperadmin} {
        scope, args := RoleScopeSQL(model.Actor{ID: 1, Role: role})
        require.Equal(t, "1=1", scope)
        require.Empty(t, args)
    }
}

func TestRoleScopeUnknownSeesNothing(t *testing.T) {
    scope, args := RoleScopeSQL(model.Actor{ID: 1, Role: model.Role("owner")})
    require.Equal(t, "1=0", scope)
    require.Empty(t, args)
}
