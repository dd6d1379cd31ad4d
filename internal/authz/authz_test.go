package authz

import (
	"testing"

	"github.com/projectflow/project-management-api/internal/models"
	"github.com/stretchr/testify/require"
)

func testUser(id uint64, roles ...models.Role) *models.User {
	user := &models.User{ID: id}
	for _, r := range roles {
		user.Roles = append(user.Roles, models.UserRole{UserID: id, Role: r})
	}
	return user
}

func TestIsAdministrator(t *testing.T) {
	require.True(t, IsAdministrator(testUser(1, models.RoleAdministrator)))
	require.True(t, IsAdministrator(testUser(1, models.RoleMember, models.RoleAdministrator)))
	require.False(t, IsAdministrator(testUser(1, models.RoleOrganizer)))
	require.False(t, IsAdministrator(testUser(1)))
}

// Every combination of (administrator, organizer, member) is checked; the
// predicate must be true iff at least one holds.
func TestCanAccessProject_Exhaustive(t *testing.T) {
	const organizerID = 10
	const otherID = 20

	cases := []struct {
		name      string
		admin     bool
		organizer bool
		member    bool
	}{
		{"nothing", false, false, false},
		{"member only", false, false, true},
		{"organizer only", false, true, false},
		{"organizer and member", false, true, true},
		{"admin only", true, false, false},
		{"admin and member", true, false, true},
		{"admin and organizer", true, true, false},
		{"admin organizer member", true, true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var caller *models.User
			if tc.admin {
				caller = testUser(otherID, models.RoleAdministrator)
			} else {
				caller = testUser(otherID)
			}
			if tc.organizer {
				caller.ID = organizerID
			}

			project := &models.Project{ID: 1, OrganizerID: organizerID}

			want := tc.admin || tc.organizer || tc.member
			require.Equal(t, want, CanAccessProject(caller, project, tc.member))
			// Task mutation needs exactly project access.
			require.Equal(t, want, CanMutateTask(caller, project, tc.member))
		})
	}
}

func TestCanManageProject(t *testing.T) {
	project := &models.Project{ID: 1, OrganizerID: 10}

	require.True(t, CanManageProject(testUser(10), project), "organizer manages their project")
	require.True(t, CanManageProject(testUser(99, models.RoleAdministrator), project), "administrator manages any project")
	require.False(t, CanManageProject(testUser(20), project), "plain user does not")
	require.False(t, CanManageProject(testUser(20, models.RoleOrganizer), project),
		"the Organizer role alone grants nothing on someone else's project")
}

func TestMembershipDoesNotGrantManagement(t *testing.T) {
	project := &models.Project{ID: 1, OrganizerID: 10}
	member := testUser(20, models.RoleMember)

	require.True(t, CanAccessProject(member, project, true))
	require.False(t, CanManageProject(member, project))
}
