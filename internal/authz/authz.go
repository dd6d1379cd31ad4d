// Package authz holds the authorization predicates gating every mutation.
// The predicates are pure: they decide from already-loaded rows and a
// membership fact, never from the database. Resource existence is checked
// by the caller before any predicate runs, so a missing resource is
// reported as not-found rather than forbidden.
package authz

import "github.com/projectflow/project-management-api/internal/models"

// IsAdministrator reports whether the user holds the Administrator role.
// The user's Roles relation must be preloaded.
func IsAdministrator(user *models.User) bool {
	return user.HasRole(models.RoleAdministrator)
}

// CanManageProject reports whether the caller may change the project
// itself: membership, deletion, summary generation. Only administrators
// and the owning organizer qualify.
func CanManageProject(caller *models.User, project *models.Project) bool {
	if IsAdministrator(caller) {
		return true
	}
	return caller.ID == project.OrganizerID
}

// CanAccessProject reports whether the caller may view the project and
// work inside it. hasMembership is the fact of a ProjectMember row for
// (project, caller), looked up by the caller of this predicate.
func CanAccessProject(caller *models.User, project *models.Project, hasMembership bool) bool {
	if IsAdministrator(caller) {
		return true
	}
	if caller.ID == project.OrganizerID {
		return true
	}
	return hasMembership
}

// CanMutateTask reports whether the caller may create, edit, comment on,
// or delete tasks in the given project. Task mutation deliberately
// requires only project access, not ownership: any member may work on
// tasks.
func CanMutateTask(caller *models.User, project *models.Project, hasMembership bool) bool {
	return CanAccessProject(caller, project, hasMembership)
}
