// Package permissions is the registry of permission name tokens. The
// strings are stable; route gates and seeders reference these constants,
// never literals.
package permissions

const (
	// Users
	CanListUsers       = "list-users"
	CanShowUsers       = "show-users"
	CanCreateUsers     = "create-users"
	CanUpdateUsers     = "update-users"
	CanUpdateUsersSelf = "update-users-self"
	CanDeleteUsers     = "delete-users"

	// Roles
	CanShowRoles   = "roles.show"
	CanCreateRoles = "roles.create"
	CanUpdateRoles = "roles.update"
	CanDeleteRoles = "roles.delete"

	// Wish requests
	CanViewRequests   = "requests.view"
	CanDeleteRequests = "requests.delete"

	// Shows
	CanViewDisabledShowsOthers = "shows.view-disabled.others"
	CanCreateShows             = "shows.create"
	CanCreateShowsOthers       = "shows.create.others"
	CanUpdateShows             = "shows.update"
	CanUpdateShowsOthers       = "shows.update.others"
	CanDeleteShows             = "shows.delete"
	CanDeleteShowsOthers       = "shows.delete.others"
	CanBePrimaryModerator      = "shows.be-primary-moderator"
	CanBeModerator             = "shows.be-moderator"
	CanAddModerators           = "shows.add-moderators"
	CanSetLiveShows            = "shows.set-live"
	CanEnableShows             = "shows.enable"
)

// All returns every registered permission name.
func All() []string {
	return []string{
		CanListUsers,
		CanShowUsers,
		CanCreateUsers,
		CanUpdateUsers,
		CanUpdateUsersSelf,
		CanDeleteUsers,

		CanShowRoles,
		CanCreateRoles,
		CanUpdateRoles,
		CanDeleteRoles,

		CanViewRequests,
		CanDeleteRequests,

		CanViewDisabledShowsOthers,
		CanCreateShows,
		CanCreateShowsOthers,
		CanUpdateShows,
		CanUpdateShowsOthers,
		CanDeleteShows,
		CanDeleteShowsOthers,
		CanBePrimaryModerator,
		CanBeModerator,
		CanAddModerators,
		CanSetLiveShows,
		CanEnableShows,
	}
}
