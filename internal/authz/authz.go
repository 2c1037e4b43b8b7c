// Package authz is the authorization gate: a pure decision table from
// (role, operation) to allow or deny. Anything outside the table is denied.
package authz

import "github.com/roamly/vacations-api/internal/domain"

// Operation identifies a guarded action on the request surface.
type Operation string

const (
	OpListVacations     Operation = "vacations.list"
	OpGetVacation       Operation = "vacations.get"
	OpCreateVacation    Operation = "vacations.create"
	OpUpdateVacation    Operation = "vacations.update"
	OpDeleteVacation    Operation = "vacations.delete"
	OpUploadVacationImg Operation = "vacations.upload_image"
	OpLikeVacation      Operation = "likes.create"
	OpUnlikeVacation    Operation = "likes.delete"
	OpListOwnLikes      Operation = "likes.list_own"
	OpListVacationLikes Operation = "likes.list_for_vacation"
	OpListCountries     Operation = "countries.list"
	OpGetCountry        Operation = "countries.get"
	OpCreateCountry     Operation = "countries.create"
	OpListUsers         Operation = "users.list"
)

// Operations is the closed set the gate decides over.
var Operations = []Operation{
	OpListVacations,
	OpGetVacation,
	OpCreateVacation,
	OpUpdateVacation,
	OpDeleteVacation,
	OpUploadVacationImg,
	OpLikeVacation,
	OpUnlikeVacation,
	OpListOwnLikes,
	OpListVacationLikes,
	OpListCountries,
	OpGetCountry,
	OpCreateCountry,
	OpListUsers,
}

var adminOnly = map[Operation]bool{
	OpCreateVacation:    true,
	OpUpdateVacation:    true,
	OpDeleteVacation:    true,
	OpUploadVacationImg: true,
	OpListVacationLikes: true,
	OpCreateCountry:     true,
	OpListUsers:         true,
}

var known = func() map[Operation]bool {
	m := make(map[Operation]bool, len(Operations))
	for _, op := range Operations {
		m[op] = true
	}
	return m
}()

// Can reports whether role may perform op. Unknown roles and unknown
// operations are denied.
func Can(role domain.Role, op Operation) bool {
	if !role.Valid() || !known[op] {
		return false
	}
	if adminOnly[op] {
		return role == domain.RoleAdmin
	}
	return true
}
