// Package policy holds the ownership authorization rule applied to every
// mutating operation on bootcamps and reviews.
package policy

import "github.com/devtrails/bootcamp-directory/internal/domain/entities"

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   string
	Role entities.Role
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == entities.RoleAdmin
}

// CanMutate reports whether the actor may update or delete a resource owned
// by ownerID: admins may mutate anything, everyone else only their own. Pure
// function; the caller is responsible for loading the resource first and for
// treating a failed lookup as not-found rather than as an authorization
// answer.
func CanMutate(actor Actor, ownerID string) bool {
	return actor.Role == entities.RoleAdmin || actor.ID == ownerID
}
