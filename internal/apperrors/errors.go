// Package apperrors defines the domain error taxonomy shared by the
// service and API layers. Each kind maps to exactly one HTTP shape, but
// nothing in this package knows about HTTP.
package apperrors

import "fmt"

// NotFoundError indicates an entity id that does not resolve.
type NotFoundError struct {
	EntityName string
	EntityID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.EntityName, e.EntityID)
}

func NewNotFound(entityName string, entityID int) *NotFoundError {
	return &NotFoundError{EntityName: entityName, EntityID: entityID}
}

// DuplicateEntityError indicates a uniqueness violation on a single field.
type DuplicateEntityError struct {
	EntityName  string
	EntityField string
	EntityValue string
}

func (e *DuplicateEntityError) Error() string {
	return fmt.Sprintf("duplicate %s: %s %q already exists", e.EntityName, e.EntityField, e.EntityValue)
}

func NewDuplicateEntity(entityName, entityField, entityValue string) *DuplicateEntityError {
	return &DuplicateEntityError{
		EntityName:  entityName,
		EntityField: entityField,
		EntityValue: entityValue,
	}
}

// AuthKind discriminates authentication failures. All of them surface as a
// generic 401 so callers cannot probe for valid usernames or token state.
type AuthKind string

const (
	KindInvalidCredentials AuthKind = "invalid_credentials"
	KindInvalidToken       AuthKind = "invalid_token"
	KindExpiredToken       AuthKind = "expired_token"
)

type AuthError struct {
	Kind        AuthKind
	Description string
}

func (e *AuthError) Error() string { return e.Description }

func NewInvalidCredentials() *AuthError {
	return &AuthError{Kind: KindInvalidCredentials, Description: "invalid username or password"}
}

func NewInvalidToken() *AuthError {
	return &AuthError{Kind: KindInvalidToken, Description: "invalid access token"}
}

func NewExpiredToken() *AuthError {
	return &AuthError{Kind: KindExpiredToken, Description: "expired access token"}
}

// PermissionError is a deny from the access control layer. Action is the
// operation class the actor lacks: "view chat", "edit chat",
// "edit chat members" or "edit message".
type PermissionError struct {
	Action string
}

func (e *PermissionError) Error() string {
	return "requires permission to " + e.Action
}

func NewNoPermission(action string) *PermissionError {
	return &PermissionError{Action: action}
}

// InvalidStateError is a structurally valid request that would break a
// domain invariant, e.g. removing a chat's owner from its membership.
type InvalidStateError struct {
	Description string
}

func (e *InvalidStateError) Error() string { return e.Description }

func NewInvalidState(description string) *InvalidStateError {
	return &InvalidStateError{Description: description}
}
