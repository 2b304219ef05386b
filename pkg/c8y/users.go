package c8y

import (
	"context"
	"time"
)

// Role is an effective role of a user.
type Role struct {
	ID   string `json:"id"             yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Self string `json:"self,omitempty" yaml:"self,omitempty"`
}

// CurrentUser represents the authenticated user.
type CurrentUser struct {
	ID                             string     `json:"id"                             yaml:"id"`
	Self                           string     `json:"self,omitempty"                 yaml:"self,omitempty"`
	UserName                       string     `json:"userName"                       yaml:"userName"`
	FirstName                      string     `json:"firstName,omitempty"            yaml:"firstName,omitempty"`
	LastName                       string     `json:"lastName,omitempty"             yaml:"lastName,omitempty"`
	Email                          string     `json:"email,omitempty"                yaml:"email,omitempty"`
	Phone                          string     `json:"phone,omitempty"                yaml:"phone,omitempty"`
	ShouldResetPassword            bool       `json:"shouldResetPassword"            yaml:"shouldResetPassword"`
	TwoFactorAuthenticationEnabled bool       `json:"twoFactorAuthenticationEnabled" yaml:"twoFactorAuthenticationEnabled"`
	LastPasswordChange             *time.Time `json:"lastPasswordChange,omitempty"   yaml:"lastPasswordChange,omitempty"`
	EffectiveRoles                 []Role     `json:"effectiveRoles,omitempty"       yaml:"effectiveRoles,omitempty"`
}

// CurrentUserUpdate is the writable subset of the current user.
type CurrentUserUpdate struct {
	FirstName *string `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"  yaml:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"     yaml:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"     yaml:"phone,omitempty"`
}

// PasswordChange is the body of a password change of the current user.
type PasswordChange struct {
	CurrentUserPassword string `json:"currentUserPassword" yaml:"-"`
	NewPassword         string `json:"newPassword"         yaml:"-"`
}

// CurrentUserClient defines operations for the authenticated user.
type CurrentUserClient interface {
	Get(ctx context.Context) (*CurrentUser, error)
	Update(ctx context.Context, request *CurrentUserUpdate) (*CurrentUser, error)
	UpdatePassword(ctx context.Context, request *PasswordChange) error
}
