package cma

import (
	"encoding/json"
	"fmt"
)

// UserFields are the profile fields of a user. Users are read-only.
type UserFields struct {
	FirstName   string `json:"firstName"             yaml:"firstName"`
	LastName    string `json:"lastName"              yaml:"lastName"`
	AvatarURL   string `json:"avatarUrl,omitempty"   yaml:"avatarUrl,omitempty"`
	Email       string `json:"email"                 yaml:"email"`
	Activated   bool   `json:"activated"             yaml:"activated"`
	SignInCount int    `json:"signInCount,omitempty" yaml:"signInCount,omitempty"`
	Confirmed   bool   `json:"confirmed"             yaml:"confirmed"`
}

// UserProps is the wire shape of a user.
type UserProps struct {
	Sys   MetaSys `json:"sys" yaml:"sys"`
	Extra Extra   `json:"-"   yaml:"-"`

	UserFields `yaml:",inline"`
}

// MarshalJSON encodes the props together with their Extra keys.
func (p UserProps) MarshalJSON() ([]byte, error) {
	type plain UserProps

	return marshalWithExtra(plain(p), p.Extra)
}

// UserAPI is the capability set of a user.
type UserAPI interface {
	Sys() MetaSys
	ToPlainObject() UserProps
}

// User is an account, either the caller or a member of an organization.
type User struct {
	Identity
	UserFields
}

var _ UserAPI = (*User)(nil)

// WrapUser wraps a raw user. Users carry no request-issuing methods, so
// makeRequest is unused.
func WrapUser(_ MakeRequest, raw json.RawMessage) (*User, error) {
	identity, fields, err := Decode[UserFields](raw)
	if err != nil {
		return nil, fmt.Errorf("wrapping user: %w", err)
	}

	return &User{Identity: identity, UserFields: fields}, nil
}

// WrapUserCollection wraps a raw collection of users.
var WrapUserCollection = WrapCollection(WrapUser)

// ToPlainObject returns a deep copy of the user's wire view.
func (u *User) ToPlainObject() UserProps {
	return UserProps{Sys: u.Sys(), Extra: u.extras(), UserFields: clone(u.UserFields)}
}
