package cma

import (
	"encoding/json"
	"fmt"
)

// OrganizationInvitationFields are the fields of an invitation.
type OrganizationInvitationFields struct {
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName"  yaml:"lastName"`
	Email     string `json:"email"     yaml:"email"`
	Role      string `json:"role"      yaml:"role"`
}

// OrganizationInvitationProps is the wire shape of an invitation.
type OrganizationInvitationProps struct {
	Sys   MetaSys `json:"sys" yaml:"sys"`
	Extra Extra   `json:"-"   yaml:"-"`

	OrganizationInvitationFields `yaml:",inline"`
}

// MarshalJSON encodes the props together with their Extra keys.
func (p OrganizationInvitationProps) MarshalJSON() ([]byte, error) {
	type plain OrganizationInvitationProps

	return marshalWithExtra(plain(p), p.Extra)
}

// OrganizationInvitationAPI is the capability set of an invitation.
type OrganizationInvitationAPI interface {
	Sys() MetaSys
	ToPlainObject() OrganizationInvitationProps
}

// OrganizationInvitation is a pending invitation to join an organization.
type OrganizationInvitation struct {
	Identity
	OrganizationInvitationFields
}

var _ OrganizationInvitationAPI = (*OrganizationInvitation)(nil)

// WrapOrganizationInvitation wraps a raw invitation.
func WrapOrganizationInvitation(_ MakeRequest, raw json.RawMessage) (*OrganizationInvitation, error) {
	identity, fields, err := Decode[OrganizationInvitationFields](raw)
	if err != nil {
		return nil, fmt.Errorf("wrapping organization invitation: %w", err)
	}

	return &OrganizationInvitation{Identity: identity, OrganizationInvitationFields: fields}, nil
}

// ToPlainObject returns a deep copy of the invitation's wire view.
func (o *OrganizationInvitation) ToPlainObject() OrganizationInvitationProps {
	return OrganizationInvitationProps{Sys: o.Sys(), Extra: o.extras(), OrganizationInvitationFields: clone(o.OrganizationInvitationFields)}
}
