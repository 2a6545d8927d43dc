package cma

// LinkSys is the sys block of a link to another entity.
type LinkSys struct {
	Type     string `json:"type"               yaml:"type"`
	LinkType string `json:"linkType,omitempty" yaml:"linkType,omitempty"`
	ID       string `json:"id"                 yaml:"id"`
}

// Link references another entity by type and id.
type Link struct {
	Sys LinkSys `json:"sys" yaml:"sys"`
}

// LinkTo builds a link to an entity of the given link type.
func LinkTo(linkType, id string) Link {
	return Link{Sys: LinkSys{Type: "Link", LinkType: linkType, ID: id}}
}

// ID returns the id of the linked entity, or "" for a zero link.
func (l Link) ID() string {
	return l.Sys.ID
}

// MetaSys is the identity, version and link metadata attached to every entity.
// It holds only value types so that a copy shares nothing with its source.
type MetaSys struct {
	Type             string `json:"type"                       yaml:"type"`
	ID               string `json:"id"                         yaml:"id"`
	Version          int    `json:"version,omitempty"          yaml:"version,omitempty"`
	CreatedAt        string `json:"createdAt,omitempty"        yaml:"createdAt,omitempty"`
	UpdatedAt        string `json:"updatedAt,omitempty"        yaml:"updatedAt,omitempty"`
	PublishedVersion int    `json:"publishedVersion,omitempty" yaml:"publishedVersion,omitempty"`
	PublishedAt      string `json:"publishedAt,omitempty"      yaml:"publishedAt,omitempty"`
	ArchivedVersion  int    `json:"archivedVersion,omitempty"  yaml:"archivedVersion,omitempty"`
	ArchivedAt       string `json:"archivedAt,omitempty"       yaml:"archivedAt,omitempty"`
	Locale           string `json:"locale,omitempty"           yaml:"locale,omitempty"`
	Status           string `json:"status,omitempty"           yaml:"status,omitempty"`

	Space        Link `json:"space,omitzero"        yaml:"space,omitempty"`
	Environment  Link `json:"environment,omitzero"  yaml:"environment,omitempty"`
	ContentType  Link `json:"contentType,omitzero"  yaml:"contentType,omitempty"`
	Organization Link `json:"organization,omitzero" yaml:"organization,omitempty"`
	Team         Link `json:"team,omitzero"         yaml:"team,omitempty"`
	User         Link `json:"user,omitzero"         yaml:"user,omitempty"`
	CreatedBy    Link `json:"createdBy,omitzero"    yaml:"createdBy,omitempty"`
	UpdatedBy    Link `json:"updatedBy,omitzero"    yaml:"updatedBy,omitempty"`
}

// Identity carries the server-owned part of a wrapped entity: its sys block
// and any wire keys without a typed field. Both are fixed when the entity is
// wrapped; Sys hands out copies, so callers cannot change the identity or
// version an entity reports.
type Identity struct {
	sys   MetaSys
	extra Extra
}

// NewIdentity freezes sys into an Identity.
func NewIdentity(sys MetaSys) Identity {
	return Identity{sys: sys}
}

// Sys returns a copy of the entity's sys block.
func (i Identity) Sys() MetaSys {
	return i.sys
}

// extras returns a copy of the wire keys without a typed field.
func (i Identity) extras() Extra {
	return clone(i.extra)
}

// ID is shorthand for Sys().ID.
func (i Identity) ID() string {
	return i.sys.ID
}

// Version is shorthand for Sys().Version.
func (i Identity) Version() int {
	return i.sys.Version
}

func (i Identity) isDraft() bool {
	return i.sys.PublishedVersion == 0
}

func (i Identity) isPublished() bool {
	return i.sys.PublishedVersion > 0 && i.sys.Version == i.sys.PublishedVersion+1
}

func (i Identity) isUpdated() bool {
	return i.sys.PublishedVersion > 0 && i.sys.Version > i.sys.PublishedVersion+1
}

func (i Identity) isArchived() bool {
	return i.sys.ArchivedVersion > 0
}

// spaceParams returns the space/environment scope of a space-scoped entity.
func (i Identity) spaceParams() Params {
	return Params{
		ParamSpaceID:       i.sys.Space.ID(),
		ParamEnvironmentID: i.environmentID(),
	}
}

// environmentID falls back to the default environment for entities created
// before environments existed.
func (i Identity) environmentID() string {
	if id := i.sys.Environment.ID(); id != "" {
		return id
	}

	return DefaultEnvironmentID
}

// DefaultEnvironmentID is the environment used when a sys block carries none.
const DefaultEnvironmentID = "master"
