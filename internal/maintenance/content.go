package maintenance

// Kind identifies the entity type stored in the content repository.
type Kind string

const (
	KindPage     Kind = "page"
	KindTemplate Kind = "display_template"
)

// Attribute keys accepted by ContentRepository.SetAttribute.
const (
	AttrTitle    = "title"
	AttrContent  = "content"
	AttrStatus   = "status"
	AttrTemplate = "template"
)

// Entity is a page or display template as seen by the maintenance core.
type Entity struct {
	ID           uint
	Kind         Kind
	Slug         string
	Title        string
	Content      string
	Status       string
	Excerpt      string
	TemplateSlug string
	GUID         string
	Theme        string
}

// ContentRepository stores pages and display templates.
// FindBySlug returns (nil, nil) when nothing matches.
type ContentRepository interface {
	FindBySlug(slug string, kind Kind) (*Entity, error)
	Create(entity Entity) (uint, error)
	SetAttribute(kind Kind, id uint, key, value string) error
	Permalink(kind Kind, id uint) (string, error)
}
