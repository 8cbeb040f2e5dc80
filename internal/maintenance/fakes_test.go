package maintenance

import (
	"errors"
	"fmt"
)

var errStoreDown = errors.New("store down")

type memorySettings struct {
	values  map[string]string
	getErr  error
	setErr  error
	getCall int
}

func newMemorySettings() *memorySettings {
	return &memorySettings{values: map[string]string{}}
}

func (m *memorySettings) Get(key string) (string, bool, error) {
	m.getCall++
	if m.getErr != nil {
		return "", false, m.getErr
	}
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *memorySettings) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

type memoryContent struct {
	nextID   uint
	entities map[Kind]map[uint]*Entity

	findErr      map[string]error
	createErr    map[Kind]error
	setErr       error
	permalinkErr error
	creates      int
}

func newMemoryContent() *memoryContent {
	return &memoryContent{
		entities: map[Kind]map[uint]*Entity{
			KindPage:     {},
			KindTemplate: {},
		},
		findErr:   map[string]error{},
		createErr: map[Kind]error{},
	}
}

func (m *memoryContent) FindBySlug(slug string, kind Kind) (*Entity, error) {
	if err := m.findErr[string(kind)+":"+slug]; err != nil {
		return nil, err
	}
	for _, entity := range m.entities[kind] {
		if entity.Slug == slug {
			copied := *entity
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memoryContent) Create(entity Entity) (uint, error) {
	if err := m.createErr[entity.Kind]; err != nil {
		return 0, err
	}
	m.nextID++
	m.creates++
	entity.ID = m.nextID
	m.entities[entity.Kind][entity.ID] = &entity
	return entity.ID, nil
}

func (m *memoryContent) SetAttribute(kind Kind, id uint, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	entity, ok := m.entities[kind][id]
	if !ok {
		return fmt.Errorf("%s %d not found", kind, id)
	}
	switch key {
	case AttrTitle:
		entity.Title = value
	case AttrContent:
		entity.Content = value
	case AttrStatus:
		entity.Status = value
	case AttrTemplate:
		entity.TemplateSlug = value
	default:
		return fmt.Errorf("unknown attribute %s", key)
	}
	return nil
}

func (m *memoryContent) Permalink(kind Kind, id uint) (string, error) {
	if m.permalinkErr != nil {
		return "", m.permalinkErr
	}
	entity, ok := m.entities[kind][id]
	if !ok {
		return "", fmt.Errorf("%s %d not found", kind, id)
	}
	return "https://example.com/" + entity.Slug, nil
}

func (m *memoryContent) count(kind Kind) int {
	return len(m.entities[kind])
}

func (m *memoryContent) only(kind Kind, slug string) *Entity {
	for _, entity := range m.entities[kind] {
		if entity.Slug == slug {
			return entity
		}
	}
	return nil
}
