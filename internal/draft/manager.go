package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"elegance-storefront/internal/domain"
)

// MaxImages is the most images a draft can hold
const MaxImages = 5

var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrNoImagesAttached     = errors.New("no images attached")
	ErrUnknownField         = errors.New("unknown field")
	ErrUnknownNoteList      = errors.New("unknown note list")
)

// requiredFields are checked in this order; the first blank one is reported.
var requiredFields = []domain.Field{
	domain.FieldName,
	domain.FieldBrand,
	domain.FieldPrice,
	domain.FieldDescription,
}

// FieldError reports which required field was blank
type FieldError struct {
	Field domain.Field
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingRequiredField, e.Field)
}

func (e *FieldError) Unwrap() error {
	return ErrMissingRequiredField
}

// Snapshot is a read-only copy of a submitted draft
type Snapshot struct {
	product domain.DraftProduct
}

// Product returns a copy of the submitted draft
func (s Snapshot) Product() domain.DraftProduct {
	return s.product.Clone()
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.product)
}

// Manager holds the state of one product draft. It is not safe for
// concurrent use.
type Manager struct {
	draft domain.DraftProduct
}

// NewManager returns a manager holding an empty draft
func NewManager() *Manager {
	return &Manager{draft: emptyDraft()}
}

// Restore rebuilds a manager from a previously saved draft. Empty note lists
// get a blank entry and images past MaxImages are dropped.
func Restore(d domain.DraftProduct) *Manager {
	d = d.Clone()
	for _, list := range []*[]string{&d.TopNotes, &d.MiddleNotes, &d.BaseNotes} {
		if len(*list) == 0 {
			*list = []string{""}
		}
	}
	if len(d.Images) > MaxImages {
		d.Images = d.Images[:MaxImages]
	}
	return &Manager{draft: d}
}

func emptyDraft() domain.DraftProduct {
	return domain.DraftProduct{
		TopNotes:    []string{""},
		MiddleNotes: []string{""},
		BaseNotes:   []string{""},
		Images:      []domain.Image{},
	}
}

// Draft returns a copy of the current draft
func (m *Manager) Draft() domain.DraftProduct {
	return m.draft.Clone()
}

// SetField overwrites a scalar field. The value is not validated.
func (m *Manager) SetField(field domain.Field, value string) error {
	ptr, err := m.field(field)
	if err != nil {
		return err
	}
	*ptr = value
	return nil
}

func (m *Manager) field(field domain.Field) (*string, error) {
	switch field {
	case domain.FieldName:
		return &m.draft.Name, nil
	case domain.FieldBrand:
		return &m.draft.Brand, nil
	case domain.FieldPrice:
		return &m.draft.Price, nil
	case domain.FieldDescription:
		return &m.draft.Description, nil
	case domain.FieldConcentration:
		return &m.draft.Concentration, nil
	case domain.FieldSize:
		return &m.draft.Size, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

func (m *Manager) notes(list domain.NoteList) (*[]string, error) {
	switch list {
	case domain.TopNotes:
		return &m.draft.TopNotes, nil
	case domain.MiddleNotes:
		return &m.draft.MiddleNotes, nil
	case domain.BaseNotes:
		return &m.draft.BaseNotes, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNoteList, list)
	}
}

// AddNote appends a blank entry to the list
func (m *Manager) AddNote(list domain.NoteList) error {
	notes, err := m.notes(list)
	if err != nil {
		return err
	}
	*notes = append(*notes, "")
	return nil
}

// SetNote overwrites the entry at index. An out of range index is ignored.
func (m *Manager) SetNote(list domain.NoteList, index int, value string) error {
	notes, err := m.notes(list)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*notes) {
		return nil
	}
	(*notes)[index] = value
	return nil
}

// RemoveNote deletes the entry at index. The last remaining entry of a list
// is never removed, and an out of range index is ignored.
func (m *Manager) RemoveNote(list domain.NoteList, index int) error {
	notes, err := m.notes(list)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*notes) || len(*notes) <= 1 {
		return nil
	}
	*notes = append((*notes)[:index:index], (*notes)[index+1:]...)
	return nil
}

// AddImages appends files and then keeps only the first MaxImages, so
// additions past the cap are dropped.
func (m *Manager) AddImages(files ...domain.Image) {
	images := append(m.draft.Images, files...)
	if len(images) > MaxImages {
		images = images[:MaxImages]
	}
	m.draft.Images = images
}

// RemoveImage deletes the image at index. An out of range index is ignored.
func (m *Manager) RemoveImage(index int) {
	if index < 0 || index >= len(m.draft.Images) {
		return
	}
	m.draft.Images = append(m.draft.Images[:index:index], m.draft.Images[index+1:]...)
}

// Validate reports at most one problem: the first blank required field, or
// else a missing image.
func (m *Manager) Validate() error {
	for _, f := range requiredFields {
		ptr, _ := m.field(f)
		if strings.TrimSpace(*ptr) == "" {
			return &FieldError{Field: f}
		}
	}
	if len(m.draft.Images) == 0 {
		return ErrNoImagesAttached
	}
	return nil
}

// Submit validates the draft, returns a snapshot of it and resets the
// manager to an empty draft. An invalid draft is left as it was.
func (m *Manager) Submit() (Snapshot, error) {
	if err := m.Validate(); err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{product: m.draft.Clone()}
	m.draft = emptyDraft()
	return snap, nil
}
