package domain

// Field names a scalar field of a DraftProduct
type Field string

const (
	FieldName          Field = "name"
	FieldBrand         Field = "brand"
	FieldPrice         Field = "price"
	FieldDescription   Field = "description"
	FieldConcentration Field = "concentration"
	FieldSize          Field = "size"
)

// NoteList names one of the three fragrance note lists of a DraftProduct
type NoteList string

const (
	TopNotes    NoteList = "topNotes"
	MiddleNotes NoteList = "middleNotes"
	BaseNotes   NoteList = "baseNotes"
)

// Image is an attached file handle. Only metadata is kept, never the bytes.
type Image struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// DraftProduct is a product being composed in the upload flow
type DraftProduct struct {
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	Price         string   `json:"price"`
	Description   string   `json:"description"`
	Concentration string   `json:"concentration"`
	Size          string   `json:"size"`
	TopNotes      []string `json:"top_notes"`
	MiddleNotes   []string `json:"middle_notes"`
	BaseNotes     []string `json:"base_notes"`
	Images        []Image  `json:"images"`
}

// Clone returns a deep copy of the draft
func (d DraftProduct) Clone() DraftProduct {
	c := d
	c.TopNotes = append([]string{}, d.TopNotes...)
	c.MiddleNotes = append([]string{}, d.MiddleNotes...)
	c.BaseNotes = append([]string{}, d.BaseNotes...)
	c.Images = append([]Image{}, d.Images...)
	return c
}
