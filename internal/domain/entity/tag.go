package entity

// Tag labels transactions and drives row highlighting.
type Tag struct {
	Data   TagData `json:"data"`
	Others Audit   `json:"others"`
}

// TagData holds the fields of a tag.
type TagData struct {
	TagID     string `json:"tagId"`
	Name      string `json:"name"`
	ColorCode string `json:"colorCode"`
	ExtraNote string `json:"extraNote,omitempty"`
}

// Clone returns a deep copy of the tag.
func (t *Tag) Clone() *Tag {
	out := *t
	out.Others = t.Others.Clone()

	return &out
}
