package models

// ItemPatch is a partial update of a learning item's content fields. Nil
// means "leave unchanged". Schedule fields are never patchable.
type ItemPatch struct {
	Subject *string `json:"subject"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Empty reports whether the patch changes nothing.
func (p ItemPatch) Empty() bool {
	return p.Subject == nil && p.Title == nil && p.Content == nil
}
