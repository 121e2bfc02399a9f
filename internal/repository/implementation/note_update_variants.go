package implementation

import "ai-notes-be/internal/entity"

type noteFieldSet uint8

const (
	fieldTitle noteFieldSet = 1 << iota
	fieldContent
	fieldSummary
)

// noteUpdateColumns lists the column set of every UPDATE variant the
// repository is allowed to issue. updated_at is always refreshed.
var noteUpdateColumns = map[noteFieldSet][]string{
	fieldTitle:                               {"title", "updated_at"},
	fieldContent:                             {"content", "updated_at"},
	fieldTitle | fieldContent:                {"title", "content", "updated_at"},
	fieldSummary:                             {"summary", "updated_at"},
	fieldTitle | fieldSummary:                {"title", "summary", "updated_at"},
	fieldContent | fieldSummary:              {"content", "summary", "updated_at"},
	fieldTitle | fieldContent | fieldSummary: {"title", "content", "summary", "updated_at"},
}

func presentFields(f entity.NoteFields) noteFieldSet {
	var set noteFieldSet
	if f.Title != nil {
		set |= fieldTitle
	}
	if f.Content != nil {
		set |= fieldContent
	}
	if f.Summary != nil {
		set |= fieldSummary
	}
	return set
}

// updateColumnsFor returns false when no field is present.
func updateColumnsFor(f entity.NoteFields) ([]string, bool) {
	cols, ok := noteUpdateColumns[presentFields(f)]
	return cols, ok
}
