package domain

// TagFilter restricts a task listing to one tag. The zero value matches
// every tag, the same as the "All" sentinel.
type TagFilter struct {
	TagID int64
}

// AnyTag returns a filter with no tag restriction.
func AnyTag() TagFilter {
	return TagFilter{TagID: AllTagID}
}

// OnlyTag returns a filter matching tasks tagged with tagID.
func OnlyTag(tagID int64) TagFilter {
	return TagFilter{TagID: tagID}
}

// IsAll reports whether the filter places no tag restriction.
func (f TagFilter) IsAll() bool {
	return f.TagID == AllTagID
}

// TaskFilter selects tasks by completion state and tag.
type TaskFilter struct {
	Tag  TagFilter
	Done bool
}
