package models

// Activity hierarchy bounds. The taxonomy is a fixed-depth tree: level-1
// roots, level-2 children, level-3 leaves. Nothing deeper exists.
const (
	ActivityMinLevel = 1
	ActivityMaxLevel = 3
)

// Activity is a taxonomy node classifying an organization's business type.
type Activity struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id,omitempty"`
	Level    int    `json:"level"`
}

// IsLeaf reports whether the activity sits at the maximum depth and can have
// no descendants.
func (a *Activity) IsLeaf() bool {
	return a.Level >= ActivityMaxLevel
}
