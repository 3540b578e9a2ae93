package models

// ProjectTag is one member of a project's tag set
type ProjectTag struct {
	ID        uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	ProjectID uint   `json:"project_id" db:"project_id" gorm:"not null;index:idx_project_tag_project_id;uniqueIndex:idx_project_tag_unique"`
	Value     string `json:"value" db:"value" gorm:"type:text;not null;uniqueIndex:idx_project_tag_unique;index:idx_project_tag_value"`
}

// NewProjectTags turns raw tag input into a set: trimmed, empties dropped, duplicates removed,
// first occurrence order kept.
func NewProjectTags(values []string) []ProjectTag {
	seen := make(map[string]struct{}, len(values))
	tags := make([]ProjectTag, 0, len(values))
	for _, v := range values {
		v = normalizeTag(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		tags = append(tags, ProjectTag{Value: v})
	}
	return tags
}
