package dto

import "strings"

// TagList список тегов проекта (технологии, категории).
type TagList []string

// Add добавляет значение без пробелов по краям. Пустые значения и дубликаты игнорируются.
// Возвращает true, если список изменился.
func (l *TagList) Add(raw string) bool {
	value := strings.TrimSpace(raw)
	if value == "" {
		return false
	}
	for _, existing := range *l {
		if existing == value {
			return false
		}
	}
	*l = append(*l, value)
	return true
}

// Remove удаляет ровно одно вхождение значения.
func (l *TagList) Remove(value string) bool {
	for i, existing := range *l {
		if existing == value {
			*l = append((*l)[:i:i], (*l)[i+1:]...)
			return true
		}
	}
	return false
}

// Dedup собирает список заново через Add: значения без пробелов по краям,
// без пустых и без повторов, в исходном порядке. Никогда не возвращает nil.
func (l TagList) Dedup() TagList {
	out := make(TagList, 0, len(l))
	for _, value := range l {
		out.Add(value)
	}
	return out
}

// Strings возвращает копию значений.
func (l TagList) Strings() []string {
	out := make([]string, len(l))
	copy(out, l)
	return out
}

// TagEditRequest запрос на изменение списка тегов в черновике проекта.
type TagEditRequest struct {
	Tags  TagList `json:"tags"`
	Op    string  `json:"op" binding:"required,oneof=add remove"`
	Value string  `json:"value"`
}

// Apply применяет операцию к списку и возвращает результат.
func (r TagEditRequest) Apply() TagList {
	tags := append(TagList{}, r.Tags...)
	switch r.Op {
	case "add":
		tags.Add(r.Value)
	case "remove":
		tags.Remove(r.Value)
	}
	return tags
}
