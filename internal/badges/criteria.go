package badges

// Criteria is a user-selected filter: OR within a category, AND across categories.
type Criteria struct {
	selected Set
}

func NewCriteria(tags ...Tag) Criteria {
	return Criteria{selected: NewSet(tags...)}
}

func (criteria Criteria) IsEmpty() bool {
	return len(criteria.selected) == 0
}

func (criteria Criteria) Tags() []Tag {
	return criteria.selected.Sorted()
}

func (criteria Criteria) Matches(candidate Set) bool {
	if len(criteria.selected) == 0 {
		return true
	}

	var byCategory [categoryCount][]Tag
	for tag := range criteria.selected {
		category, ok := CategoryOf(tag)
		if !ok {
			continue
		}
		byCategory[category] = append(byCategory[category], tag)
	}

	for _, selected := range byCategory {
		if len(selected) == 0 {
			continue
		}
		if !intersects(candidate, selected) {
			return false
		}
	}
	return true
}

func intersects(candidate Set, selected []Tag) bool {
	for _, tag := range selected {
		if candidate.Has(tag) {
			return true
		}
	}
	return false
}
