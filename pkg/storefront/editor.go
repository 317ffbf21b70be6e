package storefront

// Editor owns the draft and applied filter states. The draft is edited in
// the filter panel; nothing reaches the network until Apply.
type Editor struct {
	applied FilterSet
	draft   FilterSet

	// subcategory id → owning category id, from the facet vocabulary.
	subcatOwner map[int]int

	onApply func(FilterSet)
}

// NewEditor builds an editor over the given subcategory→category table.
// onApply fires with a copy of the committed filter set.
func NewEditor(subcatOwner map[int]int, onApply func(FilterSet)) *Editor {
	return &Editor{
		applied:     NewFilterSet(),
		draft:       NewFilterSet(),
		subcatOwner: subcatOwner,
		onApply:     onApply,
	}
}

// Open seeds the draft from the applied state, discarding whatever edits
// were abandoned the last time the panel closed.
func (e *Editor) Open() {
	e.draft = e.applied.Clone()
}

// ToggleCategory flips the category and then drops every selected
// subcategory whose owning category is no longer selected. A subcategory
// selection never outlives its parent.
func (e *Editor) ToggleCategory(id int) {
	if e.draft.Categories[id] {
		delete(e.draft.Categories, id)
	} else {
		e.draft.Categories[id] = true
	}

	for subID := range e.draft.Subcategories {
		if !e.draft.Categories[e.subcatOwner[subID]] {
			delete(e.draft.Subcategories, subID)
		}
	}
}

// ToggleSubcategory flips the subcategory. Selecting one whose category is
// not selected is refused rather than silently repaired later.
func (e *Editor) ToggleSubcategory(id int) {
	if e.draft.Subcategories[id] {
		delete(e.draft.Subcategories, id)
		return
	}
	if !e.draft.Categories[e.subcatOwner[id]] {
		return
	}
	e.draft.Subcategories[id] = true
}

func (e *Editor) ToggleBrand(id int) {
	if e.draft.Brands[id] {
		delete(e.draft.Brands, id)
	} else {
		e.draft.Brands[id] = true
	}
}

func (e *Editor) TogglePMP()       { e.draft.PMP = !e.draft.PMP }
func (e *Editor) TogglePromotion() { e.draft.Promotion = !e.draft.Promotion }
func (e *Editor) ToggleClearance() { e.draft.Clearance = !e.draft.Clearance }

// Clear resets the draft to the empty selection. The applied state is
// untouched until the user commits.
func (e *Editor) Clear() {
	search := e.draft.Search
	e.draft = NewFilterSet()
	e.draft.Search = search
}

// Apply commits the draft and signals the fetch trigger.
func (e *Editor) Apply() {
	e.applied = e.draft.Clone()
	if e.onApply != nil {
		e.onApply(e.applied.Clone())
	}
}

// Applied returns a copy of the committed filter state.
func (e *Editor) Applied() FilterSet {
	return e.applied.Clone()
}

// Draft returns a copy of the in-progress filter state.
func (e *Editor) Draft() FilterSet {
	return e.draft.Clone()
}
