// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package models

import "time"

// ItemType identifies the kind of item a recommendation or interaction refers to.
type ItemType string

// Supported item types.
const (
	ItemTypeJob       ItemType = "job"
	ItemTypeCourse    ItemType = "course"
	ItemTypeCandidate ItemType = "candidate"
)

// ItemTypes lists every supported item type in a stable order.
var ItemTypes = []ItemType{ItemTypeJob, ItemTypeCourse, ItemTypeCandidate}

// Valid reports whether t is a supported item type.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeJob, ItemTypeCourse, ItemTypeCandidate:
		return true
	}
	return false
}

// Action is a user action on an item.
type Action string

// Supported actions.
const (
	ActionView   Action = "view"
	ActionLike   Action = "like"
	ActionApply  Action = "apply"
	ActionIgnore Action = "ignore"
	ActionSave   Action = "save"
)

// Actions lists every action in weight order. Iteration over this slice is
// the tie-break order wherever actions are ranked.
var Actions = []Action{ActionApply, ActionLike, ActionSave, ActionView, ActionIgnore}

// Valid reports whether a is a supported action.
func (a Action) Valid() bool {
	switch a {
	case ActionView, ActionLike, ActionApply, ActionIgnore, ActionSave:
		return true
	}
	return false
}

// ItemRef is a reference to an item of a specific type. Resolution to the
// item itself goes through a per-type lookup table.
type ItemRef struct {
	// ItemType selects the lookup table.
	ItemType ItemType `json:"item_type"`

	// ItemID is the item identifier within its type.
	ItemID string `json:"item_id"`
}

// String returns "type:id".
func (r ItemRef) String() string {
	return string(r.ItemType) + ":" + r.ItemID
}

// InteractionContext captures where an interaction happened and the score
// the item carried when it was shown.
type InteractionContext struct {
	// SourcePage is the page or surface the item was shown on.
	SourcePage string `json:"source_page,omitempty"`

	// Position is the item's position in the list it was shown in.
	Position int `json:"position,omitempty"`

	// OriginalScore is the recommendation score at interaction time (0 = unknown).
	OriginalScore float64 `json:"original_score,omitempty"`

	// Metadata holds free-form attributes such as "category".
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Interaction is an immutable record of a user action on an item.
type Interaction struct {
	// ID is the unique interaction identifier.
	ID string `json:"id"`

	// UserID is the acting user.
	UserID string `json:"user_id"`

	// Item is the item acted on.
	Item ItemRef `json:"item"`

	// Action is what the user did.
	Action Action `json:"action"`

	// Duration is the view duration in seconds. Only meaningful for views.
	Duration int `json:"duration,omitempty"`

	// Timestamp is when the interaction happened.
	Timestamp time.Time `json:"timestamp"`

	// Context describes where the interaction happened.
	Context InteractionContext `json:"context"`
}

// Category returns the item category recorded in the interaction metadata.
func (i *Interaction) Category() string {
	if i.Context.Metadata == nil {
		return ""
	}
	return i.Context.Metadata["category"]
}

// InteractionFilter selects interactions for a user.
type InteractionFilter struct {
	UserID   string
	ItemType *ItemType
	Action   *Action
	Since    *time.Time
	Until    *time.Time
	Limit    int
	Offset   int
}

// ItemSummary is the resolved view of an item reference.
type ItemSummary struct {
	Ref       ItemRef   `json:"ref"`
	Title     string    `json:"title"`
	Category  string    `json:"category,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InteractionView is an interaction with its item resolved.
// Item is nil when the item could not be resolved.
type InteractionView struct {
	Interaction
	ItemDetails *ItemSummary `json:"item_details,omitempty"`
}
