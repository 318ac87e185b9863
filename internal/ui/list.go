package ui

import (
	"sort"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/slidex/internal/models"
	"github.com/desertthunder/slidex/internal/shared"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

var _ list.Item = slideItem{}

// slideItem wraps [models.Slide] to implement [list.Item].
type slideItem struct {
	slide models.Slide
}

func (i slideItem) FilterValue() string { return i.slide.Title }
func (i slideItem) Title() string {
	if i.slide.Title == "" {
		return "Untitled (" + i.slide.ID.String() + ")"
	}
	return i.slide.Title
}
func (i slideItem) Description() string {
	return shared.Pluralize(i.slide.Len(), "file", "files")
}

// fuzzyFilter is a [list.FilterFunc] ranking targets by case-insensitive fuzzy distance.
func fuzzyFilter(term string, targets []string) []list.Rank {
	ranks := fuzzy.RankFindNormalizedFold(term, targets)
	sort.Stable(ranks)

	result := make([]list.Rank, len(ranks))
	for i, r := range ranks {
		result[i] = list.Rank{Index: r.OriginalIndex}
	}
	return result
}

func slideItems(slides []models.Slide) []list.Item {
	items := make([]list.Item, len(slides))
	for i, s := range slides {
		items[i] = slideItem{slide: s}
	}
	return items
}
