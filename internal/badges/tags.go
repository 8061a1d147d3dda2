// Package badges derives categorical tags from experiments and wins and
// evaluates multi-category filter criteria against them.
package badges

import (
	"fmt"
	"sort"
	"strings"
)

type Kind int

const (
	KindIndoor Kind = iota + 1
	KindOutdoor
	KindTools
	KindNoTools
	KindOneTime
	KindNewInterest
	KindLink
	KindTimeframe
)

// Tag is a derived badge. Label is only set for timeframe tags.
type Tag struct {
	Kind  Kind
	Label string
}

var (
	Indoor      = Tag{Kind: KindIndoor}
	Outdoor     = Tag{Kind: KindOutdoor}
	Tools       = Tag{Kind: KindTools}
	NoTools     = Tag{Kind: KindNoTools}
	OneTime     = Tag{Kind: KindOneTime}
	NewInterest = Tag{Kind: KindNewInterest}
	Link        = Tag{Kind: KindLink}
)

func Timeframe(label string) Tag {
	return Tag{Kind: KindTimeframe, Label: label}
}

type Category int

const (
	CategoryEnvironment Category = iota
	CategoryTools
	CategoryTimeframe
	CategoryLogType
)

const categoryCount = 4

// CategoryOf classifies a tag. Link tags have no category and are never filterable.
func CategoryOf(tag Tag) (Category, bool) {
	switch tag.Kind {
	case KindIndoor, KindOutdoor:
		return CategoryEnvironment, true
	case KindTools, KindNoTools:
		return CategoryTools, true
	case KindTimeframe:
		return CategoryTimeframe, true
	case KindOneTime, KindNewInterest:
		return CategoryLogType, true
	default:
		return 0, false
	}
}

var kindNames = map[Kind]string{
	KindIndoor:      "indoor",
	KindOutdoor:     "outdoor",
	KindTools:       "tools",
	KindNoTools:     "noTools",
	KindOneTime:     "oneTime",
	KindNewInterest: "newInterest",
	KindLink:        "link",
	KindTimeframe:   "timeframe",
}

func (tag Tag) String() string {
	name, ok := kindNames[tag.Kind]
	if !ok {
		return "unknown"
	}
	if tag.Kind == KindTimeframe {
		return name + ":" + tag.Label
	}
	return name
}

// ParseTag accepts the String form of a tag, case-insensitively for the kind.
func ParseTag(raw string) (Tag, error) {
	value := strings.TrimSpace(raw)
	name, label, hasLabel := strings.Cut(value, ":")
	name = strings.ToLower(strings.TrimSpace(name))

	for kind, kindName := range kindNames {
		if strings.ToLower(kindName) != name {
			continue
		}
		if kind == KindTimeframe {
			label = strings.ToUpper(strings.TrimSpace(label))
			if !hasLabel || label == "" {
				return Tag{}, fmt.Errorf("timeframe tag %q has no label", raw)
			}
			return Timeframe(label), nil
		}
		if hasLabel {
			return Tag{}, fmt.Errorf("tag %q does not take a label", raw)
		}
		return Tag{Kind: kind}, nil
	}
	return Tag{}, fmt.Errorf("unknown tag %q", raw)
}

func ParseTags(raw []string) ([]Tag, error) {
	tags := make([]Tag, 0, len(raw))
	for _, value := range raw {
		if strings.TrimSpace(value) == "" {
			continue
		}
		tag, err := ParseTag(value)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// Set is an unordered collection of tags.
type Set map[Tag]struct{}

func NewSet(tags ...Tag) Set {
	set := make(Set, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}
	return set
}

func (set Set) Has(tag Tag) bool {
	_, ok := set[tag]
	return ok
}

func (set Set) Add(tag Tag) {
	set[tag] = struct{}{}
}

// Sorted returns the tags ordered by kind, then label.
func (set Set) Sorted() []Tag {
	tags := make([]Tag, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Kind == tags[j].Kind {
			return tags[i].Label < tags[j].Label
		}
		return tags[i].Kind < tags[j].Kind
	})
	return tags
}
