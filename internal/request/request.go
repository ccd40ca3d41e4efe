package request

import (
	"errors"
	"net/url"
	"strings"
)

// ErrEmptyURL is returned when the base URL is empty or whitespace-only.
// It is detected before any network access.
var ErrEmptyURL = errors.New("request: base URL is empty")

// Pose identifies the avatar's requested reference pose.
type Pose string

// Supported poses.
const (
	PoseT Pose = "T"
	PoseA Pose = "A"
)

// MorphTarget is a named blendable mesh deformation requested as a tag on
// the download URL.
type MorphTarget string

// Morph target vocabulary.
const (
	MorphARKit         MorphTarget = "ARKit"
	MorphOculusVisemes MorphTarget = "OculusVisemes"
	MorphMouthSmile    MorphTarget = "mouthSmile"
	MorphMouthOpen     MorphTarget = "mouthOpen"
)

// morphChecklist fixes the serialization order of morph target tags.
// Tags always serialize in this order, not in insertion order.
var morphChecklist = []MorphTarget{
	MorphARKit,
	MorphOculusVisemes,
	MorphMouthSmile,
	MorphMouthOpen,
}

// MorphTargetSet is a deduplicated set of morph target tags.
type MorphTargetSet map[MorphTarget]struct{}

// NewMorphTargetSet creates a set from the given tags. Duplicates collapse.
func NewMorphTargetSet(tags ...MorphTarget) MorphTargetSet {
	s := make(MorphTargetSet, len(tags))
	for _, tag := range tags {
		s[tag] = struct{}{}
	}
	return s
}

// Add inserts a tag into the set.
func (s MorphTargetSet) Add(tag MorphTarget) {
	s[tag] = struct{}{}
}

// Contains reports whether the set holds the given tag.
func (s MorphTargetSet) Contains(tag MorphTarget) bool {
	_, ok := s[tag]
	return ok
}

// ordered returns the selected tags in checklist order.
func (s MorphTargetSet) ordered() []string {
	out := make([]string, 0, len(s))
	for _, tag := range morphChecklist {
		if s.Contains(tag) {
			out = append(out, string(tag))
		}
	}
	return out
}

// Options describes one avatar download request. It is a plain value
// constructed by the caller; the host adapter maps its own UI or flag state
// into it immediately before invoking the core.
type Options struct {
	// BaseURL is the avatar model URL without query parameters.
	BaseURL string

	// Pose selects the reference pose. Empty omits the parameter.
	Pose Pose

	// MorphTargets are the requested morph target tags. A nil or empty set
	// omits the parameter.
	MorphTargets MorphTargetSet
}

// RequestURL is the fully qualified download URL derived from Options.
type RequestURL string

// String returns the URL as a plain string.
func (u RequestURL) String() string {
	return string(u)
}

// Filename derives the destination filename: the text after the last "/",
// with any trailing query string stripped.
func (u RequestURL) Filename() string {
	s := string(u)
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.Index(s, "?"); i >= 0 {
		s = s[:i]
	}
	return s
}

// Build assembles the request URL from opts.
//
// The pose identifier is upper-cased. Morph target tags are joined with
// commas in checklist order into a single query value. Parameters are
// included only when non-empty, and the query string is percent-encoded.
// The "?" separator is always appended, even when the query is empty.
func Build(opts Options) (RequestURL, error) {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		return "", ErrEmptyURL
	}

	q := url.Values{}
	if tags := opts.MorphTargets.ordered(); len(tags) > 0 {
		q.Set("morphTargets", strings.Join(tags, ","))
	}
	if opts.Pose != "" {
		q.Set("pose", strings.ToUpper(string(opts.Pose)))
	}

	return RequestURL(base + "?" + q.Encode()), nil
}
