package urls

import (
	"context"
	"strings"
)

// UrlFilter decides whether a discovered URL should be kept.
type UrlFilter interface {
	ShouldKeep(ctx context.Context, url string) (bool, error)
}

// PrefixFilter keeps URLs that start with a fixed prefix.
type PrefixFilter struct {
	prefix string
}

// NewPrefixFilter creates a filter that keeps URLs under the given prefix.
func NewPrefixFilter(prefix string) *PrefixFilter {
	return &PrefixFilter{
		prefix: prefix,
	}
}

// ShouldKeep returns true if the URL starts with the configured prefix.
func (f *PrefixFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	return strings.HasPrefix(urlStr, f.prefix), nil
}

// SubsectionFilter keeps URLs under a subsection root, excluding the
// bare root URL itself.
type SubsectionFilter struct {
	root string
}

// NewSubsectionFilter creates a filter for the given subsection root.
func NewSubsectionFilter(root string) *SubsectionFilter {
	return &SubsectionFilter{
		root: root,
	}
}

// ShouldKeep returns true if the URL is under the subsection root but
// is not the root itself.
func (f *SubsectionFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	return strings.HasPrefix(urlStr, f.root) && urlStr != f.root, nil
}
