package chest

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/enderchest/pkg/errors"
	"github.com/arthur-debert/enderchest/pkg/types"
)

// TagSeparator delimits instance tags in a resource's file name:
// <base><@tag1><@tag2>...
const TagSeparator = "@"

// SplitTags splits a final path component into its base name and tag
// list. Tags are deduplicated preserving first-seen order. A name with no
// separator yields an empty tag set.
func SplitTags(name string) (string, []string, error) {
	segments := strings.Split(name, TagSeparator)
	base := segments[0]
	if base == "" {
		return "", nil, errors.Newf(errors.ErrMalformedEntry,
			"entry %q has no base name before its tags", name)
	}

	var tags []string
	seen := make(map[string]bool, len(segments)-1)
	for _, tag := range segments[1:] {
		if tag == "" {
			return "", nil, errors.Newf(errors.ErrMalformedEntry,
				"entry %q contains an empty tag segment", name)
		}
		if seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return base, tags, nil
}

// ParseEntry parses a chest-relative path of the form
// <category>/<relative/path>/<base><@tag>... into an Entry. Only the
// final component may carry tags; directories along the way never do.
// chestDir is used to record the entry's absolute source path.
func ParseEntry(chestDir, rel string) (types.Entry, error) {
	rel = filepath.ToSlash(rel)
	categoryName, rest, found := strings.Cut(rel, "/")
	if !found || rest == "" {
		return types.Entry{}, errors.Newf(errors.ErrMalformedEntry,
			"path %q is not inside a chest category", rel)
	}

	category, ok := types.ParseCategory(categoryName)
	if !ok {
		return types.Entry{}, errors.Newf(errors.ErrMalformedEntry,
			"%q is not a chest category (entry %q)", categoryName, rel)
	}

	dir, name := path.Split(rest)
	base, tags, err := SplitTags(name)
	if err != nil {
		return types.Entry{}, err
	}

	return types.Entry{
		SourcePath: filepath.Join(chestDir, filepath.FromSlash(rel)),
		Category:   category,
		RelPath:    path.Join(dir, base),
		Tags:       tags,
	}, nil
}
