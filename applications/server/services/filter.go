package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/donmikel/imageupload/applications/server/domain"
)

// DefaultImageExtensions are the filename suffixes accepted when no other
// list is configured.
var DefaultImageExtensions = []string{"jpg", "jpeg", "png", "gif"}

// Filter decides whether a file is accepted by looking at the suffix of its
// original name. Matching is case-sensitive: "photo.PNG" is rejected.
type Filter struct {
	re *regexp.Regexp
}

func NewFilter(extensions []string) (*Filter, error) {
	if len(extensions) == 0 {
		extensions = DefaultImageExtensions
	}

	quoted := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.TrimPrefix(ext, ".")
		if ext == "" {
			return nil, fmt.Errorf("empty extension in filter list")
		}
		quoted = append(quoted, regexp.QuoteMeta(ext))
	}

	re, err := regexp.Compile(`\.(` + strings.Join(quoted, "|") + `)$`)
	if err != nil {
		return nil, fmt.Errorf("can't compile extension filter: %w", err)
	}

	return &Filter{re: re}, nil
}

func (f *Filter) Accepts(originalName string) error {
	if !f.re.MatchString(originalName) {
		return domain.ErrFileTypeRejected
	}

	return nil
}
