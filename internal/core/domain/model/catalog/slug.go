package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"storefront/internal/pkg/errs"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// NormalizeSlug lowercases and trims s and checks it is a kebab-case slug.
func NormalizeSlug(s string) (string, error) {
	slug := strings.ToLower(strings.TrimSpace(s))
	if slug == "" {
		return "", errs.NewValueIsRequiredError("slug")
	}
	if !slugPattern.MatchString(slug) {
		return "", errs.NewValueIsInvalidErrorWithCause("slug is invalid", fmt.Errorf("%q is not kebab-case", s))
	}
	return slug, nil
}

func requireText(paramName, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", errs.NewValueIsRequiredError(paramName)
	}
	return v, nil
}
