package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dealerhub/dealership-system/internal/core/domain"
)

var validate = validator.New()

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

const (
	minPasswordLen = 8
	maxMessageLen  = 2000
	vinLen         = 17
	minModelYear   = 1900
)

// fieldErrors collects the first message per field.
type fieldErrors map[string]string

func (f fieldErrors) add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

func (f fieldErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f.add(field, "is required")
	}
}

func (f fieldErrors) email(field, value string, required bool) {
	if value == "" {
		if required {
			f.add(field, "is required")
		}
		return
	}
	if validate.Var(value, "email") != nil {
		f.add(field, "must be a valid email address")
	}
}

func (f fieldErrors) maxLen(field, value string, n int) {
	if len(value) > n {
		f.add(field, "is too long")
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: f}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// slugify derives a URL slug from a display name.
func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func maxModelYear() int {
	return time.Now().UTC().Year() + 1
}
