package task

import (
	"strings"
	"unicode/utf8"

	"github.com/tasklane/backend/domain"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 1000
)

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", domain.Invalid("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", domain.Invalid("title must be at most %d characters", maxTitleLength)
	}
	return title, nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return domain.Invalid("description must be at most %d characters", maxDescriptionLength)
	}
	return nil
}
