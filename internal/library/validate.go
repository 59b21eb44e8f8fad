package library

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate applies the shared field rules to d: title and author must be
// non-blank and the year must fall within [0, now.Year()].
func Validate(d Draft, now time.Time) error {
	trimmed := Draft{
		Title:       strings.TrimSpace(d.Title),
		Author:      strings.TrimSpace(d.Author),
		PublishYear: d.PublishYear,
	}
	if err := validate.Struct(trimmed); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return &ValidationError{Field: fieldErrs[0].Field(), Message: MsgFieldsRequired}
		}
		return fmt.Errorf("validate draft: %w", err)
	}
	if err := validate.Var(d.PublishYear, fmt.Sprintf("gte=0,lte=%d", now.Year())); err != nil {
		return &ValidationError{Field: "PublishYear", Message: MsgInvalidYear}
	}
	return nil
}

// ValidateInput turns raw form values into a trimmed Draft and validates it.
func ValidateInput(title, author, year string, now time.Time) (Draft, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	year = strings.TrimSpace(year)

	switch {
	case title == "":
		return Draft{}, &ValidationError{Field: "Title", Message: MsgFieldsRequired}
	case author == "":
		return Draft{}, &ValidationError{Field: "Author", Message: MsgFieldsRequired}
	case year == "":
		return Draft{}, &ValidationError{Field: "PublishYear", Message: MsgFieldsRequired}
	}

	parsed, err := strconv.Atoi(year)
	if err != nil {
		return Draft{}, &ValidationError{Field: "PublishYear", Message: MsgInvalidYear}
	}

	d := Draft{Title: title, Author: author, PublishYear: parsed}
	if err := Validate(d, now); err != nil {
		return Draft{}, err
	}
	return d, nil
}
