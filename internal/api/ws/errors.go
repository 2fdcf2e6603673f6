package ws

import "github.com/webdeskos/backend/internal/shared/errs"

func errMissingField(field string) error {
	return errs.Invalid(field, "is required")
}
