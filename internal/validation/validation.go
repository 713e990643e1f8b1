// Package validation holds the book field checks. Each function returns
// (ok, message) instead of an error so callers decide how to surface the
// failure; message strings are part of the API contract.
package validation

// ISBN accepts any 13-character string; content is not checked.
func ISBN(isbn *string) (bool, string) {
	if isbn == nil {
		return false, "ISBN must not be empty."
	}
	if len(*isbn) != 13 {
		return false, "ISBN must be 13 characters long."
	}
	return true, ""
}

func Title(title *string) (bool, string) {
	if title == nil || *title == "" {
		return false, "Title must not be empty."
	}
	if len(*title) > 255 {
		return false, "Title is too long."
	}
	return true, ""
}

func PublicationYear(year *int) (bool, string) {
	if year == nil {
		return false, "Publication year must not be empty."
	}
	if *year < 1000 || *year > 2100 {
		return false, "Publication year must be a valid number between 1000 and 2100."
	}
	return true, ""
}
