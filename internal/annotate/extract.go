package annotate

// First returns the first element of a possibly absent, possibly
// multi-valued field and true, or ("", false) when the field is absent or
// empty. Remote entries are schema-loose: any field may be missing, empty
// or multi-valued, and one entry missing one field must never fail a
// whole batch, so this is a total function rather than an accessor that
// can error.
func First(values []string) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// FirstOrNil is First for optional string fields: it returns a pointer to
// the first element, or nil when the field is absent or empty.
func FirstOrNil(values []string) *string {
	v, ok := First(values)
	if !ok {
		return nil
	}
	return &v
}
