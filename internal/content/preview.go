package content

// IsPreviewing reports whether the request asks for unpublished content.
func IsPreviewing(opts QueryOptions) bool {
	if opts == nil {
		return false
	}
	if _, ok := opts["builder.preview"]; ok {
		return true
	}
	return opts["preview"] == "true"
}

// IsEditing reports whether the request comes from the visual editor frame.
func IsEditing(opts QueryOptions) bool {
	if opts == nil {
		return false
	}
	_, ok := opts["builder.frameEditing"]
	return ok
}
