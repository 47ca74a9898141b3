package rendezvous

// URLBuilder constructs the absolute session URL returned on creation
// (component E). prefix is expected to be an absolute URL ending in "/",
// validated by internal/config.Config.Validate.
type URLBuilder struct {
	prefix string
}

// NewURLBuilder returns a URLBuilder rooted at prefix.
func NewURLBuilder(prefix string) *URLBuilder {
	return &URLBuilder{prefix: prefix}
}

// SessionURL returns the absolute URL for id.
func (b *URLBuilder) SessionURL(id string) string {
	return b.prefix + id
}
