package document

type Option func(*config)

type config struct {
	trimCutset     string
	keepNamespaces bool
	paragraphTags  map[string]bool
	breakTags      map[string]bool
}

func defaultConfig() config {
	return config{
		trimCutset:    " \t\r\n",
		paragraphTags: map[string]bool{"p": true},
		breakTags:     map[string]bool{"br": true},
	}
}

// WithTrimming sets the cutset stripped from each element's accumulated
// raw text when its end tag is processed. The default is " \t\r\n".
func WithTrimming(cutset string) Option {
	return func(c *config) {
		c.trimCutset = cutset
	}
}

// WithoutTrimming leaves every element's raw text exactly as accumulated.
func WithoutTrimming() Option {
	return func(c *config) {
		c.trimCutset = ""
	}
}

// KeepNamespaces retains namespace qualification on element and attribute
// names. By default only the local part is kept.
func KeepNamespaces() Option {
	return func(c *config) {
		c.keepNamespaces = true
	}
}

// WithParagraphTags replaces the set of element names that insert a line
// break into the normalized text when they open after earlier content.
func WithParagraphTags(names ...string) Option {
	return func(c *config) {
		c.paragraphTags = make(map[string]bool, len(names))
		for _, name := range names {
			c.paragraphTags[name] = true
		}
	}
}

// WithLineBreakTags replaces the set of element names that always insert a
// line break into the normalized text when they open.
func WithLineBreakTags(names ...string) Option {
	return func(c *config) {
		c.breakTags = make(map[string]bool, len(names))
		for _, name := range names {
			c.breakTags[name] = true
		}
	}
}
