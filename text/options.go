package text

// FontOption configures NewFontFromTTF.
type FontOption func(*fontConfig)

type fontConfig struct {
	parserName string
	name       string
}

func defaultFontConfig() fontConfig {
	return fontConfig{parserName: defaultParserName}
}

// WithParser selects the outline parser backend ("ximage" or "gotext",
// or any name passed to RegisterParser).
func WithParser(name string) FontOption {
	return func(c *fontConfig) {
		c.parserName = name
	}
}

// WithName overrides the family name reported by the font file.
func WithName(name string) FontOption {
	return func(c *fontConfig) {
		c.name = name
	}
}
