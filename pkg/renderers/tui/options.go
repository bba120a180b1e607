package tui

// Option configures the Filler.
type Option func(*Filler)

// WithPromptDriver overrides the prompt driver used by the filler.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithPrefill seeds prompt defaults keyed by field id.
func WithPrefill(values map[string]string) Option {
	return func(f *Filler) {
		for k, v := range values {
			f.prefill[k] = v
		}
	}
}

// WithMaxAttempts bounds how often an invalid answer is asked again.
func WithMaxAttempts(n int) Option {
	return func(f *Filler) {
		if n > 0 {
			f.maxAttempts = n
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(f *Filler) {
		f.theme = theme
	}
}

// Theme captures optional formatting hints for prompts and messages.
type Theme struct {
	RequiredSuffix string
	ErrorPrefix    string
}
