package domain

// ImageShortcode maps a short 5-char code to an object storage key so that
// post and article text can embed images compactly.
type ImageShortcode struct {
	ID         string
	Code       string
	StorageKey string
	CreatedAt  int64
}

// AppSettings is the global, editor-managed feature toggle document.
type AppSettings struct {
	AllowUSMode      bool
	AllowPeptides    bool
	AllowRetatrutide bool
	UpdatedAt        int64
}
