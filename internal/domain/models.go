package domain

// SearchResult is a single launchable entry returned by the backend.
// The ID doubles as a file-kind hint (suffix matching).
type SearchResult struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Subtitle   string  `json:"subtitle"`
	Score      float64 `json:"score"`
	ActionType string  `json:"action_type"`
	ActionData string  `json:"action_data"`
	FileType   string  `json:"file_type"`
}

// Action types understood by the backend
const (
	ActionFile   = "file"
	ActionFolder = "folder"
)

// PinnedBackgroundImage is the only background image the launcher uses.
// Whatever the store holds for the field is replaced on load and on save.
const PinnedBackgroundImage = "assets/quickbar-background.png"

// Settings record keys
const (
	KeyMaxResults      = "max_results"
	KeyEnableAutostart = "enable_autostart"
	KeyBgOpacity       = "theme_bg_opacity"
	KeyBgBlur          = "theme_bg_blur"
	KeyBgImage         = "theme_bg_image"
)

// Record is the loosely typed settings shape exchanged with the backend.
// Fields may be missing or carry the wrong type.
type Record map[string]any

// Settings is the typed settings draft
type Settings struct {
	MaxResults      int     `json:"max_results" toml:"max_results"`
	EnableAutostart bool    `json:"enable_autostart" toml:"enable_autostart"`
	BgOpacity       float64 `json:"theme_bg_opacity" toml:"theme_bg_opacity"`
	BgBlur          int     `json:"theme_bg_blur" toml:"theme_bg_blur"`
	BgImage         string  `json:"theme_bg_image" toml:"theme_bg_image"`
}

// DefaultSettings returns the settings used when the store has nothing
func DefaultSettings() Settings {
	return Settings{
		MaxResults:      100,
		EnableAutostart: false,
		BgOpacity:       0.85,
		BgBlur:          10,
		BgImage:         PinnedBackgroundImage,
	}
}

// Record converts the settings to the wire shape
func (s Settings) Record() Record {
	return Record{
		KeyMaxResults:      s.MaxResults,
		KeyEnableAutostart: s.EnableAutostart,
		KeyBgOpacity:       s.BgOpacity,
		KeyBgBlur:          s.BgBlur,
		KeyBgImage:         s.BgImage,
	}
}
