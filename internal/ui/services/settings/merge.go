package settings

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cast"

	"quickbar/internal/domain"
)

// Merge overlays rec on base. Fields that are missing or cannot be coerced
// keep the base value. The background image is always pinned.
func Merge(base domain.Settings, rec domain.Record) domain.Settings {
	out := base

	if v, ok := rec[domain.KeyMaxResults]; ok {
		if n, err := domain.ToInt(v); err == nil && n > 0 {
			out.MaxResults = n
		} else {
			log.Debug("settings: ignoring max_results", "value", v)
		}
	}
	if v, ok := rec[domain.KeyEnableAutostart]; ok {
		if b, err := cast.ToBoolE(v); err == nil {
			out.EnableAutostart = b
		} else {
			log.Debug("settings: ignoring enable_autostart", "value", v)
		}
	}
	if v, ok := rec[domain.KeyBgOpacity]; ok {
		if f, err := domain.ToFloat(v); err == nil {
			out.BgOpacity = clampOpacity(f)
		} else {
			log.Debug("settings: ignoring theme_bg_opacity", "value", v)
		}
	}
	if v, ok := rec[domain.KeyBgBlur]; ok {
		if n, err := domain.ToInt(v); err == nil {
			if n < 0 {
				n = 0
			}
			out.BgBlur = n
		} else {
			log.Debug("settings: ignoring theme_bg_blur", "value", v)
		}
	}

	return Pin(out)
}

// Pin replaces the background image with the fixed one
func Pin(s domain.Settings) domain.Settings {
	s.BgImage = domain.PinnedBackgroundImage
	return s
}

func clampOpacity(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
