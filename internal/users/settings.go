package users

import (
	dbtypes "github.com/angelmondragon/societyhub-backend/pkg/db/types"
)

const (
	DefaultTimezone   = "UTC"
	DefaultDateFormat = "YYYY-MM-DD"
)

// Settings are the per-user preferences stored in users.settings.
type Settings struct {
	Timezone             string `json:"timezone"`
	DateFormat           string `json:"date_format"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
	EmailNotifications   bool   `json:"email_notifications"`
}

// SettingsPatch is a partial settings update; unset fields keep their value.
type SettingsPatch struct {
	Timezone             *string `json:"timezone"`
	DateFormat           *string `json:"date_format"`
	NotificationsEnabled *bool   `json:"notifications_enabled"`
	EmailNotifications   *bool   `json:"email_notifications"`
}

func DefaultSettings() Settings {
	return Settings{
		Timezone:             DefaultTimezone,
		DateFormat:           DefaultDateFormat,
		NotificationsEnabled: true,
		EmailNotifications:   true,
	}
}

// SettingsFromMap reads the stored JSON object, filling in defaults for
// missing or mistyped keys.
func SettingsFromMap(m dbtypes.JSONMap) Settings {
	out := DefaultSettings()
	if v, ok := m["timezone"].(string); ok && v != "" {
		out.Timezone = v
	}
	if v, ok := m["date_format"].(string); ok && v != "" {
		out.DateFormat = v
	}
	if v, ok := m["notifications_enabled"].(bool); ok {
		out.NotificationsEnabled = v
	}
	if v, ok := m["email_notifications"].(bool); ok {
		out.EmailNotifications = v
	}
	return out
}

// Merge writes the patch into the stored map, keeping unknown keys intact.
func (p SettingsPatch) Merge(m dbtypes.JSONMap) dbtypes.JSONMap {
	out := dbtypes.JSONMap{}
	for k, v := range m {
		out[k] = v
	}
	if p.Timezone != nil {
		out["timezone"] = *p.Timezone
	}
	if p.DateFormat != nil {
		out["date_format"] = *p.DateFormat
	}
	if p.NotificationsEnabled != nil {
		out["notifications_enabled"] = *p.NotificationsEnabled
	}
	if p.EmailNotifications != nil {
		out["email_notifications"] = *p.EmailNotifications
	}
	return out
}
