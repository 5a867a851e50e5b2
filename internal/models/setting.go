package models

import "time"

// Setting is a generic key-value row for app configuration: currency,
// theme, session timeout, onboarding flags.
type Setting struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `gorm:"column:updatedAt" json:"updated_at"`
}

// TableName maps the model onto the legacy table.
func (Setting) TableName() string { return "settings" }

// Well-known settings keys used by the core services.
const (
	SettingCurrency       = "currency"
	SettingTheme          = "theme"
	SettingNotifications  = "notifications"
	SettingFirstLaunch    = "firstLaunch"
	SettingAuthMethod     = "authMethod"
	SettingSessionTimeout = "sessionTimeout"
)
