// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "strings"

// Well-known setting keys.
const (
	SettingCompanyName     = "company_name"
	SettingContactEmail    = "contact_email"
	SettingContactPhone    = "contact_phone"
	SettingContactAddress  = "contact_address"
	SettingOpeningHours    = "opening_hours"
	SettingSocialLinkedIn  = "social_linkedin"
	SettingSocialInstagram = "social_instagram"
	SettingSocialFacebook  = "social_facebook"
	SettingMapEmbedURL     = "map_embed_url"
	SettingSMTPFromName    = "smtp_from_name"
	SettingNotifyEmail     = "notification_email"
)

// KarriereSettingPrefix prefixes the per-section overrides of the careers page.
const KarriereSettingPrefix = "karriere_section_"

// KarriereSections are the named sections of the careers page.
var KarriereSections = []string{"hero", "intro", "benefits", "culture", "openings", "cta"}

// KarriereFields are the overridable attributes of a careers page section.
var KarriereFields = []string{"title", "text", "image", "background_color"}

// KarriereSettingKey builds the synthetic key of a careers page override,
// e.g. karriere_section_hero_image.
func KarriereSettingKey(section, field string) string {
	return KarriereSettingPrefix + section + "_" + field
}

// IsKarriereSettingKey reports whether key addresses a careers page override.
func IsKarriereSettingKey(key string) bool {
	return strings.HasPrefix(key, KarriereSettingPrefix)
}

// publicSettingKeys is the allow-list exposed by the public API.
var publicSettingKeys = func() map[string]bool {
	keys := map[string]bool{
		SettingCompanyName:     true,
		SettingContactEmail:    true,
		SettingContactPhone:    true,
		SettingContactAddress:  true,
		SettingOpeningHours:    true,
		SettingSocialLinkedIn:  true,
		SettingSocialInstagram: true,
		SettingSocialFacebook:  true,
		SettingMapEmbedURL:     true,
	}
	for _, s := range KarriereSections {
		for _, f := range KarriereFields {
			keys[KarriereSettingKey(s, f)] = true
		}
	}
	return keys
}()

// IsPublicSettingKey reports whether key may be served without authentication.
func IsPublicSettingKey(key string) bool {
	return publicSettingKeys[key]
}

// PublicSettingKeys returns the allow-listed keys.
func PublicSettingKeys() []string {
	keys := make([]string, 0, len(publicSettingKeys))
	for k := range publicSettingKeys {
		keys = append(keys, k)
	}
	return keys
}

// MaxSettingKeyLength bounds setting keys.
const MaxSettingKeyLength = 100
