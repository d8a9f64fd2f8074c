package models

import (
	"testing"
)

func TestPrivacyDefaults(t *testing.T) {
	var settings *PrivacySettings
	eff := settings.Merged()

	if !eff.ShowMoodTrends || !eff.ShowCravingLevels || !eff.ShowStreak || !eff.ShowBadges {
		t.Errorf("sharing toggles should default on: %+v", eff)
	}
	if eff.ShowNotes {
		t.Error("notes should default private")
	}
}

func TestPrivacyMergeKeepsExplicitValues(t *testing.T) {
	off := false
	on := true
	settings := &PrivacySettings{
		ShowMoodTrends: &off,
		ShowNotes:      &on,
	}
	eff := settings.Merged()

	if eff.ShowMoodTrends {
		t.Error("explicit false should override the default")
	}
	if !eff.ShowNotes {
		t.Error("explicit true should override the default")
	}
	if !eff.ShowCravingLevels || !eff.ShowStreak {
		t.Error("untouched toggles should keep their defaults")
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleRecovery, RoleStillUsing, RoleSupporter} {
		if !r.Valid() {
			t.Errorf("%s should be a valid role", r)
		}
	}
	if RoleUnset.Valid() {
		t.Error("unset is not an assignable role")
	}
	if Role("admin").Valid() {
		t.Error("unknown roles should be rejected")
	}
}

func TestEnumValidation(t *testing.T) {
	if !MoodAnxious.Valid() || Mood("ecstatic").Valid() {
		t.Error("mood validation broken")
	}
	if !CravingAtRisk.Valid() || CravingLevel("extreme").Valid() {
		t.Error("craving level validation broken")
	}
	if !BadgeStreak30.Valid() || BadgeType("streak_100").Valid() {
		t.Error("badge type validation broken")
	}
	if !ConnectionDeclined.Valid() || ConnectionStatus("blocked").Valid() {
		t.Error("connection status validation broken")
	}
}

func TestBadgeCatalogCoversAllTypes(t *testing.T) {
	for _, bt := range []BadgeType{
		BadgeFirstLog, BadgeStreak3, BadgeStreak7,
		BadgeStreak14, BadgeStreak30, BadgeBraveryLog,
	} {
		info, ok := bt.Info()
		if !ok {
			t.Errorf("no catalog entry for %s", bt)
			continue
		}
		if info.Name == "" || info.Description == "" || info.Icon == "" {
			t.Errorf("incomplete catalog entry for %s: %+v", bt, info)
		}
	}
}

func TestEmojiAllowList(t *testing.T) {
	if !EmojiAllowed("") {
		t.Error("no emoji should always be allowed")
	}
	if !EmojiAllowed("💙") {
		t.Error("💙 is in the allow-set")
	}
	if EmojiAllowed("🍺") {
		t.Error("🍺 must not be allowed")
	}
}
