package model

import "testing"

func TestSettingsMerged(t *testing.T) {
	stored := Settings{
		"auto_delete_time": 120,
		"custom_bot_key":   "xyz", // bot-owned key, unknown to the panel
	}

	merged := stored.Merged()
	if merged["auto_delete_time"] != 120 {
		t.Fatalf("stored value must win, got %v", merged["auto_delete_time"])
	}
	if merged["fsub_mode"] != true {
		t.Fatal("missing keys must fall back to defaults")
	}
	if merged["custom_bot_key"] != "xyz" {
		t.Fatal("unknown keys must be preserved")
	}
	if _, ok := stored["fsub_mode"]; ok {
		t.Fatal("Merged must not mutate the receiver")
	}
}

func TestNilSettingsMerged(t *testing.T) {
	var stored Settings

	merged := stored.Merged()
	if len(merged) != len(DefaultSettings()) {
		t.Fatal("nil settings must resolve to pure defaults")
	}
}

func TestPermissionsMerged(t *testing.T) {
	stored := Permissions{"can_broadcast": false, "can_manage_fsub": true}

	merged := stored.Merged()
	if merged["can_broadcast"] {
		t.Fatal("stored override must win")
	}
	if !merged["can_manage_fsub"] {
		t.Fatal("stored grant must win")
	}
	if !merged["can_ban"] {
		t.Fatal("missing keys must fall back to defaults")
	}
}
