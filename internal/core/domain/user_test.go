package domain

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		err  error
	}{
		{"USER", RoleUser, nil},
		{"admin", RoleAdmin, nil},
		{" Admin ", RoleAdmin, nil},
		{"", "", ErrInvalidRole},
		{"SUPERUSER", "", ErrInvalidRole},
	}
	for _, tc := range cases {
		got, err := ParseRole(tc.in)
		if !errors.Is(err, tc.err) {
			t.Fatalf("ParseRole(%q): expected error %v, got %v", tc.in, tc.err, err)
		}
		if got != tc.want {
			t.Fatalf("ParseRole(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestUser_EffectivePreferences(t *testing.T) {
	u := &User{}
	if got := u.EffectivePreferences(); got != DefaultPreferences() {
		t.Fatalf("expected defaults, got %+v", got)
	}

	custom := Preferences{Language: "es", Currency: "EUR"}
	u.Preferences = &custom
	if got := u.EffectivePreferences(); got != custom {
		t.Fatalf("expected custom prefs, got %+v", got)
	}
}

func TestPreferencesPatch_Apply(t *testing.T) {
	off := false
	base := Preferences{Language: "en", Currency: "USD", Notifications: true}

	if got := (PreferencesPatch{Language: "es"}).Apply(base); got != (Preferences{Language: "es", Currency: "USD", Notifications: true}) {
		t.Fatalf("omitted notifications must keep the current value, got %+v", got)
	}
	if got := (PreferencesPatch{Notifications: &off}).Apply(base); got.Notifications || got.Language != "en" {
		t.Fatalf("expected notifications off with language kept, got %+v", got)
	}
}
