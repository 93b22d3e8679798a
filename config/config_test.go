package config

import (
	stderrors "errors"
	"strings"
	"testing"

	"fernbot/errors"
)

func validConfig() *Config {
	return &Config{
		ChannelSecret:      "secret",
		ChannelAccessToken: "token",
		FirebaseProjectID:  "project",
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidateReportsEveryMissingKey(t *testing.T) {
	err := (&Config{}).Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want an error for an empty config")
	}
	if !stderrors.Is(err, errors.ErrNotConfigured) {
		t.Errorf("err = %v, want a not-configured error", err)
	}
	for _, key := range []string{"CHANNEL_SECRET", "CHANNEL_ACCESS_TOKEN", "FIREBASE_PROJECT_ID"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("err %q does not name %s", err, key)
		}
	}
}

func TestValidateSingleMissingKey(t *testing.T) {
	cfg := validConfig()
	cfg.FirebaseProjectID = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want an error")
	}
	if strings.Contains(err.Error(), "CHANNEL_SECRET") {
		t.Errorf("err %q names a key that is present", err)
	}
	if !strings.Contains(err.Error(), "FIREBASE_PROJECT_ID") {
		t.Errorf("err %q does not name the missing key", err)
	}
}
