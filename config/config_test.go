package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "ALLOWED_DOMAIN", "DELIVERY_DELAY", "MIN_MESSAGE_LENGTH",
		"MIN_INTRO_LENGTH", "CODE_TTL", "ADMIN_PASSWORD", "REDIS_ADDR",
		"EXTRA_ALLOWED_EMAILS", "STORE_BACKEND",
	} {
		t.Setenv(k, "")
	}

	cfg := New()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, "ucsc.edu", cfg.Penpals.AllowedDomain)
	assert.Equal(t, 12*time.Hour, cfg.Penpals.DeliveryDelay)
	assert.Equal(t, 10, cfg.Penpals.MinMessageLen)
	assert.Equal(t, 20, cfg.Penpals.MinIntroLen)
	assert.Equal(t, 15*time.Minute, cfg.Penpals.CodeTTL)
	assert.Equal(t, "admin123", cfg.Admin.Password)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.Penpals.ExtraAllowed)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_BACKEND", "dynamo")
	t.Setenv("DELIVERY_DELAY", "30m")
	t.Setenv("MIN_MESSAGE_LENGTH", "25")
	t.Setenv("ADMIN_PASSWORD", "hunter2")

	cfg := New()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "dynamo", cfg.Store.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Penpals.DeliveryDelay)
	assert.Equal(t, 25, cfg.Penpals.MinMessageLen)
	assert.Equal(t, "hunter2", cfg.Admin.Password)
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("MIN_MESSAGE_LENGTH", "not-a-number")
	t.Setenv("DELIVERY_DELAY", "twelve hours")

	cfg := New()

	assert.Equal(t, 10, cfg.Penpals.MinMessageLen)
	assert.Equal(t, 12*time.Hour, cfg.Penpals.DeliveryDelay)
}

func TestExtraAllowedList(t *testing.T) {
	t.Setenv("EXTRA_ALLOWED_EMAILS", " Alum@Gmail.com ,, tester@example.org ")

	cfg := New()

	assert.Equal(t, []string{"alum@gmail.com", "tester@example.org"}, cfg.Penpals.ExtraAllowed)
}

func TestAdminEmailDefaultsToFrom(t *testing.T) {
	t.Setenv("EMAIL_FROM", "letters@ucsc.edu")
	t.Setenv("ADMIN_EMAIL", "")

	cfg := New()

	assert.Equal(t, "letters@ucsc.edu", cfg.Email.AdminEmail)
}
