package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-user-auth-api/config"
	"github.com/oksasatya/go-user-auth-api/pkg/helpers"
)

func TestRun_ShortPasswordReturnsError(t *testing.T) {
	cfg := config.Load()
	var out bytes.Buffer

	err := run(cfg, helpers.NewDiscardLogger(), []string{"-email", "admin@example.com", "-password", "abc"}, strings.NewReader(""), &out)
	assert.EqualError(t, err, "password must have at least 5 characters")
}

func TestRun_MinimumLengthNeverBelowFive(t *testing.T) {
	cfg := config.Load()
	cfg.MinPasswordLength = 1

	err := run(cfg, helpers.NewDiscardLogger(), []string{"-email", "admin@example.com", "-password", "abcd"}, strings.NewReader(""), &bytes.Buffer{})
	assert.EqualError(t, err, "password must have at least 5 characters")
}

func TestRun_PromptsForEmail(t *testing.T) {
	cfg := config.Load()
	var out bytes.Buffer

	err := run(cfg, helpers.NewDiscardLogger(), []string{"-password", "abc"}, strings.NewReader("admin@example.com\n"), &out)
	assert.Error(t, err)
	assert.Contains(t, out.String(), "Email: ")
}

func TestRun_UnknownFlag(t *testing.T) {
	err := run(config.Load(), helpers.NewDiscardLogger(), []string{"-nope"}, strings.NewReader(""), &bytes.Buffer{})
	assert.Error(t, err)
}
