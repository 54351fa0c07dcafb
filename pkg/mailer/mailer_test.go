package mailer_test

import (
	"testing"

	"flock/pkg/mailer"

	"github.com/stretchr/testify/assert"
)

func TestWelcomeBody(t *testing.T) {
	body := mailer.WelcomeBody("Jean", "Dupont", "jean@example.com", "password123")

	assert.Contains(t, body, "Hello Jean Dupont")
	assert.Contains(t, body, "Email: jean@example.com")
	assert.Contains(t, body, "Password: password123")
}
