package email

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worthtrust/market-api/internal/config"
)

func TestVerificationTemplate(t *testing.T) {
	t.Parallel()

	var body bytes.Buffer
	err := verificationTemplate.Execute(&body, VerificationData{
		Email:     "jane@example.com",
		GivenName: "jane",
		VerifyURL: "https://api.example.com/api/verifyemail/sometoken",
	})
	require.NoError(t, err)

	rendered := body.String()
	assert.Contains(t, rendered, "Hi jane,")
	assert.Contains(t, rendered, `href="https://api.example.com/api/verifyemail/sometoken"`)
}

func TestVerificationTemplate_EscapesHTML(t *testing.T) {
	t.Parallel()

	var body bytes.Buffer
	err := verificationTemplate.Execute(&body, VerificationData{
		GivenName: "<script>alert(1)</script>",
		VerifyURL: "https://api.example.com/api/verifyemail/sometoken",
	})
	require.NoError(t, err)

	assert.NotContains(t, body.String(), "<script>")
}

func TestNewSMTPNotifier(t *testing.T) {
	t.Parallel()

	n := NewSMTPNotifier(config.SMTPConfig{
		Host: "smtp.example.com",
		Port: 587,
		From: "noreply@example.com",
	}, nil)

	require.NotNil(t, n)
	assert.Equal(t, "noreply@example.com", n.from)
	assert.NotNil(t, n.dialer)
	assert.NotNil(t, n.logger)
}
