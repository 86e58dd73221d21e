package lib

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithSuffix(t *testing.T) {
	os.Setenv("API_ENV", "local")
	defer os.Unsetenv("API_ENV")
	assert.Equal(t, "PaymentOperationUpdates-local", WithSuffix("PaymentOperationUpdates"))

	os.Setenv("API_ENV", "production")
	assert.Equal(t, "OutboundEmails-production", WithSuffix("OutboundEmails"))

	os.Unsetenv("API_ENV")
	assert.Equal(t, "OutboundEmails", WithSuffix("OutboundEmails"))
}
