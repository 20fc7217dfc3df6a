package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadKB(t *testing.T) *KnowledgeBase {
	t.Helper()
	kb, err := LoadKnowledgeBase()
	require.NoError(t, err)
	require.NotEmpty(t, kb.StudioName)
	require.NotEmpty(t, kb.Contact.Phone)
	return kb
}

func TestLocalReplyAppointmentKeyword(t *testing.T) {
	kb := loadKB(t)

	reply, ok := kb.LocalReply("I want to book an appointment for Friday")
	require.True(t, ok, "appointment questions must be answered locally")
	assert.Contains(t, reply, kb.Contact.Phone[0])
	assert.Contains(t, reply, kb.Contact.Address)
}

func TestLocalReplyContactKeyword(t *testing.T) {
	kb := loadKB(t)

	reply, ok := kb.LocalReply("What is your phone number?")
	require.True(t, ok)
	assert.Contains(t, reply, kb.StudioName)
	assert.Contains(t, reply, kb.Contact.Phone[0])
}

func TestLocalReplyServicesKeyword(t *testing.T) {
	kb := loadKB(t)

	reply, ok := kb.LocalReply("which services do you offer")
	require.True(t, ok)
	for _, s := range kb.Services.Services[:3] {
		assert.Contains(t, reply, s)
	}
}

func TestLocalReplySpecificService(t *testing.T) {
	kb := loadKB(t)

	reply, ok := kb.LocalReply("do you do gel-x nails?")
	require.True(t, ok)
	assert.True(t, strings.Contains(strings.ToLower(reply), "gel-x"), "reply should mention the matched service: %s", reply)
}

func TestLocalReplyNoMatch(t *testing.T) {
	kb := loadKB(t)

	_, ok := kb.LocalReply("tell me about the weather in Paris")
	assert.False(t, ok, "unrelated questions must fall through to the model")
}

func TestFallbackReplyContainsContact(t *testing.T) {
	kb := loadKB(t)

	reply := kb.FallbackReply()
	assert.Contains(t, reply, kb.Contact.Phone[0])
	assert.Contains(t, reply, kb.Contact.Address)
}
