package service

import (
	"log/slog"

	"github.com/aperturelabs/alms/internal/domain"
	"github.com/aperturelabs/alms/internal/metrics"
)

type ContentCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(stored string) (string, error)
}

// MessageGuard encrypts message content on write and decrypts it on read.
// Reads never fail: a value that does not decrypt is returned as stored so
// one corrupt row cannot break a whole conversation.
type MessageGuard struct {
	cipher  ContentCipher
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewMessageGuard(cipher ContentCipher, m *metrics.Metrics, logger *slog.Logger) *MessageGuard {
	return &MessageGuard{
		cipher:  cipher,
		metrics: m,
		logger:  logger,
	}
}

func (g *MessageGuard) Protect(plaintext string) (string, error) {
	return g.cipher.Encrypt(plaintext)
}

func (g *MessageGuard) Reveal(stored string) string {
	plaintext, err := g.cipher.Decrypt(stored)
	if err != nil {
		g.metrics.DecryptFailed()
		g.logger.Warn("failed to decrypt stored message, returning it verbatim",
			"error", err,
			"length", len(stored),
		)
		return stored
	}
	return plaintext
}

func (g *MessageGuard) RevealAll(stored []string) []string {
	out := make([]string, len(stored))
	for i, s := range stored {
		out[i] = g.Reveal(s)
	}
	return out
}

// RevealMessages returns a copy of messages with content decrypted.
func (g *MessageGuard) RevealMessages(messages []domain.Message) []domain.Message {
	out := make([]domain.Message, len(messages))
	for i, m := range messages {
		m.Content = g.Reveal(m.Content)
		out[i] = m
	}
	return out
}
