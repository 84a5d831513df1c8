// Package usecase implements the business logic for the chat feature.
package usecase

import "errors"

var (
	// ErrConversationNotFound is returned when a conversation does not
	// exist or belongs to another user. The two cases are not
	// distinguished to callers.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrUsageLimitExceeded is returned when the user has exhausted
	// their daily message quota.
	ErrUsageLimitExceeded = errors.New("daily message limit exceeded")

	// ErrGenerationFailed is returned when the reply generator could
	// not produce a response.
	ErrGenerationFailed = errors.New("reply generation failed")
)
