// Package dto defines the wire types for the CaboAi AI service API.
package dto

// GenerateEmailRequest is the request body for POST /generate-email.
type GenerateEmailRequest struct {
	EmailContent   string `json:"email_content"`
	ConversationID string `json:"conversation_id,omitempty"`
	Tone           string `json:"tone,omitempty"`
	Industry       string `json:"industry,omitempty"`
	Language       string `json:"language,omitempty"`
}

// GenerateEmailResponse is the AI service's reply. Fields beyond these
// are ignored; the service is treated as an opaque HTTP dependency.
type GenerateEmailResponse struct {
	Response   string `json:"response"`
	Tone       string `json:"tone"`
	Industry   string `json:"industry"`
	Language   string `json:"language"`
	TokensUsed int    `json:"tokens_used"`
	Model      string `json:"model"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}
