// Package dto defines data transfer objects for the chat feature's HTTP transport layer.
package dto

// ChatMessageReq represents the request body for the /chat/message endpoint.
// Tone, industry, and language are constrained to the values the
// generation prompts understand; empty means "use the default".
type ChatMessageReq struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversation_id" binding:"omitempty,uuid"`
	BusinessID     string `json:"business_id" binding:"omitempty,max=100"`
	Tone           string `json:"tone" binding:"omitempty,oneof=professional casual friendly"`
	Industry       string `json:"industry" binding:"omitempty,oneof=hospitality real_estate tourism restaurant"`
	Language       string `json:"language" binding:"omitempty,oneof=auto es en"`
}
