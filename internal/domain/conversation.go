package domain

import "time"

type Conversation struct {
	ID             uint      `json:"id"`
	ContestID      uint      `json:"contestId"`
	AuthorID       uint      `json:"authorId"`
	ParticipantIDs []uint    `json:"participantIds"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (c Conversation) HasParticipant(userID uint) bool {
	if c.AuthorID == userID {
		return true
	}
	for _, id := range c.ParticipantIDs {
		if id == userID {
			return true
		}
	}

	return false
}

type Message struct {
	ID             uint      `json:"id"`
	ConversationID uint      `json:"conversationId"`
	SenderID       uint      `json:"senderId"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"createdAt"`
}
