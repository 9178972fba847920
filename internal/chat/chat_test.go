package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testResponder() *Responder {
	return NewResponder([]Rule{
		{Keyword: "delivery", Reply: "ships in 2-5 days"},
		{Keyword: "payment", Reply: "card or cash"},
	}, "default reply")
}

func TestRespond_KeywordMatch(t *testing.T) {
	r := testResponder()

	assert.Equal(t, "ships in 2-5 days", r.Respond("How long does delivery take?"))
	assert.Equal(t, "card or cash", r.Respond("what PAYMENT options do you have"))
}

func TestRespond_FirstMatchingRuleWins(t *testing.T) {
	r := testResponder()

	assert.Equal(t, "ships in 2-5 days", r.Respond("delivery and payment?"))
}

func TestRespond_Default(t *testing.T) {
	r := testResponder()

	assert.Equal(t, "default reply", r.Respond("do you sell espresso machines"))
	assert.Equal(t, "default reply", r.Respond(""))
}

func TestRespondToConversation(t *testing.T) {
	r := testResponder()

	reply := r.RespondToConversation([]Message{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello! how can I help?"},
		{Role: "user", Content: "tell me about delivery"},
	})

	assert.Equal(t, "ships in 2-5 days", reply)
}

func TestRespondToConversation_NoUserMessage(t *testing.T) {
	r := testResponder()

	assert.Equal(t, "default reply", r.RespondToConversation(nil))
	assert.Equal(t, "default reply", r.RespondToConversation([]Message{
		{Role: "assistant", Content: "hello"},
	}))
}

func TestDefaultRules_CoverCommonQuestions(t *testing.T) {
	r := NewResponder(DefaultRules(), DefaultReply)

	assert.NotEqual(t, DefaultReply, r.Respond("when does delivery arrive?"))
	assert.NotEqual(t, DefaultReply, r.Respond("which payment methods do you take"))
	assert.NotEqual(t, DefaultReply, r.Respond("can I return this?"))
	assert.Equal(t, DefaultReply, r.Respond("asdf"))
}
