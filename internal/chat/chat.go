// Package chat implements the storefront's scripted chat responder: an
// ordered keyword lookup table injected at construction, with a default
// reply when nothing matches.
package chat

import "strings"

// Rule maps a lowercase keyword phrase to a canned reply. Rules are checked
// in order; the first whose keyword appears in the message wins.
type Rule struct {
	Keyword string
	Reply   string
}

type Responder struct {
	rules        []Rule
	defaultReply string
}

func NewResponder(rules []Rule, defaultReply string) *Responder {
	return &Responder{rules: rules, defaultReply: defaultReply}
}

// Respond answers a single user message.
func (r *Responder) Respond(message string) string {
	lower := strings.ToLower(strings.TrimSpace(message))

	for _, rule := range r.rules {
		if strings.Contains(lower, rule.Keyword) {
			return rule.Reply
		}
	}

	return r.defaultReply
}

// Message is one turn of a chat conversation as sent by the widget.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RespondToConversation answers the last user message in the conversation,
// or falls back to the default reply if there is none.
func (r *Responder) RespondToConversation(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return r.Respond(messages[i].Content)
		}
	}
	return r.defaultReply
}

// DefaultRules is the stock Sunleaf support table.
func DefaultRules() []Rule {
	return []Rule{
		{
			Keyword: "how do i order",
			Reply:   "To place an order:\n1. Add products to your cart\n2. Open the cart\n3. Review your items\n4. Press Checkout\n5. Fill in shipping and contact details\n\nI'm here if anything comes up!",
		},
		{
			Keyword: "delivery",
			Reply:   "Delivery takes 2-5 business days. Shipping is free for orders over 100.00, otherwise a flat 8.00 applies. We'll email you a tracking number once your parcel ships.",
		},
		{
			Keyword: "payment",
			Reply:   "We accept card payments online (Visa, Mastercard) and cash or card on delivery. Pick whichever works for you at checkout.",
		},
		{
			Keyword: "return",
			Reply:   "Returns are accepted within 14 days of delivery. Keep the original packaging, email us your order number and the reason, and we'll send instructions. Refunds go out within 5-7 days.",
		},
		{
			Keyword: "products",
			Reply:   "We stock single-origin coffees, loose-leaf teas, and handcrafted sweets. Browse the catalog by category or search by name - everything ships fresh.",
		},
	}
}

// DefaultReply is returned when no rule matches.
const DefaultReply = "Thanks for reaching out! I can help with placing orders, delivery and payment options, returns, and our products. What would you like to know?"
