package models

// ConsumeDirective is the typed command an assistant reply may carry when the
// user reports having used something ("I used 2 eggs"). It is forwarded to the
// consumption engine as a soft, best-effort operation.
type ConsumeDirective struct {
	Item     string  `json:"item"`
	Quantity float64 `json:"quantity"`
}

// ConsumeOutcome summarizes the effect of a consume operation. Matched is
// false when the fuzzy lookup found nothing; that is not an error.
type ConsumeOutcome struct {
	Matched   bool    `json:"matched"`
	ItemID    string  `json:"itemId,omitempty"`
	ItemName  string  `json:"itemName,omitempty"`
	Remaining float64 `json:"remaining"`
	Unit      string  `json:"unit,omitempty"`
}

// AssistantReply is what the chat endpoint returns to the UI.
type AssistantReply struct {
	Reply    string          `json:"reply"`
	Consumed *ConsumeOutcome `json:"consumed,omitempty"`
}
