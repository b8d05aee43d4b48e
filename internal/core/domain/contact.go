package domain

import "time"

type OrderType string

const (
	OrderTypeGeneral  OrderType = "general"
	OrderTypeCustom   OrderType = "custom"
	OrderTypeWedding  OrderType = "wedding"
	OrderTypeCatering OrderType = "catering"
	OrderTypeFeedback OrderType = "feedback"
)

func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeGeneral, OrderTypeCustom, OrderTypeWedding, OrderTypeCatering, OrderTypeFeedback:
		return true
	}
	return false
}

type ContactForm struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	OrderType OrderType `json:"orderType"`
	Message   string    `json:"message"`
}

// NewContactForm returns the blank form the contact view starts with.
func NewContactForm() ContactForm {
	return ContactForm{OrderType: OrderTypeGeneral}
}

type Submission struct {
	ContactForm
	Timestamp time.Time `json:"timestamp"`
	ID        string    `json:"id"`
}
