package models

type Subscription struct {
	ID        string `json:"_id"`
	Author    User   `json:"author"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// SubscriptionStatus is the normalized answer to "am I subscribed to
// this author". The server response shape varies; the client always
// reduces it to this.
type SubscriptionStatus struct {
	Subscribed bool `json:"subscribed"`
}
