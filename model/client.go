package model

// Client is an entry of the client list. Invoices keep their own copy.
type Client struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// NewClient returns an empty client with the given id.
func NewClient(id string) Client {
	return Client{ID: id}
}
