package backend

// Wire types for the food-ordering API. Documents are rendered as-is by
// the view layer; only the fields the storefront touches are typed.

// Address is the delivery address attached to profiles and orders.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Phone   string `json:"phone,omitempty"`
}

// User is the authenticated identity returned by the API.
type User struct {
	ID      string  `json:"_id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone,omitempty"`
	Address Address `json:"address"`
	IsAdmin bool    `json:"isAdmin"`
}

// Product is a menu item document.
type Product struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	IsAvailable bool    `json:"isAvailable,omitempty"`
}

// OrderItem is one purchased line inside an order payload.
type OrderItem struct {
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderInput is the checkout payload.
type OrderInput struct {
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	DeliveryAddress Address     `json:"deliveryAddress"`
	Notes           string      `json:"notes,omitempty"`
	PaymentMethod   string      `json:"paymentMethod"`
}

// Order is an order document as returned by the API.
type Order struct {
	ID              string      `json:"_id"`
	User            string      `json:"user,omitempty"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	DeliveryAddress Address     `json:"deliveryAddress"`
	Notes           string      `json:"notes,omitempty"`
	PaymentMethod   string      `json:"paymentMethod"`
	Status          string      `json:"status"`
	CreatedAt       string      `json:"createdAt,omitempty"`
}

// ReviewInput is the product review payload.
type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput is the new-account payload.
type RegisterInput struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    string  `json:"phone,omitempty"`
	Address  Address `json:"address"`
}

// ProfilePatch is a partial identity update.
type ProfilePatch struct {
	Name    string   `json:"name,omitempty"`
	Phone   string   `json:"phone,omitempty"`
	Address *Address `json:"address,omitempty"`
}

// ProductInput is the admin create/update payload.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category,omitempty"`
	IsAvailable bool    `json:"isAvailable"`
}

// UserPatch is the admin user update payload.
type UserPatch struct {
	Name    string `json:"name,omitempty"`
	IsAdmin *bool  `json:"isAdmin,omitempty"`
}

// AuthResult is the login/register response.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// PaymentMethodCashOnDelivery is the only supported payment method.
const PaymentMethodCashOnDelivery = "Cash on Delivery"
