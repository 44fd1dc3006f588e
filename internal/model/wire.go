package model

// Request and response payloads exchanged with the backend. These are wire
// DTOs only: built fresh per call, never retained as domain state.

// UserRegistration is the body of POST auth/register. The backend names the
// password field passwordHash even though the client sends it in the clear
// over TLS; the field name is part of the contract.
type UserRegistration struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// UserLogin is the body of POST auth/login.
type UserLogin struct {
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// RegistrationResponse carries the confirmation message for a registration.
type RegistrationResponse struct {
	Message string `json:"message"`
}

// AuthUser is the user block inside a login response. Dates arrive as
// strings and are parsed by UserFromAuth.
type AuthUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	LastLogin string `json:"lastLogin"`
}

// AuthResponse is the body of a successful login.
type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// AIResponse is the body of a successful prompt call.
type AIResponse struct {
	Response string `json:"response"`
	Model    string `json:"model,omitempty"`
	Domain   string `json:"domain,omitempty"`
}
