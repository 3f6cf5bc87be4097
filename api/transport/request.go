package transport

// SignupRequest registers a new account.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninRequest authenticates an existing account.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TaskCreateRequest creates a task; the owner comes from the verified claims,
// never from the body.
type TaskCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TaskUpdateRequest replaces a task's mutable fields in full.
type TaskUpdateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}
