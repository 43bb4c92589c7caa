package handler

// --- Request types ---

type createUserRequest struct {
	Email       string   `json:"email"        validate:"required,email"`
	Password    string   `json:"password"     validate:"required,min=8"`
	FirstName   string   `json:"first_name"   validate:"required"`
	LastName    string   `json:"last_name"    validate:"required"`
	PhoneNumber string   `json:"phone_number"`
	Address     string   `json:"address"`
	RoleIDs     []string `json:"role_ids"`
}

// updateUserRequest is a partial update; absent fields stay untouched.
type updateUserRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
}

type statusResponse struct {
	Message string `json:"message"`
}
