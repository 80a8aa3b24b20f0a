package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createUserRequest struct {
	Username string   `json:"username"  validate:"required,min=3"`
	Password string   `json:"password"  validate:"required,min=8"`
	Email    string   `json:"email"     validate:"omitempty,email"`
	FullName string   `json:"full_name" validate:"required"`
	Roles    []string `json:"roles"`
}

type assignRolesRequest struct {
	Username string   `json:"username" validate:"required"`
	Roles    []string `json:"roles"`
}

type editUserProfileRequest struct {
	ID       string `json:"id"        validate:"required"`
	Username string `json:"username"`
	Email    string `json:"email"     validate:"omitempty,email"`
	FullName string `json:"full_name"`
}

type createRoleRequest struct {
	Name string `json:"name" validate:"required"`
}

type editRoleRequest struct {
	ID   string `json:"id"   validate:"required"`
	Name string `json:"name" validate:"required"`
}

// --- Response types ---

type createdResponse struct {
	ID string `json:"id"`
}

type affectedResponse struct {
	Affected int64 `json:"affected"`
}
