package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateExpertRequest struct {
	Name string `json:"name"`
}

type LoginRequest struct {
	Name       string `json:"name"`
	AccessCode string `json:"access_code"`
}

type ExpertResponse struct {
	ExpertID   string `json:"id"`
	Name       string `json:"name"`
	AccessCode string `json:"access_code,omitempty"`
	Role       string `json:"role"`
	CreatedAt  string `json:"created_at"`
}

type LoginResponse struct {
	Expert ExpertResponse `json:"expert"`
	Token  string         `json:"token"`
}

type ExpertListResponse struct {
	Items []ExpertResponse `json:"items"`
}
