package dto

// BusinessSignUpRequest registers a business login for the signed-in user.
type BusinessSignUpRequest struct {
	BusinessName string `json:"business_name" form:"business_name" binding:"required,max=120"`
	Email        string `json:"email" form:"email" binding:"required,email"`
	Password     string `json:"password" form:"password" binding:"required,min=8"`
}

// BusinessSignInRequest opens a business for the signed-in user.
type BusinessSignInRequest struct {
	BusinessName string `json:"business_name" form:"business_name" binding:"required"`
	Password     string `json:"password" form:"password" binding:"required"`
}

// BusinessAuthResponse is returned after business sign-up or sign-in.
type BusinessAuthResponse struct {
	BusinessName   string `json:"business_name"`
	OrganizationID string `json:"organization_id,omitempty"`
	Verified       bool   `json:"verified"`
	Message        string `json:"message,omitempty"`
}

// SignInRequest starts a session from an auth-provider access token.
type SignInRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}
