package entity

type AuthLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthTokenResponse is returned after a successful login.
type AuthTokenResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	User        AccountDetail `json:"user"`
}

type AuthRegisterRequest struct {
	Name                 string `json:"name" binding:"required,min=2"`
	Username             string `json:"username" binding:"required,min=2"`
	Email                string `json:"email" binding:"required,email"`
	Password             string `json:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Otp   string `json:"otp" binding:"required"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email                string `json:"email" binding:"required,email"`
	Otp                  string `json:"otp" binding:"required"`
	Password             string `json:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

type ChangeEmailRequest struct {
	AccountPassword string `json:"account_password" binding:"required"`
	NewEmail        string `json:"new_email" binding:"required,email"`
}

type ChangePasswordRequest struct {
	AccountPassword      string `json:"account_password" binding:"required"`
	NewPassword          string `json:"new_password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=NewPassword"`
}
