package dto

// RegisterRequest mirrors the registration form.
type RegisterRequest struct {
	Name        string `json:"name" validate:"required"`
	Surname     string `json:"surname" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=5"`
	Gender      string `json:"gender" validate:"required,oneof=Male Female NonBinary Other"`
	Title       string `json:"title" validate:"required,oneof=Mr Mrs Ms Dr Prof Other"`
	Ethnicity   string `json:"ethnicity" validate:"required,oneof=White Mixed Asian Black Other"`
	Province    string `json:"province" validate:"required,oneof=Mpumalanga KwaZuluNatal FreeState Gauteng Limpopo NorthWest NorthernCape WesternCape EasternCape Unknown"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	IDNumber    string `json:"idNumber" validate:"required,len=13,numeric"`
	PhoneNumber string `json:"phoneNumber" validate:"required,len=10,numeric"`
	Address     string `json:"address" validate:"required"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest starts the password recovery flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyOTPRequest submits the emailed one-time code.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// ResetPasswordRequest completes the recovery flow.
type ResetPasswordRequest struct {
	ResetToken string `json:"resetToken" validate:"required"`
	Password   string `json:"password" validate:"required,min=5"`
}

// LoginResponse returns the issued token pair.
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Message      string `json:"message"`
}

// MessageResponse is a bare acknowledgment.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse is the public shape of an account.
type UserResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	Gender      string `json:"gender"`
	Title       string `json:"title"`
	Ethnicity   string `json:"ethnicity"`
	Province    string `json:"province"`
	DateOfBirth string `json:"dateOfBirth"`
	IDNumber    string `json:"idNumber"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Role        string `json:"role"`
	Status      string `json:"status"`
}
