package payload

type SignUpRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Birthday  string `json:"birthday"  validate:"required,datetime=2006-01-02"`
	Gender    string `json:"gender"    validate:"required,oneof=male female other"`
	Location  string `json:"location"  validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=8"`
}

type SignUpResponse struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

type VerifyAccountRequest struct {
	UserID           string `json:"userId"           validate:"required"`
	VerificationCode string `json:"verificationCode" validate:"required"`
}

type SignInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignInResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type SendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required,len=6"`
}

type ChangePasswordRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	Code        string `json:"code"        validate:"required,len=6"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}
