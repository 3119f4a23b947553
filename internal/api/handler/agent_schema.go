package handler

// Form payloads. Field names follow the agent-facing form inputs, not the
// domain model; the handler maps between the two.

type registerRequest struct {
	Agentname     string `form:"agentname"     validate:"required"`
	Agentemail    string `form:"agentemail"    validate:"required,email"`
	Agentpassword string `form:"agentpassword" validate:"required"`
	Agentid       string `form:"agentid"`
	Agency        string `form:"agency"`
	Phone         string `form:"phone"`
}

type updateProfileRequest struct {
	Agentname  string `form:"agentname"  validate:"required"`
	Agentemail string `form:"agentemail" validate:"required,email"`
	Agentid    string `form:"agentid"`
	Phone      string `form:"phone"`
	Agency     string `form:"agency"`
	Bio        string `form:"bio"`
}

type changePasswordRequest struct {
	CurrentPassword string `form:"currentPassword" validate:"required"`
	NewPassword     string `form:"newPassword"     validate:"required"`
}

type loginRequest struct {
	Email    string `form:"email"    validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// View data passed to the HTML templates.

type pageView struct {
	Agentname string
}

type profileView struct {
	Agentname      string
	Agentemail     string
	Agentid        string
	Agency         string
	Phone          string
	Bio            string
	SuccessMessage string
	ErrorMessage   string
}

type loginView struct {
	ErrorMessage string
}
