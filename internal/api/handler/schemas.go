package handler

import "github.com/stagecrew/crew-scheduler/internal/core/domain"

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string          `json:"token,omitempty"`
	User  *domain.Profile `json:"user,omitempty"`
}

type setPasswordRequest struct {
	Type     string `json:"type"     validate:"required,oneof=invite reset"`
	Token    string `json:"token"    validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// --- Assignments ---

type assignRequest struct {
	EmployeeIDs []string `json:"employee_ids" validate:"required,min=1,dive,uuid"`
}

type assignResponse struct {
	OK            bool                     `json:"ok"`
	Added         []string                 `json:"added"`
	Sent          int                      `json:"sent"`
	Notifications string                   `json:"notifications"`
	Results       []domain.DispatchOutcome `json:"results,omitempty"`
}

// --- Notifications ---

type shiftAssignedRequest struct {
	ShiftID     string   `json:"shift_id"     validate:"required,uuid"`
	EmployeeIDs []string `json:"employee_ids" validate:"required,min=1,dive,uuid"`
}

type fieldChangeRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type shiftUpdatedRequest struct {
	ShiftID string                        `json:"shift_id" validate:"required,uuid"`
	Changes map[string]fieldChangeRequest `json:"changes"  validate:"required,min=1"`
}

type notifyResponse struct {
	Success   bool                     `json:"success"`
	Sent      int                      `json:"sent"`
	Failed    int                      `json:"failed"`
	Duplicate bool                     `json:"duplicate,omitempty"`
	Error     string                   `json:"error,omitempty"`
	Results   []domain.DispatchOutcome `json:"results,omitempty"`
}

// --- Workers ---

type createWorkerRequest struct {
	Email       string   `json:"email"        validate:"required,email"`
	FullName    string   `json:"full_name"    validate:"required"`
	Phone       string   `json:"phone"`
	Role        string   `json:"role"         validate:"omitempty,oneof=admin employee"`
	PayRate     *float64 `json:"pay_rate"     validate:"omitempty,gte=0"`
	SMSOptIn    bool     `json:"sms_opt_in"`
	Password    string   `json:"password"     validate:"omitempty,min=8"`
	SendInvite  bool     `json:"send_invite"`
	RedirectURL string   `json:"redirect_url" validate:"omitempty,url"`
}

type workerResponse struct {
	domain.Profile
	InviteSent  bool `json:"invite_sent"`
	Reactivated bool `json:"reactivated"`
}

// errorResponse documents the envelope rendered by the API error handler.
type errorResponse struct {
	Error string `json:"error"`
}
