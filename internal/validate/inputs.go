package validate

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/FaranAlam/faran-portfolio/internal/models"
)

type SubscribeInput struct {
	Email string `json:"email"`
}

// Normalize lower-cases the email so duplicates are detected case-insensitively.
func (in *SubscribeInput) Normalize() {
	in.Email = NormalizeEmail(in.Email)
}

func (in SubscribeInput) Validate() error {
	return toValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Email, emailRulesMax(255)...),
	))
}

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (in *ContactInput) Sanitize() {
	in.Name = Sanitize(in.Name, ContactNameMax)
	in.Email = NormalizeEmail(Sanitize(in.Email, ContactEmailMax))
	in.Subject = Sanitize(in.Subject, ContactSubjectMax)
	in.Message = Sanitize(in.Message, ContactMessageMax)
}

func (in ContactInput) Validate() error {
	return toValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("name is required")),
		validation.Field(&in.Email, emailRules...),
		validation.Field(&in.Message,
			validation.Required.Error("message is required"),
			validation.RuneLength(ContactMessageMin, 0).Error("message must be at least 10 characters"),
		),
	))
}

type CommentInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Comment string `json:"comment"`
}

func (in *CommentInput) Sanitize() {
	in.Name = Sanitize(in.Name, CommentNameMax)
	in.Email = NormalizeEmail(Sanitize(in.Email, CommentEmailMax))
	in.Comment = Sanitize(in.Comment, CommentTextMax)
}

func (in CommentInput) Validate() error {
	return toValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("name is required")),
		validation.Field(&in.Email, emailRules...),
		validation.Field(&in.Comment, validation.Required.Error("comment is required")),
	))
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in LoginInput) Validate() error {
	return toValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Email, emailRules...),
		validation.Field(&in.Password, validation.Required.Error("password is required")),
	))
}

// ValidatePassword enforces the stored-password policy. bcrypt ignores
// anything past 72 bytes, so longer passwords are refused.
func ValidatePassword(password string) error {
	err := validation.Validate(password,
		validation.Required.Error("password is required"),
		validation.Length(6, 72).Error("password must be between 6 and 72 characters"),
	)
	if err != nil {
		return models.NewValidationError("password: " + err.Error())
	}
	return nil
}

type AdminInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (in *AdminInput) Normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if in.Role == "" {
		in.Role = models.RoleAdmin
	}
}

func (in AdminInput) Validate() error {
	return toValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Username,
			validation.Required.Error("username is required"),
			validation.RuneLength(4, 50).Error("username must be between 4 and 50 characters"),
		),
		validation.Field(&in.Email, emailRulesMax(255)...),
		validation.Field(&in.Password,
			validation.Required.Error("password is required"),
			validation.Length(6, 72).Error("password must be between 6 and 72 characters"),
		),
		validation.Field(&in.Name,
			validation.Required.Error("name is required"),
			validation.RuneLength(0, 120),
		),
		validation.Field(&in.Role, validation.NewStringRule(models.IsValidRole, "role must be admin or super-admin")),
	))
}

type ContactStatusInput struct {
	Status string `json:"status"`
}

func (in ContactStatusInput) Validate() error {
	return toValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Status,
			validation.Required.Error("status is required"),
			validation.In(models.ContactUnread, models.ContactRead, models.ContactReplied, models.ContactArchived).
				Error("status must be one of unread, read, replied, archived"),
		),
	))
}
