package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"travelgo/internal/domain"
	"travelgo/internal/domain/models"
	"travelgo/internal/mailer"
	"travelgo/internal/repositories"
	"travelgo/internal/utils"
)

// AuthService issues and refreshes JWT sessions for admins and
// travelers. A login email is resolved against admins first, then
// travelers.
type AuthService struct {
	Admins    repositories.AdminRepository
	Travelers repositories.TravelerRepository

	JWTSecret    []byte
	JWTExpiresIn time.Duration
	Mail         mailer.Sender
	RequestID    string
}

// AuthUser is the authenticated principal echoed back to clients.
type AuthUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// LoginResult pairs the signed token with the resolved user.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      AuthUser  `json:"user"`
}

// Login authenticates by email and password. Wrong email and wrong
// password yield the same unauthorized error so the response does not
// leak which accounts exist. Inactive accounts are refused even with
// valid credentials.
func (s AuthService) Login(email, password string) (LoginResult, error) {
	user, hash, err := s.findByEmail(email)
	if err != nil {
		if domain.IsNotFound(err) {
			return LoginResult{}, domain.UnauthorizedError{Msg: "invalid email or password"}
		}
		return LoginResult{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return LoginResult{}, domain.UnauthorizedError{Msg: "invalid email or password"}
	}
	if !user.IsActive {
		return LoginResult{}, domain.ForbiddenError{Msg: "account is not active"}
	}

	result, err := s.issueToken(user)
	if err != nil {
		return LoginResult{}, err
	}
	s.touchLastLogin(user)

	utils.LogEvent(s.RequestID, "auth", "login", "role="+user.Role+" user_id="+user.ID)
	return result, nil
}

func (s AuthService) findByEmail(email string) (AuthUser, string, error) {
	admin, hash, err := s.Admins.GetByEmail(email)
	if err == nil {
		return AuthUser{
			ID:       admin.AdminID,
			Name:     admin.Name,
			Email:    admin.Email,
			Role:     models.RoleAdmin,
			IsActive: admin.IsActive,
		}, hash, nil
	}
	if !domain.IsNotFound(err) {
		return AuthUser{}, "", err
	}

	traveler, hash, err := s.Travelers.GetByEmail(email)
	if err != nil {
		return AuthUser{}, "", err
	}
	return AuthUser{
		ID:       traveler.TravelerID,
		Name:     traveler.Name,
		Email:    traveler.Email,
		Role:     models.RoleTraveler,
		IsActive: traveler.IsActive,
	}, hash, nil
}

func (s AuthService) issueToken(user AuthUser) (LoginResult, error) {
	expiresAt := time.Now().Add(s.JWTExpiresIn)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  expiresAt.Unix(),
	})
	signed, err := token.SignedString(s.JWTSecret)
	if err != nil {
		return LoginResult{}, domain.InternalError{Msg: "failed to sign token", Err: err}
	}
	return LoginResult{Token: signed, ExpiresAt: expiresAt, User: user}, nil
}

func (s AuthService) touchLastLogin(user AuthUser) {
	var err error
	switch user.Role {
	case models.RoleAdmin:
		err = s.Admins.UpdateLastLogin(user.ID)
	case models.RoleTraveler:
		err = s.Travelers.UpdateLastLogin(user.ID)
	}
	if err != nil {
		utils.LogEvent(s.RequestID, "auth", "last_login", "update failed: "+err.Error())
	}
}

// CurrentUser resolves the principal behind a verified token.
func (s AuthService) CurrentUser(userID, role string) (AuthUser, error) {
	switch role {
	case models.RoleAdmin:
		admin, err := s.Admins.GetByID(userID)
		if err != nil {
			return AuthUser{}, err
		}
		return AuthUser{ID: admin.AdminID, Name: admin.Name, Email: admin.Email, Role: role, IsActive: admin.IsActive}, nil
	case models.RoleTraveler:
		traveler, err := s.Travelers.GetByID(userID)
		if err != nil {
			return AuthUser{}, err
		}
		return AuthUser{ID: traveler.TravelerID, Name: traveler.Name, Email: traveler.Email, Role: role, IsActive: traveler.IsActive}, nil
	}
	return AuthUser{}, domain.UnauthorizedError{Msg: "unknown role"}
}

// ChangePassword verifies the current password before storing a new
// hash. The new password must differ from the old one.
func (s AuthService) ChangePassword(userID, role, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return domain.ValidationError{Field: "new_password", Msg: "must be at least 8 characters"}
	}
	if currentPassword == newPassword {
		return domain.ValidationError{Field: "new_password", Msg: "must differ from the current password"}
	}

	user, hash, err := s.principalWithHash(userID, role)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(currentPassword)) != nil {
		return domain.UnauthorizedError{Msg: "current password is incorrect"}
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.InternalError{Err: err}
	}

	switch role {
	case models.RoleAdmin:
		err = s.Admins.UpdatePassword(userID, string(newHash))
	case models.RoleTraveler:
		err = s.Travelers.UpdatePassword(userID, string(newHash))
	}
	if err != nil {
		return err
	}

	if s.Mail != nil {
		subject, body := mailer.PasswordChangedMail(user.Name)
		if err := s.Mail.Send(user.Name, user.Email, subject, body); err != nil {
			utils.LogEvent(s.RequestID, "auth", "change_password", "notice email failed: "+err.Error())
		}
	}

	utils.LogEvent(s.RequestID, "auth", "change_password", "role="+role+" user_id="+user.ID)
	return nil
}

func (s AuthService) principalWithHash(userID, role string) (AuthUser, string, error) {
	user, err := s.CurrentUser(userID, role)
	if err != nil {
		return AuthUser{}, "", err
	}
	// Hashes are only exposed on email lookups.
	_, hash, err := s.findByEmail(user.Email)
	if err != nil {
		return AuthUser{}, "", err
	}
	return user, hash, nil
}
