package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"scheduling/internal/access"
	"scheduling/internal/model"
	"scheduling/internal/repository"
	"scheduling/internal/validation"
	"scheduling/pkg/apperror"
)

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(user *model.User) (string, error)
}

// UserService defines the account operations: signup, login and user lookups.
type UserService interface {
	Signup(ctx context.Context, caller *access.Principal, body validation.Payload) (*AuthResponse, error)
	Login(ctx context.Context, body validation.Payload) (*AuthResponse, error)
	Me(ctx context.Context, caller access.Principal) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	// CreateAdmin seeds an account holding the elevated role.
	CreateAdmin(ctx context.Context, email, firstName, lastName, password string) (*model.User, error)
}

type userService struct {
	repo   repository.UserRepository
	tokens TokenIssuer
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository, tokens TokenIssuer) UserService {
	return &userService{repo: repo, tokens: tokens}
}

const invalidCredentials = "Invalid credentials"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var signupRules = []validation.Rule{
	validation.RequireTruthy("All fields (email, first_name, last_name, new_password) are required",
		"email", "first_name", "last_name", "new_password"),
	{
		Message: "Invalid email format",
		Check: func(p validation.Payload) bool {
			return emailPattern.MatchString(text(p, "email"))
		},
	},
	{
		Message: "Password must be at least 6 characters long",
		Check: func(p validation.Payload) bool {
			return utf8.RuneCountInString(text(p, "new_password")) >= 6
		},
	},
	{
		Message: "Roles must be an array",
		Check: func(p validation.Payload) bool {
			_, isList := p.Raw("roles").([]interface{})
			return isList || !p.Truthy("roles")
		},
	},
}

// Signup registers an account. Requested roles are only honoured for an elevated caller;
// everyone else signs up as a Member.
func (s *userService) Signup(ctx context.Context, caller *access.Principal, body validation.Payload) (*AuthResponse, error) {
	if err := validation.Validate(body, signupRules); err != nil {
		return nil, err
	}

	roles := []string{string(access.RoleMember)}
	if caller != nil && caller.Elevated() && body.Truthy("roles") {
		requested, err := parseRoles(body.Raw("roles").([]interface{}))
		if err != nil {
			return nil, err
		}
		roles = requested
	}

	user, err := s.register(ctx, text(body, "email"), text(body, "first_name"), text(body, "last_name"),
		text(body, "new_password"), roles, func(u *model.User) {
			u.Enabled = model.NewLooseBool(withDefault(validation.CoerceBinary(body.Raw("enabled")), true))
			u.SendWelcomeEmail = model.NewLooseBool(withDefault(validation.CoerceBinary(body.Raw("send_welcome_email")), false))
		})
	if err != nil {
		return nil, err
	}
	return s.authenticate(user)
}

func (s *userService) Login(ctx context.Context, body validation.Payload) (*AuthResponse, error) {
	if !body.Truthy("usr") || !body.Truthy("pwd") {
		return nil, apperror.BadInput("Username (usr) and password (pwd) are required")
	}

	user, err := s.repo.GetByEmail(ctx, text(body, "usr"))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.InvalidCredential(invalidCredentials)
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(text(body, "pwd"))); err != nil {
		return nil, apperror.InvalidCredential(invalidCredentials)
	}
	if disabled, ok := user.Enabled.Raw().(bool); ok && !disabled {
		return nil, apperror.InvalidCredential(invalidCredentials)
	}
	return s.authenticate(user)
}

func (s *userService) Me(ctx context.Context, caller access.Principal) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, caller.ID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) CreateAdmin(ctx context.Context, email, firstName, lastName, password string) (*model.User, error) {
	body := validation.Payload{
		"email":        email,
		"first_name":   firstName,
		"last_name":    lastName,
		"new_password": password,
	}
	if err := validation.Validate(body, signupRules); err != nil {
		return nil, err
	}
	return s.register(ctx, email, firstName, lastName, password,
		[]string{string(access.RoleAdmin), string(access.RoleMember)},
		func(u *model.User) {
			u.Enabled = model.NewLooseBool(true)
			u.SendWelcomeEmail = model.NewLooseBool(false)
		})
}

func (s *userService) register(ctx context.Context, email, firstName, lastName, password string, roles []string, apply func(*model.User)) (*model.User, error) {
	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, apperror.BadInput("User with this email already exists")
	}
	if !repository.IsNotFound(err) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	// Hash password automatically
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &model.User{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Password:  string(hashedPassword),
	}
	for _, r := range roles {
		user.Roles = append(user.Roles, model.UserRole{Role: r})
	}
	apply(user)

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) authenticate(user *model.User) (*AuthResponse, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResponse{Token: token, User: user}, nil
}

// parseRoles accepts either bare tags or {"role": tag} objects.
func parseRoles(list []interface{}) ([]string, error) {
	roles := make([]string, 0, len(list))
	for _, item := range list {
		tag, ok := item.(string)
		if obj, isObj := item.(map[string]interface{}); isObj {
			tag, ok = obj["role"].(string)
		}
		if !ok {
			return nil, apperror.BadInput("Invalid role. Must be one of: Admin, Member")
		}
		if _, known := access.ParseRole(tag); !known {
			return nil, apperror.BadInput("Invalid role. Must be one of: Admin, Member")
		}
		roles = append(roles, tag)
	}
	return roles, nil
}

func withDefault(v, fallback interface{}) interface{} {
	if v == nil {
		return fallback
	}
	return v
}
