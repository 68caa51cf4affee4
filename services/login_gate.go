package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"course-connect/utils"
)

const (
	DashboardPath       = "/dashboard"
	LoginSuccessMessage = "Successfully logged in!"
)

var (
	ErrInvalidEmailDomain = errors.New("email outside the allowed domain")
	ErrEmptyPassword      = errors.New("password is empty")
)

// LoginResult is returned by a successful simulated sign-in.
type LoginResult struct {
	Email    string `json:"email"`
	Redirect string `json:"redirect"`
	Message  string `json:"message"`
}

// LoginGate performs the client-side style checks of the login screen and
// simulates the latency of a real sign-in. It never checks credentials.
type LoginGate struct {
	domain string
	delay  time.Duration
}

func NewLoginGate(domain string, delay time.Duration) *LoginGate {
	return &LoginGate{domain: domain, delay: delay}
}

func (g *LoginGate) Domain() string { return g.domain }

// RejectionMessage is the toast text shown for a validation error.
func (g *LoginGate) RejectionMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidEmailDomain):
		return fmt.Sprintf("Please use your Northeastern email address (@%s)", g.domain)
	case errors.Is(err, ErrEmptyPassword):
		return "Please enter your password"
	default:
		return "Unable to sign in"
	}
}

// Validate checks the email domain first, then that a password was typed.
func (g *LoginGate) Validate(email, password string) error {
	if !utils.HasEmailDomain(email, g.domain) {
		return ErrInvalidEmailDomain
	}
	if password == "" {
		return ErrEmptyPassword
	}
	return nil
}

// SignIn validates the input, waits the fixed delay and reports where to go next.
func (g *LoginGate) SignIn(ctx context.Context, email, password string) (*LoginResult, error) {
	if err := g.Validate(email, password); err != nil {
		log.Printf("login rejected for %q: %v", email, err)
		return nil, err
	}

	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, fmt.Errorf("simulated sign-in interrupted: %w", ctx.Err())
		}
	}

	log.Printf("simulated login succeeded for %s", email)
	return &LoginResult{
		Email:    email,
		Redirect: DashboardPath,
		Message:  LoginSuccessMessage,
	}, nil
}
