package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"course-platform/internal/auth/domain/model"
	"course-platform/internal/auth/domain/repository"
)

const bearerPrefix = "Bearer "

// Gate rejection messages.
const (
	MsgMissingToken     = "Token is Missing or Invalid Format"
	MsgInvalidPayload   = "Invalid Token Payload"
	MsgTokenExpired     = "Token has expired"
	MsgInvalidToken     = "Invalid Token"
	MsgValidationFailed = "Token validation failed"
	MsgGateFailure      = "Something went wrong while validating the token"
)

// GateErrorKind classifies why the gate rejected a request. The transport
// layer maps kinds to status codes.
type GateErrorKind int

const (
	// KindUnauthenticated means the caller could not be identified.
	KindUnauthenticated GateErrorKind = iota + 1
	// KindUnauthorized means the caller is identified but holds the wrong role.
	KindUnauthorized
	// KindInternal means the gate itself failed.
	KindInternal
)

func (k GateErrorKind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindUnauthorized:
		return "unauthorized"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// GateError is the rejection returned by Authenticate and RequireRole.
type GateError struct {
	Kind    GateErrorKind
	Message string
	Cause   error
}

func (e *GateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *GateError) Unwrap() error {
	return e.Cause
}

// Detail returns the underlying error text, if any.
func (e *GateError) Detail() string {
	if e.Cause == nil {
		return ""
	}
	return e.Cause.Error()
}

// AsGateError finds the first GateError in err's chain.
func AsGateError(err error) (*GateError, bool) {
	var gateErr *GateError
	if errors.As(err, &gateErr) {
		return gateErr, true
	}
	return nil, false
}

// Gate authenticates session tokens and checks account types. It holds no
// mutable state and is safe for concurrent use.
type Gate struct {
	tokens repository.TokenService
}

// NewGate creates a gate that verifies tokens with the given service
func NewGate(tokens repository.TokenService) *Gate {
	return &Gate{tokens: tokens}
}

// Authenticate verifies the value of an Authorization header and returns the
// decoded claim. The token service is not consulted unless the header has
// the Bearer form.
func (g *Gate) Authenticate(ctx context.Context, authorization string) (claims *model.Claims, err error) {
	defer func() {
		if r := recover(); r != nil {
			claims = nil
			err = &GateError{Kind: KindInternal, Message: MsgGateFailure, Cause: fmt.Errorf("%v", r)}
		}
	}()

	if authorization == "" || !strings.HasPrefix(authorization, bearerPrefix) {
		return nil, &GateError{Kind: KindUnauthenticated, Message: MsgMissingToken}
	}
	token := strings.Replace(authorization, bearerPrefix, "", 1)

	if g == nil || g.tokens == nil {
		return nil, &GateError{Kind: KindInternal, Message: MsgGateFailure, Cause: errNoTokenService}
	}
	return g.verify(ctx, token)
}

func (g *Gate) verify(ctx context.Context, token string) (claims *model.Claims, err error) {
	defer func() {
		if r := recover(); r != nil {
			claims = nil
			err = &GateError{Kind: KindUnauthenticated, Message: MsgValidationFailed, Cause: fmt.Errorf("%v", r)}
		}
	}()

	claims, err = g.tokens.ValidateToken(ctx, token)
	switch {
	case err == nil && (claims == nil || claims.ID == ""):
		return nil, &GateError{Kind: KindUnauthenticated, Message: MsgInvalidPayload}
	case err == nil:
		return claims, nil
	case errors.Is(err, model.ErrTokenExpired):
		return nil, &GateError{Kind: KindUnauthenticated, Message: MsgTokenExpired, Cause: err}
	case errors.Is(err, model.ErrTokenInvalid):
		return nil, &GateError{Kind: KindUnauthenticated, Message: MsgInvalidToken, Cause: err}
	default:
		return nil, &GateError{Kind: KindUnauthenticated, Message: MsgValidationFailed, Cause: err}
	}
}

// RoleGuard describes one account-type check.
type RoleGuard struct {
	Expected model.AccountType
	// Label is how the role is named in the mismatch message.
	Label string
}

// The three role guards mounted on protected routes.
var (
	StudentGuard    = RoleGuard{Expected: model.AccountTypeStudent, Label: "student"}
	InstructorGuard = RoleGuard{Expected: model.AccountTypeInstructor, Label: "Instructor"}
	AdminGuard      = RoleGuard{Expected: model.AccountTypeAdmin, Label: "Admin"}
)

// MismatchMessage is returned when the claim holds another account type.
func (r RoleGuard) MismatchMessage() string {
	return "This Page is protected only for " + r.Label
}

// FailureMessage is returned when the check itself cannot be evaluated.
func (r RoleGuard) FailureMessage() string {
	return fmt.Sprintf("Error while checking user validity with %s accountType", r.Expected)
}

var (
	errNoClaims       = errors.New("no authenticated claim on request")
	errNoTokenService = errors.New("gate has no token service")
)

// RequireRole checks that claims carry exactly the guard's account type.
// A nil claim means the guard was mounted without authentication in front of
// it, which is reported as a gate failure rather than a mismatch.
func (g *Gate) RequireRole(claims *model.Claims, guard RoleGuard) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &GateError{Kind: KindInternal, Message: guard.FailureMessage(), Cause: fmt.Errorf("%v", r)}
		}
	}()

	if claims == nil {
		return &GateError{Kind: KindInternal, Message: guard.FailureMessage(), Cause: errNoClaims}
	}
	if !claims.HasAccountType(guard.Expected) {
		return &GateError{Kind: KindUnauthorized, Message: guard.MismatchMessage()}
	}
	return nil
}
