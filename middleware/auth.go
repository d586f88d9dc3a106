package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"hisab/backend/logging"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Define context keys
type contextKey string

const UserIDKey contextKey = "user_id"

// Verifier turns a credential presented by the client into a user ID.
type Verifier interface {
	VerifySessionCookie(ctx context.Context, cookie string) (string, error)
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
}

// FirebaseConfig selects the service account used by the Admin SDK. The first
// non-empty source wins: raw JSON, base64 JSON, then a file path.
type FirebaseConfig struct {
	ProjectID         string
	CredentialsJSON   string
	CredentialsBase64 string
	CredentialsFile   string
}

func (c FirebaseConfig) clientOption() (option.ClientOption, error) {
	switch {
	case c.CredentialsJSON != "":
		return option.WithCredentialsJSON([]byte(c.CredentialsJSON)), nil
	case c.CredentialsBase64 != "":
		credBytes, err := base64.StdEncoding.DecodeString(c.CredentialsBase64)
		if err != nil {
			return nil, fmt.Errorf("decode base64 Firebase credentials: %w", err)
		}
		return option.WithCredentialsJSON(credBytes), nil
	case c.CredentialsFile != "":
		return option.WithCredentialsFile(c.CredentialsFile), nil
	}
	return nil, errors.New("no Firebase credentials configured")
}

// FirebaseVerifier verifies Firebase session cookies and ID tokens.
type FirebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier initializes the Firebase Admin SDK auth client.
func NewFirebaseVerifier(ctx context.Context, cfg FirebaseConfig) (*FirebaseVerifier, error) {
	opt, err := cfg.clientOption()
	if err != nil {
		return nil, err
	}

	var fbConfig *firebase.Config
	if cfg.ProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opt)
	if err != nil {
		return nil, fmt.Errorf("initialize Firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("get Firebase Auth client: %w", err)
	}

	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) VerifySessionCookie(ctx context.Context, cookie string) (string, error) {
	token, err := v.client.VerifySessionCookie(ctx, cookie)
	if err != nil {
		return "", fmt.Errorf("verify session cookie: %w", err)
	}
	return token.UID, nil
}

func (v *FirebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("verify ID token: %w", err)
	}
	return token.UID, nil
}

// DevVerifier accepts any non-empty credential and uses it as the user ID.
// It is only installed when no Firebase credentials are configured outside
// production.
type DevVerifier struct{}

func (DevVerifier) VerifySessionCookie(_ context.Context, cookie string) (string, error) {
	return devUserID(cookie)
}

func (DevVerifier) VerifyIDToken(_ context.Context, idToken string) (string, error) {
	return devUserID(idToken)
}

func devUserID(v string) (string, error) {
	if v = strings.TrimSpace(v); v == "" {
		return "", errors.New("empty credential")
	}
	return v, nil
}

// Auth resolves the caller from the session cookie, or failing that an
// Authorization bearer token, and stores the user ID in the request context.
// Requests without a valid credential get 401.
func Auth(verifier Verifier, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip auth for OPTIONS requests (CORS preflight)
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			log := logging.FromContext(r.Context()).WithComponent(logging.ComponentAuth)

			var (
				userID string
				err    error
			)
			if cookie, cerr := r.Cookie(cookieName); cerr == nil && cookie.Value != "" {
				userID, err = verifier.VerifySessionCookie(r.Context(), cookie.Value)
			} else if idToken := extractToken(r.Header.Get("Authorization")); idToken != "" {
				userID, err = verifier.VerifyIDToken(r.Context(), idToken)
			} else {
				err = errors.New("no credential provided")
			}

			if err != nil || userID == "" {
				log.WarnContext(r.Context(), "Rejected unauthenticated request",
					logging.NewFields().WithError(err).WithHTTPRequest(r.Method, r.URL.Path, "", "").ToSlice()...)
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = logging.NewContext(ctx, logging.FromContext(ctx).With(logging.FieldUserID, userID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
}

// extractToken gets the token from the Authorization header
func extractToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, "Bearer ")
	if len(parts) != 2 {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserIDFromContext retrieves the user ID from the request context
func GetUserIDFromContext(r *http.Request) string {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}
