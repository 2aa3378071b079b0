package middleware

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/storecraft/admin-api/config"
)

// RequireAuth validates the caller's identity token and stores the acting
// identity (the token's sub claim) in the Gin context as "user_id".
//
// When an identity domain is configured, tokens are RS256 JWTs validated
// against the provider's JWKS. Otherwise tokens are HS256 JWTs signed with
// the shared JWT secret, which is the dev/test mode.
//
// Requests without a valid identity are rejected with 403; a missing token
// and an invalid token are indistinguishable to the caller.
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	if cfg.IdentityDomain != "" {
		return jwksAuth(cfg)
	}
	return hmacAuth(cfg.JWTSecret)
}

// jwksAuth validates RS256 tokens issued by the external identity provider.
func jwksAuth(cfg *config.Config) gin.HandlerFunc {
	issuerURL, err := url.Parse("https://" + cfg.IdentityDomain + "/")
	if err != nil {
		log.Fatalf("Failed to parse the issuer url: %v", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{cfg.IdentityAudience},
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		log.Fatalf("Failed to set up the jwt validator")
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		if _, writeErr := w.Write([]byte(`{"success":false,"error":{"code":"UNAUTHENTICATED","message":"No valid identity"}}`)); writeErr != nil {
			log.Printf("Failed to write error response: %v", writeErr)
		}
	}

	jwtMiddleware := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
	)

	return func(c *gin.Context) {
		var authenticated bool
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			token := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)

			c.Set("user_id", token.RegisteredClaims.Subject)
			c.Set("validated_claims", token)
			authenticated = true
		}

		jwtMiddleware.CheckJWT(handler).ServeHTTP(c.Writer, c.Request)
		if !authenticated {
			c.Abort()
			return
		}

		c.Next()
	}
}

// hmacAuth validates HS256 tokens signed with the shared secret.
func hmacAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const prefix = "Bearer "

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, prefix) {
			respondUnauthenticated(c)
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, prefix), func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			respondUnauthenticated(c)
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			respondUnauthenticated(c)
			return
		}

		c.Set("user_id", sub)
		c.Next()
	}
}

func respondUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHENTICATED",
			"message": "No valid identity",
		},
	})
}

// GetUserID extracts the acting identity from the Gin context
func GetUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", &AuthError{Code: "MISSING_USER_ID", Message: "User ID not found in context"}
	}

	userIDStr, ok := userID.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_USER_ID", Message: "User ID is not a string"}
	}

	return userIDStr, nil
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
