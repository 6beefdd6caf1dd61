package middleware

import (
	"net/http"
	"strings"
	"time"

	patientRepo "panchakarma/database/repository/patient"
	practitionerRepo "panchakarma/database/repository/practitioner"
	"panchakarma/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// Context keys set by FirebaseAuthMiddleware.
const (
	CtxSubjectID = "subjectID"
	CtxRole      = "role"
)

const roleCacheTTL = 10 * time.Minute

// FirebaseAuthMiddleware verifies the bearer ID token and resolves the
// caller's role from the profile collections. The uid -> role mapping is
// cached in Redis so the lookup does not hit Mongo on every request.
func FirebaseAuthMiddleware(authClient *auth.Client, practitioners practitionerRepo.PractitionerRepository, patients patientRepo.PatientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		idToken := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := authClient.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		role := resolveRole(c, token.UID, practitioners, patients)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "No registered profile for this account"})
			return
		}

		c.Set(CtxSubjectID, token.UID)
		c.Set(CtxRole, role)
		c.Next()
	}
}

// FirebaseTokenMiddleware verifies the bearer ID token without requiring a
// registered profile. Registration endpoints use it: the profile is what the
// request is about to create.
func FirebaseTokenMiddleware(authClient *auth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		token, err := authClient.VerifyIDToken(c.Request.Context(), strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(CtxSubjectID, token.UID)
		c.Next()
	}
}

// resolveRole checks the role cache, then the practitioner collection (which
// also holds admins), then the patient collection.
func resolveRole(c *gin.Context, uid string, practitioners practitionerRepo.PractitionerRepository, patients patientRepo.PatientRepository) string {
	ctx := c.Request.Context()
	cache := utils.GetAuthCacheClient()
	cacheKey := "role:" + uid

	if cache != nil {
		if role, err := cache.Get(ctx, cacheKey).Result(); err == nil && role != "" {
			return role
		} else if err != nil && err != redis.Nil {
			utils.GetLogger().Warn("role cache lookup failed; falling back to Mongo")
		}
	}

	role := ""
	if p, err := practitioners.GetByID(uid); err == nil && p != nil {
		role = p.Role // "practitioner" or "admin"
	} else if pt, err := patients.GetByID(uid); err == nil && pt != nil {
		role = "patient"
	}

	if role != "" && cache != nil {
		_ = cache.Set(ctx, cacheKey, role, roleCacheTTL).Err()
	}
	return role
}
