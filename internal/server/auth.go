package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ctxUID  = "uid"
	ctxName = "name"

	tokenTTL = 30 * 24 * time.Hour
)

// issueToken mints a guest token carrying a stable uid and a display name.
func (s *Server) issueToken(uid, name string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  uid,
		"name": name,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// parseToken validates a token and extracts uid and name.
func (s *Server) parseToken(raw string) (uid, name string, err error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("invalid token claims")
	}
	uid, _ = claims["sub"].(string)
	name, _ = claims["name"].(string)
	if uid == "" {
		return "", "", fmt.Errorf("token missing subject")
	}
	return uid, name, nil
}

// authRequired extracts the actor from the Authorization header (or, for
// websocket upgrades, the token query parameter) and aborts with 401 when
// absent or invalid.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ""
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			raw = strings.TrimPrefix(h, "Bearer ")
		} else if q := c.Query("token"); q != "" {
			raw = q
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		uid, name, err := s.parseToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(ctxUID, uid)
		c.Set(ctxName, name)
		c.Next()
	}
}

// handleGuestLogin issues a fresh guest identity, or re-signs the provided one.
func (s *Server) handleGuestLogin(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
		UID  string `json:"uid"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	uid := req.UID
	if uid == "" {
		uid = uuid.NewString()
	}
	token, err := s.issueToken(uid, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"uid": uid, "name": req.Name, "token": token})
}

func actorUID(c *gin.Context) string  { return c.GetString(ctxUID) }
func actorName(c *gin.Context) string { return c.GetString(ctxName) }
