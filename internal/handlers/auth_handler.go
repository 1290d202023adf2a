package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mhafidz976/penjadwalan2/config"
	"github.com/mhafidz976/penjadwalan2/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

// LoginInput - данные формы входа.
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler проверяет пароль и выдает JWT. Токен кладется в cookie
// auth_token и дублируется в теле ответа для API-клиентов.
func LoginHandler(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var user models.User
	if err := config.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	// jti позволяет отозвать конкретный токен при выходе.
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"jti":     uuid.NewString(),
		"exp":     time.Now().Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString(config.JwtKey)
	if err != nil {
		slog.Error("Failed to sign JWT", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.SetCookie("auth_token", tokenStr, int(tokenLifetime.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"token": tokenStr,
		"user": gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"role":      user.Role,
			"full_name": user.FullName,
		},
	})
}

// LogoutHandler отзывает текущий токен и стирает cookie. Отзыв живет в
// Redis ровно до истечения срока токена; без Redis остается только стирание cookie.
func LogoutHandler(c *gin.Context) {
	tokenStr, err := c.Cookie("auth_token")
	if err == nil && tokenStr != "" && config.RDB != nil {
		token, parseErr := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return config.JwtKey, nil
		})
		if parseErr == nil && token.Valid {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				jti, _ := claims["jti"].(string)
				exp, _ := claims["exp"].(float64)
				if jti != "" {
					ttl := time.Until(time.Unix(int64(exp), 0))
					if ttl > 0 {
						if err := config.RDB.Set(config.Ctx, "revoked:"+jti, "1", ttl).Err(); err != nil {
							slog.Error("Failed to store revoked token", "error", err)
						}
					}
				}
			}
		}
	}

	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
