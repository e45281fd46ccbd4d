package auth

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"PokerRoom/config"
)

type GuestRequest struct {
	Name string `json:"name"`
}

type Handler struct{}

// 工厂方法：创建 handler
func NewHandler() *Handler {
	return &Handler{}
}

// Guest 游客登录：没有账号体系，报名字就发 24h 的 JWT。
// playerId 每次登录都是新的，掉线重连靠同名回座。
func (h *Handler) Guest(c *gin.Context) {
	var req GuestRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(400, gin.H{"error": "name required"})
		return
	}

	playerID := uuid.NewString()
	claims := jwt.MapClaims{
		"sub":  playerID,
		"name": req.Name,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtStr, err := token.SignedString([]byte(config.C.JWT.Secret))
	if err != nil {
		c.JSON(500, gin.H{"error": "jwt generation failed"})
		return
	}

	c.JSON(200, gin.H{
		"jwt":      jwtStr,
		"playerId": playerID,
		"name":     req.Name,
	})
}
