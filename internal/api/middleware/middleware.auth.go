// Package middleware chứa các middleware dùng chung: xác thực, phân quyền theo vai trò.
package middleware

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	models "github.com/Muslimceek/fastfoodmuslim/internal/api/auth/models"
	authsvc "github.com/Muslimceek/fastfoodmuslim/internal/api/auth/service"
	"github.com/Muslimceek/fastfoodmuslim/internal/common"
	"github.com/Muslimceek/fastfoodmuslim/internal/global"
	"github.com/Muslimceek/fastfoodmuslim/internal/logger"
	"github.com/Muslimceek/fastfoodmuslim/internal/utility"
)

// AuthManager quản lý xác thực và phân quyền người dùng
type AuthManager struct {
	UserCRUD *authsvc.UserService
	Cache    *utility.Cache
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
)

// GetAuthManager trả về instance duy nhất của AuthManager (singleton pattern)
func GetAuthManager() *AuthManager {
	authManagerOnce.Do(func() {
		var err error
		authManagerInstance, err = newAuthManager()
		if err != nil {
			panic(err)
		}
	})
	return authManagerInstance
}

// newAuthManager khởi tạo một instance mới của AuthManager (private constructor)
func newAuthManager() (*AuthManager, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}

	return &AuthManager{
		UserCRUD: userService,
		// Cache user theo token với thời gian sống 5 phút, dọn dẹp mỗi 10 phút
		Cache: utility.NewCache(5*time.Minute, 10*time.Minute),
	}, nil
}

// findUserByToken tìm user sở hữu token, ưu tiên cache trước
func (am *AuthManager) findUserByToken(token string) (models.User, error) {
	cacheKey := "auth_token:" + token
	if cached, found := am.Cache.Get(cacheKey); found {
		return cached.(models.User), nil
	}

	// Ưu tiên query field "token" (token mới nhất) vì nó được cập nhật mỗi lần login.
	// Nếu không tìm thấy, query trong array "tokens" (tokens theo hwid).
	user, err := am.UserCRUD.FindOne(context.Background(), bson.M{"token": token}, nil)
	if err != nil {
		user, err = am.UserCRUD.FindOne(context.Background(), bson.M{"tokens.jwtToken": token}, nil)
		if err != nil {
			return models.User{}, err
		}
	}

	am.Cache.Set(cacheKey, user)
	return user, nil
}

// AuthMiddleware middleware xác thực cho Fiber.
// allowedRoles là danh sách vai trò được phép truy cập route.
// Truyền rỗng nghĩa là chỉ cần đăng nhập, không giới hạn vai trò.
func AuthMiddleware(allowedRoles ...string) fiber.Handler {
	authManager := GetAuthManager()

	return func(c fiber.Ctx) error {
		// Lấy token từ header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		token := parts[1]

		// Kiểm tra chữ ký JWT trước khi query database
		if _, err := utility.ParseToken(global.ServerConfig.JwtSecret, token); err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Invalid token signature")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Tìm user sở hữu token
		user, err := authManager.findUserByToken(token)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Token not found in database")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Kiểm tra user có bị block không
		if user.IsBlock {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthCredentials,
				"Tài khoản đã bị khóa: "+user.BlockNote,
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		// Lưu thông tin user vào context
		c.Locals("user_id", user.ID.Hex())
		c.Locals("user", user)
		c.Locals("role", user.Role)

		// Không giới hạn vai trò, chỉ cần đăng nhập
		if len(allowedRoles) == 0 {
			return c.Next()
		}

		// Admin luôn được phép
		if user.Role == models.RoleAdmin {
			return c.Next()
		}

		if !utility.Contains(allowedRoles, user.Role) {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id":       user.ID.Hex(),
				"user_role":     user.Role,
				"allowed_roles": allowedRoles,
				"path":          c.Path(),
			}).Warn("❌ [AUTH] User role not allowed")
			HandleErrorResponse(c, common.ErrRoleRequired)
			return nil
		}

		return c.Next()
	}
}
