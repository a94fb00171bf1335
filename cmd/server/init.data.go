package main

import (
	"context"
	"errors"

	authmodels "github.com/Muslimceek/fastfoodmuslim/internal/api/auth/models"
	authsvc "github.com/Muslimceek/fastfoodmuslim/internal/api/auth/service"
	basesvc "github.com/Muslimceek/fastfoodmuslim/internal/api/base/service"
	menumodels "github.com/Muslimceek/fastfoodmuslim/internal/api/menu/models"
	"github.com/Muslimceek/fastfoodmuslim/internal/common"
	"github.com/Muslimceek/fastfoodmuslim/internal/global"
	"github.com/Muslimceek/fastfoodmuslim/internal/logger"
	"github.com/Muslimceek/fastfoodmuslim/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
)

func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	// 1. Tạo user admin từ env nếu chưa có
	if err := initAdminUser(); err != nil {
		log.WithError(err).Warn("❌ [INIT] Failed to initialize admin user")
	}

	// 2. Tạo thực đơn mẫu khi chạy ở chế độ khởi tạo
	if global.ServerConfig.InitMode {
		if err := initSampleMenu(); err != nil {
			log.WithError(err).Warn("❌ [INIT] Failed to initialize sample menu")
		}
	}

	log.Info("✅ [INIT] InitDefaultData completed")
}

// initAdminUser tạo user admin từ ADMIN_EMAIL/ADMIN_PASSWORD nếu chưa tồn tại
func initAdminUser() error {
	log := logger.GetAppLogger()
	cfg := global.ServerConfig

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Info("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	userService, err := authsvc.NewUserService()
	if err != nil {
		return err
	}

	ctx := context.Background()
	_, err = userService.FindOne(ctx, bson.M{"email": cfg.AdminEmail}, nil)
	if err == nil {
		log.Infof("Admin user %s already exists", cfg.AdminEmail)
		return nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return err
	}

	salt, err := utility.GenerateSalt()
	if err != nil {
		return err
	}

	admin := authmodels.User{
		Name:     "Administrator",
		Email:    cfg.AdminEmail,
		Password: utility.HashPassword(cfg.AdminPassword, salt),
		Salt:     salt,
		Role:     authmodels.RoleAdmin,
	}
	created, err := userService.InsertOne(ctx, admin)
	if err != nil {
		return err
	}

	log.Infof("✅ [INIT] Admin user created: %s (ID: %s)", created.Email, created.ID.Hex())
	return nil
}

// initSampleMenu tạo thực đơn mẫu để thử nghiệm nhanh.
// Upsert theo tên món nên chạy lại nhiều lần không tạo bản ghi kép.
func initSampleMenu() error {
	log := logger.GetAppLogger()

	productCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exist {
		return common.ErrNotFound
	}
	productService := basesvc.NewBaseServiceMongo[menumodels.Product](productCollection)

	samples := []menumodels.Product{
		{Name: "Cơm gà nướng", Description: "Cơm gà nướng mật ong, kèm rau củ", Price: 55000, Category: "rice", IsAvailable: true},
		{Name: "Gà rán giòn", Description: "Hai miếng gà rán giòn cay nhẹ", Price: 48000, Category: "chicken", IsAvailable: true,
			Modifiers: []menumodels.ProductModifier{{Name: "Thêm miếng gà", Price: 20000}, {Name: "Sốt cay", Price: 0}}},
		{Name: "Burger bò phô mai", Description: "Burger bò halal với phô mai tan chảy", Price: 62000, Category: "burger", IsAvailable: true,
			Modifiers: []menumodels.ProductModifier{{Name: "Thêm phô mai", Price: 8000}, {Name: "Thêm thịt bò", Price: 18000}}},
		{Name: "Khoai tây chiên", Description: "Phần vừa, giòn rụm", Price: 25000, Category: "side", IsAvailable: true},
		{Name: "Trà chanh", Description: "Trà chanh tươi mát lạnh", Price: 18000, Category: "drink", IsAvailable: true},
	}

	ctx := context.Background()
	for _, product := range samples {
		if _, err := productService.Upsert(ctx, bson.M{"name": product.Name}, product); err != nil {
			return err
		}
	}

	log.Infof("✅ [INIT] Sample menu initialized (%d products)", len(samples))
	return nil
}
