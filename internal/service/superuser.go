// File: internal/service/superuser.go
package service

import (
	"context"
	"errors"
	"fmt"

	"book-vault/internal/database"
	"book-vault/internal/model"
	"book-vault/internal/store"
)

// 測試可覆寫的進入點
var (
	getUserByUsername = store.GetUserByUsername
	createUser        = store.CreateUser
)

// EnsureSuperuser 在啟動時確保管理員帳號存在，已存在則不做任何事
func EnsureSuperuser(ctx context.Context, db database.DB, username, email, password string) error {
	_, err := getUserByUsername(ctx, db, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("EnsureSuperuser: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("EnsureSuperuser: %w", err)
	}

	_, err = createUser(ctx, db, &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	})
	if err != nil {
		// 並發啟動下以資料庫唯一約束為準
		if store.IsUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("EnsureSuperuser: %w", err)
	}
	return nil
}
