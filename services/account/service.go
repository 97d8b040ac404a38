package account

import (
	"context"
	"strings"
	"time"

	accountRepo "emjay/database/repository/account"
	"emjay/models"
	"emjay/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AccountService interface {
	Login(ctx context.Context, username, password, fcmToken string) (*models.LoginResponse, error)
}

type DefaultAccountService struct {
	Repo     accountRepo.AccountRepository
	TokenTTL time.Duration
	Logger   *zap.Logger
	Now      func() time.Time
}

func (s *DefaultAccountService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}

func errBadCredentials() error {
	return utils.NewValidationError("credentials", "invalid username or password")
}

// Login verifies a back-office account and issues a token carrying its role.
func (s *DefaultAccountService) Login(ctx context.Context, username, password, fcmToken string) (*models.LoginResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errBadCredentials()
	}

	acct, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		s.logger().Error("failed to fetch account", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	if acct == nil {
		return nil, errBadCredentials()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, errBadCredentials()
	}

	role := utils.RoleSupervisor
	if acct.AccountType == models.AccountAdmin {
		role = utils.RoleAdmin
	}
	ttl := s.TokenTTL
	if ttl == 0 {
		ttl = utils.TokenTTL
	}
	token, err := utils.GenerateToken(acct.ID, role, ttl)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now()
	}
	if err := s.Repo.RecordLogin(ctx, acct.ID, utils.HashToken(token), fcmToken, now); err != nil {
		// The token is still valid; only the push target is stale.
		s.logger().Warn("failed to record login", zap.String("accountId", acct.ID), zap.Error(err))
	}

	return &models.LoginResponse{
		Token:       token,
		AccountID:   acct.ID,
		Username:    acct.Username,
		AccountType: acct.AccountType,
	}, nil
}
