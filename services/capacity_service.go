package services

import (
	"context"
	"errors"
	"math"
	"net/http"

	"github.com/Stevekk11/PersonalCloud/config"
	"github.com/Stevekk11/PersonalCloud/logger"
	"github.com/Stevekk11/PersonalCloud/repositories"

	"gorm.io/gorm"
)

// CapacitySnapshot is recomputed on every call and never persisted.
type CapacitySnapshot struct {
	AvailableGB         float64 `json:"available_gb"`
	MaxPremiumUsers     int     `json:"max_premium_users"`
	CurrentPremiumUsers int64   `json:"current_premium_users"`
	AvailableSlots      int     `json:"available_slots"`
	CanUpgrade          bool    `json:"can_upgrade"`
}

type CapacityService interface {
	Snapshot(ctx context.Context) (CapacitySnapshot, error)
	CanAdmitPremium(ctx context.Context) (bool, error)
	UpgradeToPremium(ctx context.Context, ownerID string) error
	DowngradeFromPremium(ctx context.Context, ownerID string) error
}

type capacityService struct {
	txManager      TxManager
	accounts       repositories.AccountRepository
	availableBytes func() (uint64, error)
}

// NewCapacityService gates premium admission on the free space of the volume
// hosting the storage root. availableBytes is injected so tests can pin the
// disk state.
func NewCapacityService(txManager TxManager, accounts repositories.AccountRepository, availableBytes func() (uint64, error)) CapacityService {
	return &capacityService{
		txManager:      txManager,
		accounts:       accounts,
		availableBytes: availableBytes,
	}
}

func (s *capacityService) availableGB() (float64, error) {
	free, err := s.availableBytes()
	if err != nil {
		return 0, err
	}
	return float64(free) / (1024 * 1024 * 1024), nil
}

func (s *capacityService) maxPremiumUsers() (int, float64, error) {
	freeGB, err := s.availableGB()
	if err != nil {
		return 0, 0, err
	}
	return int(math.Floor(freeGB / config.AppConfig.Premium.GigabytesPerUser)), freeGB, nil
}

func (s *capacityService) Snapshot(ctx context.Context) (CapacitySnapshot, error) {
	maxUsers, freeGB, err := s.maxPremiumUsers()
	if err != nil {
		return CapacitySnapshot{}, newAppError(http.StatusInternalServerError, CodeInternal, "查询磁盘容量失败", err)
	}
	current, err := s.accounts.CountPremium(ctx, nil)
	if err != nil {
		return CapacitySnapshot{}, newAppError(http.StatusInternalServerError, CodeInternal, "统计高级用户数失败", err)
	}

	slots := maxUsers - int(current)
	if slots < 0 {
		slots = 0
	}
	return CapacitySnapshot{
		AvailableGB:         freeGB,
		MaxPremiumUsers:     maxUsers,
		CurrentPremiumUsers: current,
		AvailableSlots:      slots,
		CanUpgrade:          int(current) < maxUsers,
	}, nil
}

func (s *capacityService) CanAdmitPremium(ctx context.Context) (bool, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return false, err
	}
	return snapshot.CanUpgrade, nil
}

// UpgradeToPremium re-evaluates capacity at the moment of the flip instead of
// trusting a snapshot taken when the page was rendered. The premium count and
// the flag update share one transaction; the disk read stays outside it, so a
// bounded over-admission window remains.
func (s *capacityService) UpgradeToPremium(ctx context.Context, ownerID string) error {
	account, err := s.accounts.GetByID(ctx, nil, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newAppError(http.StatusNotFound, CodeNotFound, "用户不存在", nil)
		}
		return newAppError(http.StatusInternalServerError, CodeInternal, "查询用户失败", err)
	}
	if account.IsPremium {
		return newAppError(http.StatusBadRequest, CodeAlreadyPremium, "您已经是高级用户", nil)
	}

	maxUsers, _, err := s.maxPremiumUsers()
	if err != nil {
		return newAppError(http.StatusInternalServerError, CodeInternal, "查询磁盘容量失败", err)
	}

	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		current, err := s.accounts.CountPremium(ctx, tx)
		if err != nil {
			return err
		}
		if int(current) >= maxUsers {
			return newAppError(http.StatusConflict, CodeCapacityUnavailable, "暂无可用的高级账户名额，请稍后再试", nil)
		}
		return s.accounts.SetPremium(ctx, tx, ownerID, true)
	})
	if err != nil {
		var appErr *AppError
		if errors.As(err, &appErr) {
			if appErr.Code == CodeCapacityUnavailable {
				logger.L().Warnw("高级账户升级被拒绝：容量不足", "owner_id", ownerID, "max_premium_users", maxUsers)
			}
			return appErr
		}
		return newAppError(http.StatusInternalServerError, CodeInternal, "升级高级账户失败", err)
	}

	logger.L().Infow("账户已升级为高级", "owner_id", ownerID)
	return nil
}

// DowngradeFromPremium always succeeds for a premium account; capacity never
// blocks a downgrade.
func (s *capacityService) DowngradeFromPremium(ctx context.Context, ownerID string) error {
	account, err := s.accounts.GetByID(ctx, nil, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newAppError(http.StatusNotFound, CodeNotFound, "用户不存在", nil)
		}
		return newAppError(http.StatusInternalServerError, CodeInternal, "查询用户失败", err)
	}
	if !account.IsPremium {
		return newAppError(http.StatusBadRequest, CodeNotPremium, "您不是高级用户", nil)
	}

	if err := s.accounts.SetPremium(ctx, nil, ownerID, false); err != nil {
		return newAppError(http.StatusInternalServerError, CodeInternal, "取消高级账户失败", err)
	}

	logger.L().Infow("账户已取消高级", "owner_id", ownerID)
	return nil
}
