package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Stevekk11/PersonalCloud/config"
	"github.com/Stevekk11/PersonalCloud/models"

	"gorm.io/gorm"
)

type fakeTxManager struct{}

func (fakeTxManager) WithTransaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeAccountRepo struct {
	accounts map[string]models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[string]models.Account{}}
}

func (r *fakeAccountRepo) Create(_ context.Context, _ *gorm.DB, account *models.Account) error {
	r.accounts[account.ID] = *account
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, _ *gorm.DB, accountID string) (models.Account, error) {
	account, ok := r.accounts[accountID]
	if !ok {
		return models.Account{}, gorm.ErrRecordNotFound
	}
	return account, nil
}

func (r *fakeAccountRepo) SetPremium(_ context.Context, _ *gorm.DB, accountID string, premium bool) error {
	account, ok := r.accounts[accountID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	account.IsPremium = premium
	r.accounts[accountID] = account
	return nil
}

func (r *fakeAccountRepo) CountPremium(_ context.Context, _ *gorm.DB) (int64, error) {
	var count int64
	for _, account := range r.accounts {
		if account.IsPremium {
			count++
		}
	}
	return count, nil
}

func gigabytes(n float64) func() (uint64, error) {
	return func() (uint64, error) {
		return uint64(n * 1024 * 1024 * 1024), nil
	}
}

func capacityTestConfig() {
	config.AppConfig = &config.Config{
		Premium: config.PremiumConfig{GigabytesPerUser: 50},
	}
}

func appErrCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func TestSnapshotComputesSlots(t *testing.T) {
	capacityTestConfig()
	accounts := newFakeAccountRepo()
	accounts.accounts["a"] = models.Account{ID: "a", IsPremium: true}
	accounts.accounts["b"] = models.Account{ID: "b"}

	svc := NewCapacityService(fakeTxManager{}, accounts, gigabytes(120))

	snapshot, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if snapshot.MaxPremiumUsers != 2 {
		t.Fatalf("expected max 2 premium users for 120 GB free, got %d", snapshot.MaxPremiumUsers)
	}
	if snapshot.CurrentPremiumUsers != 1 {
		t.Fatalf("expected 1 premium user, got %d", snapshot.CurrentPremiumUsers)
	}
	if snapshot.AvailableSlots != 1 {
		t.Fatalf("expected 1 available slot, got %d", snapshot.AvailableSlots)
	}
	if !snapshot.CanUpgrade {
		t.Fatalf("expected upgrades to be admitted")
	}
}

func TestSnapshotSlotsNeverNegative(t *testing.T) {
	capacityTestConfig()
	accounts := newFakeAccountRepo()
	accounts.accounts["a"] = models.Account{ID: "a", IsPremium: true}
	accounts.accounts["b"] = models.Account{ID: "b", IsPremium: true}

	svc := NewCapacityService(fakeTxManager{}, accounts, gigabytes(40))

	snapshot, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if snapshot.MaxPremiumUsers != 0 || snapshot.AvailableSlots != 0 {
		t.Fatalf("expected zero slots, got max=%d slots=%d", snapshot.MaxPremiumUsers, snapshot.AvailableSlots)
	}
	if snapshot.CanUpgrade {
		t.Fatalf("expected upgrades to be denied")
	}
}

func TestUpgradeDeniedWhenAllSlotsTaken(t *testing.T) {
	capacityTestConfig()
	accounts := newFakeAccountRepo()
	accounts.accounts["a"] = models.Account{ID: "a", IsPremium: true}
	accounts.accounts["b"] = models.Account{ID: "b", IsPremium: true}
	accounts.accounts["c"] = models.Account{ID: "c"}

	// 120 GB free at 50 GB per premium user allows exactly 2 slots.
	svc := NewCapacityService(fakeTxManager{}, accounts, gigabytes(120))

	err := svc.UpgradeToPremium(context.Background(), "c")
	if code := appErrCode(t, err); code != CodeCapacityUnavailable {
		t.Fatalf("expected capacity_unavailable, got %q", code)
	}
	if accounts.accounts["c"].IsPremium {
		t.Fatalf("denied upgrade must not flip the premium flag")
	}

	// After one downgrade a slot frees up and the same upgrade succeeds.
	if err := svc.DowngradeFromPremium(context.Background(), "a"); err != nil {
		t.Fatalf("downgrade failed: %v", err)
	}
	if err := svc.UpgradeToPremium(context.Background(), "c"); err != nil {
		t.Fatalf("expected upgrade to succeed after downgrade, got %v", err)
	}
	if !accounts.accounts["c"].IsPremium {
		t.Fatalf("expected premium flag to be set")
	}
}

func TestUpgradeAlreadyPremium(t *testing.T) {
	capacityTestConfig()
	accounts := newFakeAccountRepo()
	accounts.accounts["a"] = models.Account{ID: "a", IsPremium: true}

	svc := NewCapacityService(fakeTxManager{}, accounts, gigabytes(500))

	err := svc.UpgradeToPremium(context.Background(), "a")
	if code := appErrCode(t, err); code != CodeAlreadyPremium {
		t.Fatalf("expected already_premium, got %q", code)
	}
}

func TestUpgradeUnknownAccount(t *testing.T) {
	capacityTestConfig()
	svc := NewCapacityService(fakeTxManager{}, newFakeAccountRepo(), gigabytes(500))

	err := svc.UpgradeToPremium(context.Background(), "ghost")
	if code := appErrCode(t, err); code != CodeNotFound {
		t.Fatalf("expected not_found, got %q", code)
	}
}

func TestDowngradeNeverBlockedByCapacity(t *testing.T) {
	capacityTestConfig()
	accounts := newFakeAccountRepo()
	accounts.accounts["a"] = models.Account{ID: "a", IsPremium: true}

	// No free disk at all; the downgrade must still go through.
	svc := NewCapacityService(fakeTxManager{}, accounts, gigabytes(0))

	if err := svc.DowngradeFromPremium(context.Background(), "a"); err != nil {
		t.Fatalf("downgrade failed: %v", err)
	}
	if accounts.accounts["a"].IsPremium {
		t.Fatalf("expected premium flag to be cleared")
	}
}

func TestDowngradeNotPremium(t *testing.T) {
	capacityTestConfig()
	accounts := newFakeAccountRepo()
	accounts.accounts["a"] = models.Account{ID: "a"}

	svc := NewCapacityService(fakeTxManager{}, accounts, gigabytes(500))

	err := svc.DowngradeFromPremium(context.Background(), "a")
	if code := appErrCode(t, err); code != CodeNotPremium {
		t.Fatalf("expected not_premium, got %q", code)
	}
}

func TestSnapshotDiskFailure(t *testing.T) {
	capacityTestConfig()
	svc := NewCapacityService(fakeTxManager{}, newFakeAccountRepo(), func() (uint64, error) {
		return 0, errors.New("statfs failed")
	})

	if _, err := svc.Snapshot(context.Background()); err == nil {
		t.Fatalf("expected error when disk query fails")
	}
}
