package coupon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kingdomliving/soulfood/catalog"

	"github.com/lithammer/shortuuid/v3"
	extErrors "github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ManagerOptions contains the configuration for coupon Manager
type ManagerOptions struct {
	DB      *gorm.DB
	Logger  *zap.Logger
	Catalog catalog.Catalog
	Coupons map[string]Coupon
}

// Manager handles coupon validation and redemption accounting
type Manager struct {
	ManagerOptions
}

// NewManager returns a new Manager for coupons
func NewManager(option ManagerOptions) (*Manager, error) {
	if option.DB == nil {
		return nil, fmt.Errorf("nil DB is invalid")
	}
	if option.Logger == nil {
		return nil, fmt.Errorf("nil Logger is invalid")
	}
	if option.Catalog == nil {
		return nil, fmt.Errorf("nil Catalog is invalid")
	}
	if option.Coupons == nil {
		option.Coupons = Defined()
	}
	if err := option.DB.AutoMigrate(&Usage{}); err != nil {
		return nil, extErrors.Wrap(err, "Cannot initialize coupon.Manager")
	}
	return &Manager{
		ManagerOptions: option,
	}, nil
}

// normalizeCode strips whitespace and upcases so customers can type codes loosely
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidationResult is what the checkout page shows for a coupon attempt
type ValidationResult struct {
	Valid           bool   `json:"valid"`
	DiscountPercent int    `json:"discountPercent"`
	Message         string `json:"message"`
	Code            string `json:"code"`
}

// ValidateOption carries the coupon code and the cart being validated against
type ValidateOption struct {
	Code       string
	ProductIDs []string
}

// Validate checks a coupon code against its usage cap, its product
// restrictions, and the per-product eligibility rules. An ineligible coupon is
// an expected outcome, not an error: the result carries the customer-facing
// message either way.
func (m *Manager) Validate(ctx context.Context, opt ValidateOption) (*ValidationResult, error) {
	code := normalizeCode(opt.Code)
	invalid := func(message string) *ValidationResult {
		return &ValidationResult{
			Valid:   false,
			Message: message,
			Code:    code,
		}
	}

	coupon, ok := m.Coupons[code]
	if !ok {
		return invalid("Invalid coupon code"), nil
	}

	usageCount, err := m.usageCount(ctx, code)
	if err != nil {
		return nil, err
	}
	if coupon.Exhausted(usageCount) {
		return invalid(fmt.Sprintf("This coupon has reached its maximum usage limit (%d uses)", coupon.MaxUses)), nil
	}

	if len(coupon.AppliesTo) > 0 {
		applicable := false
		for _, pid := range opt.ProductIDs {
			for _, allowed := range coupon.AppliesTo {
				if pid == allowed {
					applicable = true
				}
			}
		}
		if !applicable {
			return invalid("This coupon does not apply to the items in your cart"), nil
		}
	}

	for _, pid := range opt.ProductIDs {
		if eligible, reason := ValidateCouponForProduct(pid, m.Catalog); !eligible {
			return invalid(reason), nil
		}
	}

	return &ValidationResult{
		Valid:           true,
		DiscountPercent: coupon.DiscountPercent,
		Message:         fmt.Sprintf("Coupon applied! You get %d%% off", coupon.DiscountPercent),
		Code:            code,
	}, nil
}

func (m *Manager) usageCount(ctx context.Context, code string) (int64, error) {
	var count int64
	result := m.DB.WithContext(ctx).Model(&Usage{}).Where("code = ?", code).Count(&count)
	if result.Error != nil {
		m.Logger.Error("Database returned error",
			zap.Error(result.Error),
		)
		return 0, extErrors.Wrap(result.Error, "Cannot count coupon usage")
	}
	return count, nil
}

// Apply records a redemption after a successful payment. Recording the same
// session twice is a no-op so webhook retries don't inflate the count. The cap
// is re-checked inside a serializable transaction: Validate's earlier check is
// only advisory, and concurrent paid sessions must not push a coupon past it.
func (m *Manager) Apply(ctx context.Context, code, sessionID string) error {
	code = normalizeCode(code)
	coupon, ok := m.Coupons[code]
	if !ok {
		return fmt.Errorf("Invalid coupon code")
	}

	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Usage
		result := tx.
			Where("code = ?", code).
			Where("session_id = ?", sessionID).
			First(&existing)
		if result.Error == nil {
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return extErrors.Wrap(result.Error, "Cannot check for existing coupon usage")
		}

		var count int64
		if err := tx.Model(&Usage{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return extErrors.Wrap(err, "Cannot count coupon usage")
		}
		if coupon.Exhausted(count) {
			return fmt.Errorf("Coupon %s has reached its maximum usage limit", code)
		}

		usage := &Usage{
			ID:              shortuuid.New(),
			Code:            code,
			SessionID:       sessionID,
			DiscountPercent: coupon.DiscountPercent,
			UsedAt:          time.Now().UTC(),
		}
		return tx.Create(usage).Error
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		m.Logger.Error("Unable to record coupon usage",
			zap.String("Code", code),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Stats describes a coupon's redemption state
type Stats struct {
	Code            string `json:"code"`
	MaxUses         int64  `json:"maxUses"`
	CurrentUses     int64  `json:"currentUses"`
	RemainingUses   int64  `json:"remainingUses"`
	DiscountPercent int    `json:"discountPercent"`
	Conditions      string `json:"conditions"`
}

// GetStats returns usage statistics for a coupon, or nil if the code is unknown
func (m *Manager) GetStats(ctx context.Context, code string) (*Stats, error) {
	code = normalizeCode(code)
	coupon, ok := m.Coupons[code]
	if !ok {
		return nil, nil
	}
	usageCount, err := m.usageCount(ctx, code)
	if err != nil {
		return nil, err
	}
	return &Stats{
		Code:            code,
		MaxUses:         coupon.MaxUses,
		CurrentUses:     usageCount,
		RemainingUses:   coupon.MaxUses - usageCount,
		DiscountPercent: coupon.DiscountPercent,
		Conditions:      coupon.Conditions,
	}, nil
}
