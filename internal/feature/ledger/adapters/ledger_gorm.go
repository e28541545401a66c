// Package adapters はledgerフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"finance_backend/internal/feature/ledger/domain/entity"
	"finance_backend/internal/feature/ledger/usecase"
)

// ledgerGorm はLedgerRepositoryインターフェースのGORM実装です。
// InTxはトランザクションスコープの*gorm.DBで自身を包み直すため、
// すべてのメソッドがトランザクション内外の両方で動作します。
type ledgerGorm struct {
	db *gorm.DB
}

// ledgerGormがLedgerRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.LedgerRepository = (*ledgerGorm)(nil)

// NewLedgerGorm は指定されたgorm.DB接続でledgerGormの新しいインスタンスを生成します。
func NewLedgerGorm(db *gorm.DB) *ledgerGorm {
	return &ledgerGorm{db: db}
}

// InTx はfnを1つのデータベーストランザクション内で実行します。
// fnがエラーを返した場合はロールバックされます。
func (r *ledgerGorm) InTx(ctx context.Context, fn func(store usecase.LedgerStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerGorm{db: tx})
	})
}

// AccountByID はユーザー行の財務カラムを取得します。
func (r *ledgerGorm) AccountByID(ctx context.Context, userID uint) (*entity.Account, error) {
	var acct entity.Account
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&acct).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrAccountNotFound
		}
		return nil, err
	}
	return &acct, nil
}

// UpdateAccount はユーザーの現金残高とgrand totalを永続化します。
func (r *ledgerGorm) UpdateAccount(ctx context.Context, userID uint, cash, grandTotal float64) error {
	return r.db.WithContext(ctx).
		Model(&entity.Account{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"cash": cash, "grand_total": grandTotal}).Error
}

// CompanyBySymbol はシンボルで会社行を取得します。
func (r *ledgerGorm) CompanyBySymbol(ctx context.Context, symbol string) (*entity.Company, error) {
	var c entity.Company
	if err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCompanyNotFound
		}
		return nil, err
	}
	return &c, nil
}

// UpsertCompany は初見のシンボルなら会社行を作成し、既存なら名前と価格を更新します。
func (r *ledgerGorm) UpsertCompany(ctx context.Context, symbol, name string, price float64) (*entity.Company, error) {
	var c entity.Company
	err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = entity.Company{Symbol: symbol, Name: name, Price: price}
		if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
			return nil, err
		}
		return &c, nil
	}
	if err != nil {
		return nil, err
	}

	c.Name = name
	c.Price = price
	if err := r.db.WithContext(ctx).
		Model(&entity.Company{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{"name": name, "price": price}).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCompanyPrice は会社のキャッシュ済み価格を更新します。
func (r *ledgerGorm) UpdateCompanyPrice(ctx context.Context, companyID uint, price float64) error {
	return r.db.WithContext(ctx).
		Model(&entity.Company{}).
		Where("id = ?", companyID).
		Update("price", price).Error
}

// PositionsByUser は保有と会社をJOINしてユーザーのポジション一覧を返します。
func (r *ledgerGorm) PositionsByUser(ctx context.Context, userID uint) ([]entity.Position, error) {
	var positions []entity.Position
	err := r.db.WithContext(ctx).
		Table("holdings").
		Select("holdings.id AS holding_id, companies.id AS company_id, companies.symbol, companies.name, holdings.shares, companies.price, holdings.total").
		Joins("JOIN companies ON companies.id = holdings.company_id").
		Where("holdings.user_id = ?", userID).
		Order("companies.symbol ASC").
		Scan(&positions).Error
	if err != nil {
		return nil, err
	}
	return positions, nil
}

// HoldingByUserAndCompany は(user, company)の保有行を取得します。
func (r *ledgerGorm) HoldingByUserAndCompany(ctx context.Context, userID, companyID uint) (*entity.Holding, error) {
	var h entity.Holding
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		First(&h).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrHoldingNotFound
		}
		return nil, err
	}
	return &h, nil
}

// SaveHolding は保有行を挿入または更新します。
func (r *ledgerGorm) SaveHolding(ctx context.Context, holding *entity.Holding) error {
	return r.db.WithContext(ctx).Save(holding).Error
}

// UpdateHoldingTotal は保有のキャッシュ済み合計を更新します。
func (r *ledgerGorm) UpdateHoldingTotal(ctx context.Context, holdingID uint, total float64) error {
	return r.db.WithContext(ctx).
		Model(&entity.Holding{}).
		Where("id = ?", holdingID).
		Update("total", total).Error
}

// DeleteHolding は(user, company)の保有行を削除します。
func (r *ledgerGorm) DeleteHolding(ctx context.Context, userID, companyID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		Delete(&entity.Holding{}).Error
}

// SumHoldingTotals はユーザーの保有合計の総和を返します。保有なしは0です。
func (r *ledgerGorm) SumHoldingTotals(ctx context.Context, userID uint) (float64, error) {
	var sum *float64
	err := r.db.WithContext(ctx).
		Model(&entity.Holding{}).
		Select("SUM(total)").
		Where("user_id = ?", userID).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	// SUMは行がないとNULLを返す
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

// AppendHistory は取引履歴を追記します。
func (r *ledgerGorm) AppendHistory(ctx context.Context, e *entity.HistoryEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// HistoryByUser はユーザーの取引履歴を新しい順に返します。
func (r *ledgerGorm) HistoryByUser(ctx context.Context, userID uint) ([]entity.HistoryEntry, error) {
	var entries []entity.HistoryEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
