package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dujiao-next/cardshop-admin/internal/constants"
	"github.com/dujiao-next/cardshop-admin/internal/logger"
	"github.com/dujiao-next/cardshop-admin/internal/models"
	"github.com/dujiao-next/cardshop-admin/internal/repository"
)

// maxCopySlugAttempts 建议 slug 与现有商品冲突时的重试次数
const maxCopySlugAttempts = 5

// BulkFailureReason 批量操作失败类型
type BulkFailureReason string

const (
	BulkFailureUnauthorized BulkFailureReason = "unauthorized"
	BulkFailureInvalidInput BulkFailureReason = "invalid_input"
	BulkFailureAllLocked    BulkFailureReason = "all_locked"
	BulkFailureInternal     BulkFailureReason = "internal"
)

// BulkResult 商品批量操作结果，失败时 Reason 非空
type BulkResult struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Affected   int64             `json:"affected"`
	SkippedIDs []uint            `json:"skipped_ids,omitempty"`
	Reason     BulkFailureReason `json:"reason,omitempty"`
}

// ProductListInput 管理端商品列表参数
type ProductListInput struct {
	Page       int
	PageSize   int
	Query      string
	CategoryID *uint
	Status     string
}

// ProductListItem 商品列表项，附带卡密库存与销量
type ProductListItem struct {
	models.Product
	Stock      int64 `json:"stock"`
	SalesCount int64 `json:"sales_count"`
}

// ProductPage 管理端商品分页结果
type ProductPage struct {
	Items    []ProductListItem `json:"items"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// ProductAdminService 管理端商品服务
type ProductAdminService struct {
	guard       AdminGuard
	uow         repository.UnitOfWork
	productRepo repository.ProductRepository
	cardRepo    repository.CardRepository
	now         func() time.Time
}

// NewProductAdminService 创建管理端商品服务
func NewProductAdminService(
	guard AdminGuard,
	uow repository.UnitOfWork,
	productRepo repository.ProductRepository,
	cardRepo repository.CardRepository,
) *ProductAdminService {
	return &ProductAdminService{
		guard:       guard,
		uow:         uow,
		productRepo: productRepo,
		cardRepo:    cardRepo,
		now:         time.Now,
	}
}

// BulkUpdateStatus 批量上架/下架商品
func (s *ProductAdminService) BulkUpdateStatus(ctx context.Context, ids []uint, action string) BulkResult {
	if result, ok := s.checkAdmin(ctx); !ok {
		return result
	}
	var active bool
	switch strings.TrimSpace(action) {
	case constants.ProductBulkActivate:
		active = true
	case constants.ProductBulkDeactivate:
		active = false
	default:
		return BulkResult{Message: "无效的操作类型", Reason: BulkFailureInvalidInput}
	}
	normalized, result, ok := normalizeBulkProductIDs(ids)
	if !ok {
		return result
	}

	affected, err := s.productRepo.BatchSetActive(normalized, active)
	if err != nil {
		logger.Errorw("product_bulk_status_failed", "action", action, "count", len(normalized), "error", err)
		return BulkResult{Message: "更新商品状态失败，请稍后重试", Reason: BulkFailureInternal}
	}
	if active {
		return BulkResult{Success: true, Affected: affected, Message: fmt.Sprintf("已上架 %d 个商品", affected)}
	}
	return BulkResult{Success: true, Affected: affected, Message: fmt.Sprintf("已下架 %d 个商品", affected)}
}

// BulkDelete 批量软删除商品，存在锁定卡密的商品跳过，其余商品的可用卡密一并删除
func (s *ProductAdminService) BulkDelete(ctx context.Context, ids []uint) BulkResult {
	if result, ok := s.checkAdmin(ctx); !ok {
		return result
	}
	normalized, result, ok := normalizeBulkProductIDs(ids)
	if !ok {
		return result
	}

	var (
		skipped []uint
		deleted int64
	)
	err := s.uow.Do(ctx, func(repos repository.TxRepositories) error {
		lockedIDs, err := repos.Cards.ProductIDsWithLocked(normalized)
		if err != nil {
			return err
		}
		locked := make(map[uint]struct{}, len(lockedIDs))
		for _, id := range lockedIDs {
			locked[id] = struct{}{}
		}
		removable := make([]uint, 0, len(normalized))
		for _, id := range normalized {
			if _, ok := locked[id]; ok {
				skipped = append(skipped, id)
				continue
			}
			removable = append(removable, id)
		}
		if len(removable) == 0 {
			return nil
		}
		deleted, err = repos.Products.DeleteByIDs(removable)
		if err != nil {
			return err
		}
		_, err = repos.Cards.DeleteAvailableByProducts(removable)
		return err
	})
	if err != nil {
		logger.Errorw("product_bulk_delete_failed", "count", len(normalized), "error", err)
		return BulkResult{Message: "删除商品失败，请稍后重试", Reason: BulkFailureInternal}
	}

	if deleted == 0 && len(skipped) > 0 {
		return BulkResult{Message: "所选商品均存在锁定卡密，无法删除", SkippedIDs: skipped, Reason: BulkFailureAllLocked}
	}
	if len(skipped) > 0 {
		return BulkResult{
			Success:    true,
			Affected:   deleted,
			SkippedIDs: skipped,
			Message:    fmt.Sprintf("已删除 %d 个商品（跳过 %d 个存在锁定卡密的商品）", deleted, len(skipped)),
		}
	}
	return BulkResult{Success: true, Affected: deleted, Message: fmt.Sprintf("已删除 %d 个商品", deleted)}
}

// ListProducts 分页查询商品并附带库存统计
func (s *ProductAdminService) ListProducts(ctx context.Context, input ProductListInput) (*ProductPage, error) {
	if _, err := s.guard.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	filter := repository.ProductAdminFilter{
		Page:       input.Page,
		PageSize:   input.PageSize,
		Query:      strings.TrimSpace(input.Query),
		CategoryID: input.CategoryID,
		Status:     strings.TrimSpace(input.Status),
	}
	switch filter.Status {
	case "", constants.ProductFilterActive, constants.ProductFilterInactive, constants.ProductFilterOutOfStock:
	default:
		return nil, fmt.Errorf("%w: status %q", ErrProductFilterInvalid, filter.Status)
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	filter.PageSize = repository.NormalizePageSize(filter.PageSize)

	products, total, err := s.productRepo.ListAdmin(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProductFetchFailed, err)
	}
	productIDs := make([]uint, 0, len(products))
	for _, product := range products {
		productIDs = append(productIDs, product.ID)
	}
	stock, err := s.cardRepo.CountStockByProductIDs(productIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProductFetchFailed, err)
	}

	items := make([]ProductListItem, 0, len(products))
	for _, product := range products {
		counts := stock[product.ID]
		items = append(items, ProductListItem{
			Product:    product,
			Stock:      counts.Available,
			SalesCount: counts.Sold,
		})
	}
	return &ProductPage{Items: items, Total: total, Page: filter.Page, PageSize: filter.PageSize}, nil
}

// SuggestCopySlug 为复制商品生成建议 slug
func (s *ProductAdminService) SuggestCopySlug(ctx context.Context, productID uint) (string, error) {
	if _, err := s.guard.RequireAdmin(ctx); err != nil {
		return "", err
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProductFetchFailed, err)
	}
	if product == nil {
		return "", ErrProductNotFound
	}
	nowMs := s.now().UnixMilli()
	for attempt := 0; attempt < maxCopySlugAttempts; attempt++ {
		candidate := SuggestCopySlug(product.Slug, nowMs+int64(attempt))
		taken, err := s.productRepo.CountBySlug(candidate)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrProductFetchFailed, err)
		}
		if taken == 0 {
			return candidate, nil
		}
	}
	return SuggestCopySlug(product.Slug, nowMs+maxCopySlugAttempts), nil
}

func (s *ProductAdminService) checkAdmin(ctx context.Context) (BulkResult, bool) {
	if _, err := s.guard.RequireAdmin(ctx); err != nil {
		if !errors.Is(err, ErrUnauthorized) {
			logger.Errorw("product_admin_guard_failed", "error", err)
			return BulkResult{Message: "操作失败，请稍后重试", Reason: BulkFailureInternal}, false
		}
		return BulkResult{Message: "需要管理员权限", Reason: BulkFailureUnauthorized}, false
	}
	return BulkResult{}, true
}

func normalizeBulkProductIDs(raw []uint) ([]uint, BulkResult, bool) {
	ids := normalizeProductIDs(raw)
	if len(ids) == 0 {
		return nil, BulkResult{Message: "未选择任何商品", Reason: BulkFailureInvalidInput}, false
	}
	if len(ids) > constants.AdminBatchLimit {
		return nil, BulkResult{Message: fmt.Sprintf("单次最多操作 %d 个商品", constants.AdminBatchLimit), Reason: BulkFailureInvalidInput}, false
	}
	return ids, BulkResult{}, true
}
