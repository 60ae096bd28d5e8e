package repository

import (
	"testing"

	"github.com/dujiao-next/cardshop-admin/internal/constants"
	"github.com/dujiao-next/cardshop-admin/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func createProductFixture(t *testing.T, db *gorm.DB, name, slug string, categoryID *uint, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID: categoryID,
		Name:       name,
		Slug:       slug,
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(30)),
		IsActive:   true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if !active {
		if err := db.Model(product).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate product failed: %v", err)
		}
	}
	return product
}

func TestProductListAdminStatusFilters(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)
	category := &models.Category{Name: "游戏点卡", Slug: "game"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	inStock := createProductFixture(t, db, "Steam 充值卡", "steam-card", &category.ID, true)
	empty := createProductFixture(t, db, "Xbox Game Pass", "xbox-pass", nil, true)
	hidden := createProductFixture(t, db, "Steam 周边", "steam-gift", &category.ID, false)
	createCards(t, db, inStock.ID, constants.CardStatusAvailable, 2)
	createCards(t, db, empty.ID, constants.CardStatusSold, 1)
	createCards(t, db, hidden.ID, constants.CardStatusAvailable, 1)

	items, total, err := repo.ListAdmin(ProductAdminFilter{Page: 1, PageSize: 20, Status: constants.ProductFilterOutOfStock})
	if err != nil {
		t.Fatalf("list out of stock failed: %v", err)
	}
	if total != 1 || items[0].ID != empty.ID {
		t.Fatalf("out_of_stock want [%d] got total=%d items=%+v", empty.ID, total, items)
	}

	items, total, err = repo.ListAdmin(ProductAdminFilter{Page: 1, PageSize: 20, Status: constants.ProductFilterInactive})
	if err != nil {
		t.Fatalf("list inactive failed: %v", err)
	}
	if total != 1 || items[0].ID != hidden.ID {
		t.Fatalf("inactive want [%d] got total=%d", hidden.ID, total)
	}

	items, total, err = repo.ListAdmin(ProductAdminFilter{Page: 1, PageSize: 20, Query: "STEAM", CategoryID: &category.ID, Status: constants.ProductFilterActive})
	if err != nil {
		t.Fatalf("list by query failed: %v", err)
	}
	if total != 1 || items[0].ID != inStock.ID {
		t.Fatalf("query want [%d] got total=%d", inStock.ID, total)
	}
	if items[0].Category == nil || items[0].Category.Slug != "game" {
		t.Fatalf("category should be preloaded, got %+v", items[0].Category)
	}
}

func TestProductBatchSetActiveAndDelete(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)
	a := createProductFixture(t, db, "A", "a", nil, true)
	b := createProductFixture(t, db, "B", "b", nil, true)

	affected, err := repo.BatchSetActive([]uint{a.ID, b.ID, 999}, false)
	if err != nil {
		t.Fatalf("batch set active failed: %v", err)
	}
	if affected != 2 {
		t.Fatalf("affected want 2 got %d", affected)
	}
	reloaded, err := repo.GetByID(a.ID)
	if err != nil || reloaded == nil || reloaded.IsActive {
		t.Fatalf("product a should be inactive, got %+v err=%v", reloaded, err)
	}

	deleted, err := repo.DeleteByIDs([]uint{a.ID})
	if err != nil {
		t.Fatalf("delete products failed: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("deleted want 1 got %d", deleted)
	}
	if got, _ := repo.GetByID(a.ID); got != nil {
		t.Fatalf("deleted product should be hidden")
	}
	count, err := repo.CountBySlug("a")
	if err != nil {
		t.Fatalf("count slug failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("soft deleted slug should still be counted, got %d", count)
	}
}
