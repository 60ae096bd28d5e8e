package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dujiao-next/cardshop-admin/internal/constants"
	"github.com/dujiao-next/cardshop-admin/internal/models"
	"github.com/dujiao-next/cardshop-admin/internal/repository"
)

var categorySlugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

const categoryNameMaxLength = 64

// CategoryService 分类列表与新增
type CategoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CreateCategoryInput 创建分类输入
type CreateCategoryInput struct {
	Name      string
	Slug      string
	SortOrder int
}

// List 返回全部分类，空表返回空切片
func (s *CategoryService) List() ([]models.Category, error) {
	categories, err := s.repo.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCategoryFetchFailed, err)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// Create 校验名称与 slug 后写入，slug 全局唯一
func (s *CategoryService) Create(input CreateCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if name == "" || utf8.RuneCountInString(name) > categoryNameMaxLength {
		return nil, fmt.Errorf("%w: name", ErrCategoryInvalid)
	}
	if len(slug) > constants.SlugMaxLength || !categorySlugPattern.MatchString(slug) {
		return nil, fmt.Errorf("%w: slug %q", ErrCategoryInvalid, input.Slug)
	}

	existing, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCategoryCreateFailed, err)
	}
	if existing != nil {
		return nil, ErrCategorySlugTaken
	}

	category := &models.Category{Name: name, Slug: slug, SortOrder: input.SortOrder}
	if err := s.repo.Create(category); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCategoryCreateFailed, err)
	}
	return category, nil
}
