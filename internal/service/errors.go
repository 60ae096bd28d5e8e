package service

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrUnauthorized         = errors.New("admin privilege required")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAdminFetchFailed     = errors.New("admin fetch failed")
	ErrOrderFilterInvalid   = errors.New("order filter invalid")
	ErrOrderFetchFailed     = errors.New("order fetch failed")
	ErrProductFilterInvalid = errors.New("product filter invalid")
	ErrProductFetchFailed   = errors.New("product fetch failed")
	ErrProductNotFound      = errors.New("product not found")
	ErrCategoryFetchFailed  = errors.New("category fetch failed")
	ErrCategoryInvalid      = errors.New("category invalid")
	ErrCategorySlugTaken    = errors.New("category slug taken")
	ErrCategoryCreateFailed = errors.New("category create failed")
)
