package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dujiao-next/cardshop-admin/internal/constants"
)

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)

// SuggestCopySlug 基于原 slug 生成复制商品的建议 slug，格式为 {base}-copy-{毫秒时间戳36进制}
func SuggestCopySlug(original string, nowMs int64) string {
	suffix := "-copy-" + strconv.FormatInt(nowMs, 36)

	base := slugInvalidChars.ReplaceAllString(strings.ToLower(original), "-")
	base = strings.Trim(base, "-")

	maxBaseLen := constants.SlugMaxLength - len(suffix)
	if maxBaseLen < 0 {
		maxBaseLen = 0
	}
	if len(base) > maxBaseLen {
		base = strings.TrimRight(base[:maxBaseLen], "-")
	}
	if base == "" {
		base = "product"
	}
	return base + suffix
}
