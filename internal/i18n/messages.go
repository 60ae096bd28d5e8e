package i18n

var messages = map[string]map[string]string{
	LocaleZhCN: {
		"error.bad_request":            "请求参数错误",
		"error.unauthorized":           "未登录或登录已过期",
		"error.forbidden":              "无权访问该资源",
		"error.authz_unavailable":      "权限服务暂不可用",
		"error.auth_header_missing":    "缺少认证信息",
		"error.auth_header_invalid":    "认证信息格式错误",
		"error.token_invalid":          "登录凭证无效",
		"error.token_revoked":          "登录凭证已失效，请重新登录",
		"error.jwt_secret_missing":     "服务端认证配置缺失",
		"error.login_invalid":          "用户名或密码错误",
		"error.login_failed":           "登录失败，请稍后重试",
		"error.login_too_many":         "登录尝试过于频繁，请 %d 秒后再试",
		"error.rate_limited":           "请求过于频繁，请 %d 秒后再试",
		"error.rate_limit_unavailable": "限流服务不可用",
		"error.admin_fetch_failed":     "获取管理员信息失败",
		"error.order_fetch_failed":     "获取订单失败",
		"error.order_filter_invalid":   "订单筛选条件无效",
		"error.product_fetch_failed":   "获取商品失败",
		"error.product_filter_invalid": "商品筛选条件无效",
		"error.product_not_found":      "商品不存在",
		"error.category_fetch_failed":  "获取分类失败",
		"error.category_create_failed": "创建分类失败",
		"error.category_invalid":       "分类名称或 slug 不合法",
		"error.category_slug_taken":    "分类 slug 已存在",
	},
	LocaleEnUS: {
		"error.bad_request":            "Invalid request parameters",
		"error.unauthorized":           "Not signed in or session expired",
		"error.forbidden":              "Access to this resource is forbidden",
		"error.authz_unavailable":      "Authorization service is unavailable",
		"error.auth_header_missing":    "Missing authorization header",
		"error.auth_header_invalid":    "Malformed authorization header",
		"error.token_invalid":          "Invalid token",
		"error.token_revoked":          "Token has been revoked, please sign in again",
		"error.jwt_secret_missing":     "Server authentication is not configured",
		"error.login_invalid":          "Invalid username or password",
		"error.login_failed":           "Login failed, please try again later",
		"error.login_too_many":         "Too many login attempts, please retry in %d seconds",
		"error.rate_limited":           "Too many requests, please retry in %d seconds",
		"error.rate_limit_unavailable": "Rate limiter unavailable",
		"error.admin_fetch_failed":     "Failed to load admin",
		"error.order_fetch_failed":     "Failed to load orders",
		"error.order_filter_invalid":   "Invalid order filter",
		"error.product_fetch_failed":   "Failed to load products",
		"error.product_filter_invalid": "Invalid product filter",
		"error.product_not_found":      "Product not found",
		"error.category_fetch_failed":  "Failed to load categories",
		"error.category_create_failed": "Failed to create category",
		"error.category_invalid":       "Category name or slug is invalid",
		"error.category_slug_taken":    "Category slug already exists",
	},
}
