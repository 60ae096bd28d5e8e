package constants

// 订单状态常量
const (
	OrderStatusPending       = "pending"
	OrderStatusPaid          = "paid"
	OrderStatusCompleted     = "completed"
	OrderStatusCancelled     = "cancelled"
	OrderStatusExpired       = "expired"
	OrderStatusRefundPending = "refund_pending"
	OrderStatusRefunded      = "refunded"
)

// 支付方式常量
const (
	PaymentMethodAlipay = "alipay"
	PaymentMethodWxpay  = "wxpay"
	PaymentMethodUsdt   = "usdt"
	PaymentMethodEpay   = "epay"
	PaymentMethodStripe = "stripe"
	PaymentMethodPaypal = "paypal"
)

// 卡密状态常量
const (
	CardStatusAvailable = "available"
	CardStatusLocked    = "locked"
	CardStatusSold      = "sold"
)

// 商品列表状态筛选
const (
	ProductFilterActive     = "active"
	ProductFilterInactive   = "inactive"
	ProductFilterOutOfStock = "out_of_stock"
)

// 商品批量操作
const (
	ProductBulkActivate   = "activate"
	ProductBulkDeactivate = "deactivate"
)

// 后台批量操作与分页限制
const (
	AdminBatchLimit      = 200
	AdminPageSizeMax     = 200
	AdminPageSizeDefault = 20
	SlugMaxLength        = 100
)

// 异步任务
const (
	QueueDefault          = "default"
	QueueCritical         = "critical"
	TaskOrderAdminDeleted = "order:admin_deleted"
)

// 订单事件类型
const (
	EventOrdersDeleted = "OrdersDeleted"
	EventVersionV1     = 1
)

// OrderStatuses 返回全部订单状态
func OrderStatuses() []string {
	return []string{
		OrderStatusPending,
		OrderStatusPaid,
		OrderStatusCompleted,
		OrderStatusCancelled,
		OrderStatusExpired,
		OrderStatusRefundPending,
		OrderStatusRefunded,
	}
}

// PaymentMethods 返回全部支付方式
func PaymentMethods() []string {
	return []string{
		PaymentMethodAlipay,
		PaymentMethodWxpay,
		PaymentMethodUsdt,
		PaymentMethodEpay,
		PaymentMethodStripe,
		PaymentMethodPaypal,
	}
}
